// file: internals/features/enrollment/enrollments/service/access_resolver_test.go
package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	enrollModel "kursusku_backend/internals/features/enrollment/enrollments/model"
	helper "kursusku_backend/internals/helpers"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&enrollModel.CourseEnrollmentModel{},
		&enrollModel.CompanyEnrollmentModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func wantKind(t *testing.T, err error, kind helper.ErrorKind) {
	t.Helper()
	var appErr *helper.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError %s, got %v", kind, err)
	}
	if appErr.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%s)", kind, appErr.Kind, appErr.Message)
	}
}

func TestResolveAccessPicksVariantByActorKind(t *testing.T) {
	db := newTestDB(t)
	userID, courseID := uuid.New(), uuid.New()

	if err := db.Create(&enrollModel.CompanyEnrollmentModel{
		CompanyEnrollmentCompanyID:     uuid.New(),
		CompanyEnrollmentUserID:        userID,
		CompanyEnrollmentCourseID:      courseID,
		CompanyEnrollmentIsPaymentDone: true,
	}).Error; err != nil {
		t.Fatalf("seed company enrollment: %v", err)
	}

	proof, err := ResolveAccess(db, userID, courseID, "company")
	if err != nil {
		t.Fatalf("resolve company: %v", err)
	}
	if !proof.PaymentDone {
		t.Fatalf("expected payment done")
	}

	// varian student tidak boleh fallback ke baris company
	_, err = ResolveAccess(db, userID, courseID, "student")
	wantKind(t, err, helper.ErrKindNotFound)
}

func TestResolveAccessUnknownActorKind(t *testing.T) {
	db := newTestDB(t)
	_, err := ResolveAccess(db, uuid.New(), uuid.New(), "vendor")
	wantKind(t, err, helper.ErrKindBadRequest)
}

func TestRequireValidAccessPaymentGate(t *testing.T) {
	db := newTestDB(t)
	userID, courseID := uuid.New(), uuid.New()

	if err := db.Create(&enrollModel.CourseEnrollmentModel{
		CourseEnrollmentUserID:        userID,
		CourseEnrollmentCourseID:      courseID,
		CourseEnrollmentIsPaymentDone: false,
	}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	// belum lunas → diperlakukan seperti tidak terdaftar
	_, err := RequireValidAccess(db, userID, courseID, "student")
	wantKind(t, err, helper.ErrKindAccessDenied)

	// tidak terdaftar sama sekali → juga AccessDenied, bukan NotFound mentah
	_, err = RequireValidAccess(db, uuid.New(), courseID, "student")
	wantKind(t, err, helper.ErrKindAccessDenied)

	if err := db.Model(&enrollModel.CourseEnrollmentModel{}).
		Where("course_enrollment_user_id = ?", userID).
		Update("course_enrollment_is_payment_done", true).Error; err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	proof, err := RequireValidAccess(db, userID, courseID, "student")
	if err != nil {
		t.Fatalf("after payment: %v", err)
	}
	if proof.EnrolledAt.IsZero() {
		t.Fatalf("expected enrolled_at terisi")
	}
}

func TestApplyAggregatesWritesBothVariants(t *testing.T) {
	db := newTestDB(t)
	userID, courseID := uuid.New(), uuid.New()

	if err := db.Create(&enrollModel.CourseEnrollmentModel{
		CourseEnrollmentUserID:        userID,
		CourseEnrollmentCourseID:      courseID,
		CourseEnrollmentIsPaymentDone: true,
	}).Error; err != nil {
		t.Fatalf("seed direct: %v", err)
	}
	if err := db.Create(&enrollModel.CompanyEnrollmentModel{
		CompanyEnrollmentCompanyID:     uuid.New(),
		CompanyEnrollmentUserID:        userID,
		CompanyEnrollmentCourseID:      courseID,
		CompanyEnrollmentIsPaymentDone: true,
	}).Error; err != nil {
		t.Fatalf("seed sponsored: %v", err)
	}

	if err := ApplyAggregates(db, userID, courseID, 75, false); err != nil {
		t.Fatalf("apply: %v", err)
	}

	var direct enrollModel.CourseEnrollmentModel
	if err := db.First(&direct, "course_enrollment_user_id = ?", userID).Error; err != nil {
		t.Fatalf("read direct: %v", err)
	}
	if direct.CourseEnrollmentProgressPercent != 75 || direct.CourseEnrollmentIsCompleted {
		t.Fatalf("direct aggregate salah: %+v", direct)
	}

	var sponsored enrollModel.CompanyEnrollmentModel
	if err := db.First(&sponsored, "company_enrollment_user_id = ?", userID).Error; err != nil {
		t.Fatalf("read sponsored: %v", err)
	}
	if sponsored.CompanyEnrollmentProgressPercent != 75 || sponsored.CompanyEnrollmentIsCompleted {
		t.Fatalf("sponsored aggregate salah: %+v", sponsored)
	}
}

func TestEnrollmentUniquePerUserCourse(t *testing.T) {
	db := newTestDB(t)
	userID, courseID := uuid.New(), uuid.New()

	first := enrollModel.CourseEnrollmentModel{
		CourseEnrollmentUserID:   userID,
		CourseEnrollmentCourseID: courseID,
	}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("first: %v", err)
	}
	dup := enrollModel.CourseEnrollmentModel{
		CourseEnrollmentUserID:   userID,
		CourseEnrollmentCourseID: courseID,
	}
	err := db.Create(&dup).Error
	if err == nil {
		t.Fatalf("expected unique violation")
	}
	if !helper.IsUniqueViolation(err) {
		t.Fatalf("IsUniqueViolation tidak mengenali error sqlite: %v", err)
	}

	// timestamp enrollment harus terisi otomatis (dipakai waiting window)
	if first.CourseEnrollmentCreatedAt.After(time.Now().Add(time.Minute)) {
		t.Fatalf("created_at janggal: %v", first.CourseEnrollmentCreatedAt)
	}
}
