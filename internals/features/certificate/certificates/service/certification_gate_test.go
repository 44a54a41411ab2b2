// file: internals/features/certificate/certificates/service/certification_gate_test.go
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

	attemptModel "kursusku_backend/internals/features/assessment/attempts/model"
	certModel "kursusku_backend/internals/features/certificate/certificates/model"
	courseModel "kursusku_backend/internals/features/course/courses/model"
	lessonModel "kursusku_backend/internals/features/course/lessons/model"
	testModel "kursusku_backend/internals/features/course/tests/model"
	enrollModel "kursusku_backend/internals/features/enrollment/enrollments/model"
	progressModel "kursusku_backend/internals/features/progress/progress/model"
	progressService "kursusku_backend/internals/features/progress/progress/service"
	userModel "kursusku_backend/internals/features/users/users/model"
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
		&userModel.UserModel{},
		&courseModel.CourseModel{},
		&courseModel.SectionModel{},
		&lessonModel.LessonModel{},
		&testModel.TestModel{},
		&testModel.QuestionModel{},
		&testModel.QuestionOptionModel{},
		&testModel.QuestionAnswerModel{},
		&enrollModel.CourseEnrollmentModel{},
		&enrollModel.CompanyEnrollmentModel{},
		&progressModel.ProgressRecordModel{},
		&attemptModel.TestAttemptModel{},
		&attemptModel.UserResponseModel{},
		&certModel.CertificateTemplateModel{},
		&certModel.CertificateModel{},
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

type gateFixture struct {
	UserID   uuid.UUID
	CourseID uuid.UUID
	LessonID uuid.UUID
}

// seedGate: satu course berisi satu lesson, user enrolled (lunas) dengan
// tanggal enrollment bisa diatur, plus template sertifikat (opsional).
func seedGate(t *testing.T, db *gorm.DB, enrolledAt time.Time, withTemplate bool) gateFixture {
	t.Helper()

	dob := time.Date(1998, 4, 12, 0, 0, 0, 0, time.UTC)
	user := userModel.UserModel{
		UserFullName:    "Siti Rahma",
		UserEmail:       fmt.Sprintf("siti+%s@example.com", uuid.NewString()[:8]),
		UserDateOfBirth: &dob,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	course := courseModel.CourseModel{CourseTitle: "Backend Go"}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	section := courseModel.SectionModel{SectionCourseID: course.CourseID, SectionTitle: "Materi", SectionOrder: 1}
	if err := db.Create(&section).Error; err != nil {
		t.Fatalf("seed section: %v", err)
	}
	lesson := lessonModel.LessonModel{
		LessonSectionID: section.SectionID,
		LessonCourseID:  course.CourseID,
		LessonTitle:     "Pengenalan",
		LessonOrder:     1,
	}
	if err := db.Create(&lesson).Error; err != nil {
		t.Fatalf("seed lesson: %v", err)
	}

	if err := db.Create(&enrollModel.CourseEnrollmentModel{
		CourseEnrollmentUserID:        user.UserID,
		CourseEnrollmentCourseID:      course.CourseID,
		CourseEnrollmentIsPaymentDone: true,
		CourseEnrollmentCreatedAt:     enrolledAt,
	}).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}

	if withTemplate {
		if err := db.Create(&certModel.CertificateTemplateModel{
			CertificateTemplateCourseID: course.CourseID,
			CertificateTemplateTitle:    "Sertifikat Kelulusan",
		}).Error; err != nil {
			t.Fatalf("seed template: %v", err)
		}
	}

	return gateFixture{UserID: user.UserID, CourseID: course.CourseID, LessonID: lesson.LessonID}
}

func completeCourse(t *testing.T, db *gorm.DB, fx gateFixture) {
	t.Helper()
	if _, err := progressService.MarkCourseCompleted(db, fx.UserID, fx.CourseID, "student"); err != nil {
		t.Fatalf("complete course: %v", err)
	}
}

func TestEligibilityPendingCompletion(t *testing.T) {
	db := newTestDB(t)
	fx := seedGate(t, db, time.Now().AddDate(0, 0, -30), true)

	elig, err := GetEligibility(db, fx.UserID, fx.CourseID, "student")
	if err != nil {
		t.Fatalf("eligibility: %v", err)
	}
	if elig.Status != EligibilityPendingCompletion {
		t.Fatalf("status = %s, want %s", elig.Status, EligibilityPendingCompletion)
	}
}

func TestEligibilityWaitingPeriod(t *testing.T) {
	db := newTestDB(t)
	// enrolled 2 hari lalu, window 5 hari → masih nunggu walau sudah 100%
	fx := seedGate(t, db, time.Now().AddDate(0, 0, -2), true)
	completeCourse(t, db, fx)

	elig, err := GetEligibility(db, fx.UserID, fx.CourseID, "student")
	if err != nil {
		t.Fatalf("eligibility: %v", err)
	}
	if elig.Status != EligibilityWaitingPeriod {
		t.Fatalf("status = %s, want %s", elig.Status, EligibilityWaitingPeriod)
	}
	if elig.EligibleAt == nil || elig.RemainingDays < 1 || elig.RemainingDays > CertificateWaitingDays {
		t.Fatalf("detail waiting salah: %+v", elig)
	}

	// issue path dan status path harus sepakat
	_, err = IssueCertificate(db, fx.UserID, fx.CourseID, "student")
	wantKind(t, err, helper.ErrKindPrerequisiteNotMet)
}

func TestIssueHappyPathAndSnapshot(t *testing.T) {
	db := newTestDB(t)
	fx := seedGate(t, db, time.Now().AddDate(0, 0, -10), true)
	completeCourse(t, db, fx)

	elig, err := GetEligibility(db, fx.UserID, fx.CourseID, "student")
	if err != nil {
		t.Fatalf("eligibility: %v", err)
	}
	if elig.Status != EligibilityReady {
		t.Fatalf("status = %s, want %s", elig.Status, EligibilityReady)
	}

	cert, err := IssueCertificate(db, fx.UserID, fx.CourseID, "student")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !strings.HasPrefix(cert.CertificateNumber, "CERT-") {
		t.Fatalf("format nomor salah: %s", cert.CertificateNumber)
	}
	if cert.CertificateHolderName != "Siti Rahma" || cert.CertificateCourseTitle != "Backend Go" {
		t.Fatalf("snapshot salah: %+v", cert)
	}
	if cert.CertificateHolderBirthDate == nil {
		t.Fatalf("tanggal lahir harus ikut snapshot")
	}

	// snapshot beku: ganti nama user tidak mengubah sertifikat yang terbit
	if err := db.Model(&userModel.UserModel{}).
		Where("user_id = ?", fx.UserID).
		Update("user_full_name", "Siti R. Ganti Nama").Error; err != nil {
		t.Fatalf("rename: %v", err)
	}
	verified, err := VerifyCertificate(db, cert.CertificateNumber)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if verified.CertificateHolderName != "Siti Rahma" {
		t.Fatalf("snapshot tidak beku: %s", verified.CertificateHolderName)
	}

	// setelah terbit, status selalu ISSUED
	elig, err = GetEligibility(db, fx.UserID, fx.CourseID, "student")
	if err != nil {
		t.Fatalf("eligibility-2: %v", err)
	}
	if elig.Status != EligibilityIssued {
		t.Fatalf("status = %s, want %s", elig.Status, EligibilityIssued)
	}
}

func TestIssuedPrecedesOtherChecks(t *testing.T) {
	db := newTestDB(t)
	fx := seedGate(t, db, time.Now().AddDate(0, 0, -10), true)
	completeCourse(t, db, fx)

	if _, err := IssueCertificate(db, fx.UserID, fx.CourseID, "student"); err != nil {
		t.Fatalf("issue: %v", err)
	}

	// progress turun setelah terbit → ISSUED tetap menang precedence
	if _, err := progressService.MarkContentIncomplete(db, fx.UserID, &fx.LessonID, nil); err != nil {
		t.Fatalf("incomplete: %v", err)
	}
	elig, err := GetEligibility(db, fx.UserID, fx.CourseID, "student")
	if err != nil {
		t.Fatalf("eligibility: %v", err)
	}
	if elig.Status != EligibilityIssued {
		t.Fatalf("status = %s, want %s", elig.Status, EligibilityIssued)
	}
}

func TestIssueRejectedWithoutTemplate(t *testing.T) {
	db := newTestDB(t)
	fx := seedGate(t, db, time.Now().AddDate(0, 0, -10), false)
	completeCourse(t, db, fx)

	_, err := IssueCertificate(db, fx.UserID, fx.CourseID, "student")
	wantKind(t, err, helper.ErrKindTemplateNotFound)
}

func TestIssueTwiceRejected(t *testing.T) {
	db := newTestDB(t)
	fx := seedGate(t, db, time.Now().AddDate(0, 0, -10), true)
	completeCourse(t, db, fx)

	if _, err := IssueCertificate(db, fx.UserID, fx.CourseID, "student"); err != nil {
		t.Fatalf("first: %v", err)
	}
	_, err := IssueCertificate(db, fx.UserID, fx.CourseID, "student")
	wantKind(t, err, helper.ErrKindAlreadyIssued)

	var count int64
	db.Model(&certModel.CertificateModel{}).
		Where("certificate_user_id = ?", fx.UserID).
		Count(&count)
	if count != 1 {
		t.Fatalf("sertifikat harus tepat satu, dapat %d", count)
	}
}

func TestIssueRevalidatesCompletion(t *testing.T) {
	db := newTestDB(t)
	fx := seedGate(t, db, time.Now().AddDate(0, 0, -10), true)
	completeCourse(t, db, fx)

	// progress dibalik sebelum issue → issue menolak, tidak percaya status lama
	if _, err := progressService.MarkContentIncomplete(db, fx.UserID, &fx.LessonID, nil); err != nil {
		t.Fatalf("incomplete: %v", err)
	}
	_, err := IssueCertificate(db, fx.UserID, fx.CourseID, "student")
	wantKind(t, err, helper.ErrKindPrerequisiteNotMet)
}

func TestVerifyUnknownNumber(t *testing.T) {
	db := newTestDB(t)
	_, err := VerifyCertificate(db, "CERT-00000000000000-ffffff")
	wantKind(t, err, helper.ErrKindNotFound)
}
