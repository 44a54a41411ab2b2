// file: internals/features/progress/progress/service/progress_tracker_test.go
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
	courseModel "kursusku_backend/internals/features/course/courses/model"
	lessonModel "kursusku_backend/internals/features/course/lessons/model"
	testModel "kursusku_backend/internals/features/course/tests/model"
	enrollModel "kursusku_backend/internals/features/enrollment/enrollments/model"
	progressModel "kursusku_backend/internals/features/progress/progress/model"
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

// fixture: course 2 section; section 1 punya lesson order 1 & 2, section 2
// punya lesson order 1 + dua test published (T1 dibuat lebih dulu dari T2)
type courseFixture struct {
	UserID   uuid.UUID
	CourseID uuid.UUID
	Sec1     uuid.UUID
	Sec2     uuid.UUID
	L1, L2   uuid.UUID
	L3       uuid.UUID
	T1, T2   uuid.UUID
}

func seedCourse(t *testing.T, db *gorm.DB) courseFixture {
	t.Helper()
	fx := courseFixture{UserID: uuid.New()}

	course := courseModel.CourseModel{CourseTitle: "Dasar Go"}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	fx.CourseID = course.CourseID

	sec1 := courseModel.SectionModel{SectionCourseID: fx.CourseID, SectionTitle: "Pengenalan", SectionOrder: 1}
	sec2 := courseModel.SectionModel{SectionCourseID: fx.CourseID, SectionTitle: "Lanjutan", SectionOrder: 2}
	if err := db.Create(&sec1).Error; err != nil {
		t.Fatalf("seed sec1: %v", err)
	}
	if err := db.Create(&sec2).Error; err != nil {
		t.Fatalf("seed sec2: %v", err)
	}
	fx.Sec1, fx.Sec2 = sec1.SectionID, sec2.SectionID

	mkLesson := func(secID uuid.UUID, title string, order int) uuid.UUID {
		l := lessonModel.LessonModel{
			LessonSectionID: secID,
			LessonCourseID:  fx.CourseID,
			LessonTitle:     title,
			LessonContent:   "materi " + title,
			LessonOrder:     order,
		}
		if err := db.Create(&l).Error; err != nil {
			t.Fatalf("seed lesson %s: %v", title, err)
		}
		return l.LessonID
	}
	fx.L1 = mkLesson(fx.Sec1, "Lesson 1", 1)
	fx.L2 = mkLesson(fx.Sec1, "Lesson 2", 2)
	fx.L3 = mkLesson(fx.Sec2, "Lesson 3", 1)

	base := time.Now().Add(-48 * time.Hour)
	mkTest := func(title string, createdAt time.Time, published bool) uuid.UUID {
		ts := testModel.TestModel{
			TestSectionID:   fx.Sec2,
			TestCourseID:    fx.CourseID,
			TestTitle:       title,
			TestTotalMarks:  10,
			TestIsPublished: published,
			TestCreatedAt:   createdAt,
		}
		if err := db.Create(&ts).Error; err != nil {
			t.Fatalf("seed test %s: %v", title, err)
		}
		return ts.TestID
	}
	fx.T1 = mkTest("Test 1", base, true)
	fx.T2 = mkTest("Test 2", base.Add(time.Hour), true)

	if err := db.Create(&enrollModel.CourseEnrollmentModel{
		CourseEnrollmentUserID:        fx.UserID,
		CourseEnrollmentCourseID:      fx.CourseID,
		CourseEnrollmentIsPaymentDone: true,
	}).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	return fx
}

func seedAttempt(t *testing.T, db *gorm.DB, userID, testID uuid.UUID) {
	t.Helper()
	if err := db.Create(&attemptModel.TestAttemptModel{
		TestAttemptUserID:      userID,
		TestAttemptTestID:      testID,
		TestAttemptStatus:      attemptModel.AttemptGraded,
		TestAttemptTotalMarks:  10,
		TestAttemptCompletedAt: time.Now(),
	}).Error; err != nil {
		t.Fatalf("seed attempt: %v", err)
	}
}

func TestMarkLessonRequiresEarlierLessonsInSection(t *testing.T) {
	db := newTestDB(t)
	fx := seedCourse(t, db)

	_, err := MarkContentCompleted(db, fx.UserID, "student", &fx.L2, nil)
	wantKind(t, err, helper.ErrKindPrerequisiteNotMet)

	var appErr *helper.AppError
	errors.As(err, &appErr)
	if appErr.Details["blocking_lesson_id"] != fx.L1 {
		t.Fatalf("expected blocking lesson L1, got %v", appErr.Details)
	}

	// lesson pertama section 2 tidak terhalang lesson section 1
	if _, err := MarkContentCompleted(db, fx.UserID, "student", &fx.L3, nil); err != nil {
		t.Fatalf("L3 harus bebas prasyarat lintas section: %v", err)
	}
}

func TestMarkLessonHappyPathWritesAggregates(t *testing.T) {
	db := newTestDB(t)
	fx := seedCourse(t, db)

	cp, err := MarkContentCompleted(db, fx.UserID, "student", &fx.L1, nil)
	if err != nil {
		t.Fatalf("mark L1: %v", err)
	}
	// 3 lesson + 2 test = 5 item; 1 selesai = 20%
	if cp.TotalItems != 5 || cp.CompletedItems != 1 || cp.Percentage != 20 {
		t.Fatalf("agregat salah: %+v", cp)
	}
	if cp.IsCompleted {
		t.Fatalf("course belum boleh complete")
	}

	var enr enrollModel.CourseEnrollmentModel
	if err := db.First(&enr, "course_enrollment_user_id = ?", fx.UserID).Error; err != nil {
		t.Fatalf("read enrollment: %v", err)
	}
	if enr.CourseEnrollmentProgressPercent != 20 || enr.CourseEnrollmentIsCompleted {
		t.Fatalf("agregat enrollment tidak tertulis: %+v", enr)
	}
}

func TestMarkCompletedIdempotent(t *testing.T) {
	db := newTestDB(t)
	fx := seedCourse(t, db)

	if _, err := MarkContentCompleted(db, fx.UserID, "student", &fx.L1, nil); err != nil {
		t.Fatalf("first: %v", err)
	}
	cp, err := MarkContentCompleted(db, fx.UserID, "student", &fx.L1, nil)
	if err != nil {
		t.Fatalf("second harus no-op, bukan error: %v", err)
	}
	if cp.CompletedItems != 1 {
		t.Fatalf("idempotensi gagal: %+v", cp)
	}

	var count int64
	db.Model(&progressModel.ProgressRecordModel{}).
		Where("progress_user_id = ? AND progress_lesson_id = ?", fx.UserID, fx.L1).
		Count(&count)
	if count != 1 {
		t.Fatalf("record harus tetap satu, dapat %d", count)
	}
}

func TestMarkTestRequiresEarlierPublishedAttempts(t *testing.T) {
	db := newTestDB(t)
	fx := seedCourse(t, db)

	_, err := MarkContentCompleted(db, fx.UserID, "student", nil, &fx.T2)
	wantKind(t, err, helper.ErrKindPrerequisiteNotMet)

	var appErr *helper.AppError
	errors.As(err, &appErr)
	if appErr.Details["blocking_test_id"] != fx.T1 {
		t.Fatalf("expected blocking test T1, got %v", appErr.Details)
	}

	seedAttempt(t, db, fx.UserID, fx.T1)
	if _, err := MarkContentCompleted(db, fx.UserID, "student", nil, &fx.T2); err != nil {
		t.Fatalf("setelah attempt T1, T2 harus bisa: %v", err)
	}
}

func TestUnpublishedTestSkippedAsPrerequisiteButCounted(t *testing.T) {
	db := newTestDB(t)
	fx := seedCourse(t, db)

	// unpublish T1: bukan prasyarat lagi, tapi tetap dihitung di total
	if err := db.Model(&testModel.TestModel{}).
		Where("test_id = ?", fx.T1).
		Update("test_is_published", false).Error; err != nil {
		t.Fatalf("unpublish: %v", err)
	}

	cp, err := MarkContentCompleted(db, fx.UserID, "student", nil, &fx.T2)
	if err != nil {
		t.Fatalf("T2 tanpa prasyarat published: %v", err)
	}
	if cp.TotalItems != 5 {
		t.Fatalf("test unpublished harus tetap masuk total, dapat %d", cp.TotalItems)
	}
}

func TestMarkContentIncompleteNoCascade(t *testing.T) {
	db := newTestDB(t)
	fx := seedCourse(t, db)

	if _, err := MarkContentCompleted(db, fx.UserID, "student", &fx.L1, nil); err != nil {
		t.Fatalf("L1: %v", err)
	}
	if _, err := MarkContentCompleted(db, fx.UserID, "student", &fx.L2, nil); err != nil {
		t.Fatalf("L2: %v", err)
	}

	cp, err := MarkContentIncomplete(db, fx.UserID, &fx.L1, nil)
	if err != nil {
		t.Fatalf("incomplete L1: %v", err)
	}
	// L2 tetap complete walau L1 dibalik
	if cp.CompletedItems != 1 {
		t.Fatalf("no-cascade gagal: %+v", cp)
	}

	var record progressModel.ProgressRecordModel
	if err := db.First(&record, "progress_user_id = ? AND progress_lesson_id = ?", fx.UserID, fx.L2).Error; err != nil {
		t.Fatalf("record L2: %v", err)
	}
	if !record.ProgressIsCompleted {
		t.Fatalf("L2 harus tetap complete")
	}

	// record yang tidak pernah ada → NotFound, bukan upsert diam-diam
	_, err = MarkContentIncomplete(db, fx.UserID, &fx.L3, nil)
	wantKind(t, err, helper.ErrKindNotFound)
}

func TestMarkCourseCompletedBulk(t *testing.T) {
	db := newTestDB(t)
	fx := seedCourse(t, db)

	// bulk melewati prasyarat urutan maupun keharusan attempt
	cp, err := MarkCourseCompleted(db, fx.UserID, fx.CourseID, "student")
	if err != nil {
		t.Fatalf("bulk: %v", err)
	}
	if !cp.IsCompleted || cp.Percentage != 100 || cp.CompletedItems != 5 {
		t.Fatalf("bulk agregat salah: %+v", cp)
	}

	var enr enrollModel.CourseEnrollmentModel
	if err := db.First(&enr, "course_enrollment_user_id = ?", fx.UserID).Error; err != nil {
		t.Fatalf("read enrollment: %v", err)
	}
	if !enr.CourseEnrollmentIsCompleted || enr.CourseEnrollmentProgressPercent != 100 {
		t.Fatalf("agregat enrollment salah: %+v", enr)
	}
}

func TestEmptyCourseNeverComplete(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()

	course := courseModel.CourseModel{CourseTitle: "Kosong"}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	cp, err := GetCourseProgress(db, userID, course.CourseID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cp.Percentage != 0 || cp.IsCompleted {
		t.Fatalf("course tanpa konten harus 0%% dan tidak complete: %+v", cp)
	}
}

func TestMarkContentRequiresValidEnrollment(t *testing.T) {
	db := newTestDB(t)
	fx := seedCourse(t, db)

	// belum lunas → ditolak
	if err := db.Model(&enrollModel.CourseEnrollmentModel{}).
		Where("course_enrollment_user_id = ?", fx.UserID).
		Update("course_enrollment_is_payment_done", false).Error; err != nil {
		t.Fatalf("unset payment: %v", err)
	}
	_, err := MarkContentCompleted(db, fx.UserID, "student", &fx.L1, nil)
	wantKind(t, err, helper.ErrKindAccessDenied)

	// actor_kind company tidak fallback ke enrollment student
	_, err = MarkContentCompleted(db, fx.UserID, "company", &fx.L1, nil)
	wantKind(t, err, helper.ErrKindAccessDenied)
}

func TestContentRefExactlyOne(t *testing.T) {
	db := newTestDB(t)
	fx := seedCourse(t, db)

	_, err := MarkContentCompleted(db, fx.UserID, "student", nil, nil)
	wantKind(t, err, helper.ErrKindBadRequest)

	_, err = MarkContentCompleted(db, fx.UserID, "student", &fx.L1, &fx.T1)
	wantKind(t, err, helper.ErrKindBadRequest)
}

func TestGetLessonMaterialGatedAcrossSections(t *testing.T) {
	db := newTestDB(t)
	fx := seedCourse(t, db)

	// L2 terkunci sebelum L1 complete
	_, err := GetLessonMaterial(db, fx.UserID, fx.L2, "student")
	wantKind(t, err, helper.ErrKindPrerequisiteNotMet)

	if _, err := MarkContentCompleted(db, fx.UserID, "student", &fx.L1, nil); err != nil {
		t.Fatalf("L1: %v", err)
	}
	lesson, err := GetLessonMaterial(db, fx.UserID, fx.L2, "student")
	if err != nil {
		t.Fatalf("L2 setelah L1: %v", err)
	}
	if lesson.LessonContent == "" {
		t.Fatalf("konten lesson kosong")
	}

	// L3 di section 2 butuh semua lesson section 1 selesai
	_, err = GetLessonMaterial(db, fx.UserID, fx.L3, "student")
	wantKind(t, err, helper.ErrKindPrerequisiteNotMet)
}
