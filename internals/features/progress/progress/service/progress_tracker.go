// file: internals/features/progress/progress/service/progress_tracker.go
package service

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	attemptModel "kursusku_backend/internals/features/assessment/attempts/model"
	courseModel "kursusku_backend/internals/features/course/courses/model"
	lessonModel "kursusku_backend/internals/features/course/lessons/model"
	testModel "kursusku_backend/internals/features/course/tests/model"
	enrollService "kursusku_backend/internals/features/enrollment/enrollments/service"
	progressModel "kursusku_backend/internals/features/progress/progress/model"
	helper "kursusku_backend/internals/helpers"
)

/* =============================================================================
   Progress tracker
   Semua mutasi jalan dalam SATU transaction: cek prasyarat, upsert record,
   hitung ulang agregat course, tulis agregat ke enrollment. Tidak ada state
   antara (record ketulis tapi agregat basi) yang bisa keobservasi.
============================================================================= */

type SectionProgress struct {
	SectionID      uuid.UUID `json:"section_id"`
	SectionTitle   string    `json:"section_title"`
	SectionOrder   int       `json:"section_order"`
	CompletedItems int       `json:"completed_items"`
	TotalItems     int       `json:"total_items"`
}

type CourseProgress struct {
	CourseID       uuid.UUID         `json:"course_id"`
	CompletedItems int               `json:"completed_items"`
	TotalItems     int               `json:"total_items"`
	Percentage     int               `json:"percentage"`
	IsCompleted    bool              `json:"is_completed"`
	Sections       []SectionProgress `json:"sections"`
}

// MarkContentCompleted menandai satu lesson ATAU test selesai untuk user.
// Prasyarat: lesson → semua lesson ber-order lebih kecil di section yang sama
// sudah complete; test → semua test published yang dibuat lebih dulu di course
// sudah pernah di-attempt user. Idempotent: item yang sudah complete jadi
// no-op yang tetap mengembalikan agregat terkini.
func MarkContentCompleted(db *gorm.DB, userID uuid.UUID, actorKind string, lessonID, testID *uuid.UUID) (*CourseProgress, error) {
	if err := validateContentRef(lessonID, testID); err != nil {
		return nil, err
	}

	var out *CourseProgress
	err := db.Transaction(func(tx *gorm.DB) error {
		var (
			courseID  uuid.UUID
			sectionID uuid.UUID
		)

		if lessonID != nil {
			lesson, err := loadLesson(tx, *lessonID)
			if err != nil {
				return err
			}
			courseID, sectionID = lesson.LessonCourseID, lesson.LessonSectionID

			if _, err := enrollService.RequireValidAccess(tx, userID, courseID, actorKind); err != nil {
				return err
			}
			if err := checkLessonPrerequisites(tx, userID, lesson); err != nil {
				return err
			}
		} else {
			test, err := loadTest(tx, *testID)
			if err != nil {
				return err
			}
			courseID, sectionID = test.TestCourseID, test.TestSectionID

			if _, err := enrollService.RequireValidAccess(tx, userID, courseID, actorKind); err != nil {
				return err
			}
			if err := checkTestPrerequisites(tx, userID, test); err != nil {
				return err
			}
		}

		if err := upsertCompleted(tx, userID, courseID, sectionID, lessonID, testID); err != nil {
			return err
		}

		agg, err := computeCourseProgress(tx, userID, courseID)
		if err != nil {
			return err
		}
		if err := enrollService.ApplyAggregates(tx, userID, courseID, agg.Percentage, agg.IsCompleted); err != nil {
			return err
		}
		out = agg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkContentIncomplete membalik record yang sudah ada jadi incomplete.
// Tidak cascade: item setelahnya yang sudah complete tetap complete — gate
// urutan dicek saat completion, bukan dependency graph hidup.
func MarkContentIncomplete(db *gorm.DB, userID uuid.UUID, lessonID, testID *uuid.UUID) (*CourseProgress, error) {
	if err := validateContentRef(lessonID, testID); err != nil {
		return nil, err
	}

	var out *CourseProgress
	err := db.Transaction(func(tx *gorm.DB) error {
		var record progressModel.ProgressRecordModel
		q := tx.Where("progress_user_id = ?", userID)
		if lessonID != nil {
			q = q.Where("progress_lesson_id = ?", *lessonID)
		} else {
			q = q.Where("progress_test_id = ?", *testID)
		}
		if err := q.First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.NewAppError(helper.ErrKindNotFound, "Progress record tidak ditemukan")
			}
			return err
		}

		if record.ProgressIsCompleted {
			if err := tx.Model(&record).
				Update("progress_is_completed", false).Error; err != nil {
				return err
			}
		}

		agg, err := computeCourseProgress(tx, userID, record.ProgressCourseID)
		if err != nil {
			return err
		}
		if err := enrollService.ApplyAggregates(tx, userID, record.ProgressCourseID, agg.Percentage, agg.IsCompleted); err != nil {
			return err
		}
		out = agg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkCourseCompleted: bulk-completion administratif — semua lesson & test di
// course di-upsert complete dalam satu langkah atomic, melewati aturan
// prasyarat (bulk completion memang tidak sekuensial). Agregat dihitung sekali
// di akhir.
func MarkCourseCompleted(db *gorm.DB, userID uuid.UUID, courseID uuid.UUID, actorKind string) (*CourseProgress, error) {
	var out *CourseProgress
	err := db.Transaction(func(tx *gorm.DB) error {
		var course courseModel.CourseModel
		if err := tx.First(&course, "course_id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.NewAppError(helper.ErrKindNotFound, "Course tidak ditemukan")
			}
			return err
		}

		if _, err := enrollService.RequireValidAccess(tx, userID, courseID, actorKind); err != nil {
			return err
		}

		var lessons []lessonModel.LessonModel
		if err := tx.Where("lesson_course_id = ?", courseID).Find(&lessons).Error; err != nil {
			return err
		}
		var tests []testModel.TestModel
		if err := tx.Where("test_course_id = ?", courseID).Find(&tests).Error; err != nil {
			return err
		}

		for i := range lessons {
			id := lessons[i].LessonID
			if err := upsertCompleted(tx, userID, courseID, lessons[i].LessonSectionID, &id, nil); err != nil {
				return err
			}
		}
		for i := range tests {
			id := tests[i].TestID
			if err := upsertCompleted(tx, userID, courseID, tests[i].TestSectionID, nil, &id); err != nil {
				return err
			}
		}

		agg, err := computeCourseProgress(tx, userID, courseID)
		if err != nil {
			return err
		}
		if err := enrollService.ApplyAggregates(tx, userID, courseID, agg.Percentage, agg.IsCompleted); err != nil {
			return err
		}
		out = agg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetCourseProgress: read murni, tanpa side effect.
func GetCourseProgress(db *gorm.DB, userID uuid.UUID, courseID uuid.UUID) (*CourseProgress, error) {
	var course courseModel.CourseModel
	if err := db.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewAppError(helper.ErrKindNotFound, "Course tidak ditemukan")
		}
		return nil, err
	}
	return computeCourseProgress(db, userID, courseID)
}

// GetLessonMaterial mengembalikan konten lesson hanya kalau semua lesson yang
// mendahuluinya (urut section dulu, lalu urut lesson) sudah complete.
func GetLessonMaterial(db *gorm.DB, userID uuid.UUID, lessonID uuid.UUID, actorKind string) (*lessonModel.LessonModel, error) {
	lesson, err := loadLesson(db, lessonID)
	if err != nil {
		return nil, err
	}
	if _, err := enrollService.RequireValidAccess(db, userID, lesson.LessonCourseID, actorKind); err != nil {
		return nil, err
	}

	var section courseModel.SectionModel
	if err := db.First(&section, "section_id = ?", lesson.LessonSectionID).Error; err != nil {
		return nil, err
	}

	// Semua lesson course diurut (section_order, lesson_order); semua yang
	// mendahului lesson ini harus complete.
	type orderedLesson struct {
		LessonID     uuid.UUID
		LessonTitle  string
		LessonOrder  int
		SectionOrder int
	}
	var ordered []orderedLesson
	if err := db.Table("lessons").
		Select("lessons.lesson_id, lessons.lesson_title, lessons.lesson_order, sections.section_order").
		Joins("JOIN sections ON sections.section_id = lessons.lesson_section_id").
		Where("lessons.lesson_course_id = ?", lesson.LessonCourseID).
		Order("sections.section_order ASC, lessons.lesson_order ASC").
		Scan(&ordered).Error; err != nil {
		return nil, err
	}

	completed, err := completedLessonIDs(db, userID, lesson.LessonCourseID)
	if err != nil {
		return nil, err
	}

	for _, ol := range ordered {
		if ol.LessonID == lesson.LessonID {
			break
		}
		if ol.SectionOrder > section.SectionOrder ||
			(ol.SectionOrder == section.SectionOrder && ol.LessonOrder >= lesson.LessonOrder) {
			continue
		}
		if _, ok := completed[ol.LessonID]; !ok {
			return nil, helper.NewAppError(helper.ErrKindPrerequisiteNotMet, "Selesaikan lesson sebelumnya dulu").
				WithDetails(map[string]any{
					"blocking_lesson_id":    ol.LessonID,
					"blocking_lesson_title": ol.LessonTitle,
					"blocking_lesson_order": ol.LessonOrder,
					"blocking_section_order": ol.SectionOrder,
				})
		}
	}

	return lesson, nil
}

/* =============================================================================
   Internal
============================================================================= */

func validateContentRef(lessonID, testID *uuid.UUID) error {
	hasLesson := lessonID != nil && *lessonID != uuid.Nil
	hasTest := testID != nil && *testID != uuid.Nil
	if hasLesson == hasTest {
		return helper.NewAppError(helper.ErrKindBadRequest, "Kirim tepat satu dari lesson_id atau test_id")
	}
	return nil
}

func loadLesson(tx *gorm.DB, lessonID uuid.UUID) (*lessonModel.LessonModel, error) {
	var lesson lessonModel.LessonModel
	if err := tx.First(&lesson, "lesson_id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewAppError(helper.ErrKindNotFound, "Lesson tidak ditemukan")
		}
		return nil, err
	}
	return &lesson, nil
}

func loadTest(tx *gorm.DB, testID uuid.UUID) (*testModel.TestModel, error) {
	var test testModel.TestModel
	if err := tx.First(&test, "test_id = ?", testID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewAppError(helper.ErrKindNotFound, "Test tidak ditemukan")
		}
		return nil, err
	}
	return &test, nil
}

// checkLessonPrerequisites: semua lesson di section yang sama dengan order
// strictly lebih kecil harus sudah complete. Error menyebut item pemblokir
// (order-nya), bukan sekadar boolean.
func checkLessonPrerequisites(tx *gorm.DB, userID uuid.UUID, lesson *lessonModel.LessonModel) error {
	var earlier []lessonModel.LessonModel
	if err := tx.
		Where("lesson_section_id = ? AND lesson_order < ?", lesson.LessonSectionID, lesson.LessonOrder).
		Order("lesson_order ASC").
		Find(&earlier).Error; err != nil {
		return err
	}
	if len(earlier) == 0 {
		return nil
	}

	completed, err := completedLessonIDs(tx, userID, lesson.LessonCourseID)
	if err != nil {
		return err
	}
	for _, e := range earlier {
		if _, ok := completed[e.LessonID]; !ok {
			return helper.NewAppError(helper.ErrKindPrerequisiteNotMet, "Selesaikan lesson sebelumnya dulu").
				WithDetails(map[string]any{
					"blocking_lesson_id":    e.LessonID,
					"blocking_lesson_title": e.LessonTitle,
					"blocking_lesson_order": e.LessonOrder,
				})
		}
	}
	return nil
}

// checkTestPrerequisites: semua test published yang dibuat lebih dulu di
// course harus sudah pernah di-attempt user (status attempt apa pun dihitung).
func checkTestPrerequisites(tx *gorm.DB, userID uuid.UUID, test *testModel.TestModel) error {
	var earlier []testModel.TestModel
	if err := tx.
		Where("test_course_id = ? AND test_is_published = ? AND test_created_at < ?",
			test.TestCourseID, true, test.TestCreatedAt).
		Order("test_created_at ASC").
		Find(&earlier).Error; err != nil {
		return err
	}
	if len(earlier) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(earlier))
	for _, e := range earlier {
		ids = append(ids, e.TestID)
	}
	var attempted []uuid.UUID
	if err := tx.Model(&attemptModel.TestAttemptModel{}).
		Where("test_attempt_user_id = ? AND test_attempt_test_id IN ?", userID, ids).
		Pluck("test_attempt_test_id", &attempted).Error; err != nil {
		return err
	}
	has := make(map[uuid.UUID]struct{}, len(attempted))
	for _, id := range attempted {
		has[id] = struct{}{}
	}
	for i, e := range earlier {
		if _, ok := has[e.TestID]; !ok {
			return helper.NewAppError(helper.ErrKindPrerequisiteNotMet, "Kerjakan test sebelumnya dulu").
				WithDetails(map[string]any{
					"blocking_test_id":    e.TestID,
					"blocking_test_title": e.TestTitle,
					"blocking_test_order": i + 1,
				})
		}
	}
	return nil
}

func completedLessonIDs(tx *gorm.DB, userID, courseID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	if err := tx.Model(&progressModel.ProgressRecordModel{}).
		Where("progress_user_id = ? AND progress_course_id = ? AND progress_is_completed = ? AND progress_lesson_id IS NOT NULL",
			userID, courseID, true).
		Pluck("progress_lesson_id", &ids).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

// upsertCompleted: create record baru (complete) atau update record lama jadi
// complete. Record existing yang sudah complete dibiarkan (idempotent).
func upsertCompleted(tx *gorm.DB, userID, courseID, sectionID uuid.UUID, lessonID, testID *uuid.UUID) error {
	var record progressModel.ProgressRecordModel
	q := tx.Where("progress_user_id = ?", userID)
	if lessonID != nil {
		q = q.Where("progress_lesson_id = ?", *lessonID)
	} else {
		q = q.Where("progress_test_id = ?", *testID)
	}
	err := q.First(&record).Error
	switch {
	case err == nil:
		if record.ProgressIsCompleted {
			return nil
		}
		return tx.Model(&record).Update("progress_is_completed", true).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		record = progressModel.ProgressRecordModel{
			ProgressUserID:      userID,
			ProgressCourseID:    courseID,
			ProgressSectionID:   sectionID,
			ProgressLessonID:    lessonID,
			ProgressTestID:      testID,
			ProgressIsCompleted: true,
		}
		if err := tx.Create(&record).Error; err != nil {
			// race dua request paralel: unique index menang, anggap sudah ada
			if helper.IsUniqueViolation(err) {
				return nil
			}
			return err
		}
		return nil
	default:
		return err
	}
}

// computeCourseProgress menghitung agregat course dari progress records.
// Total = semua lesson + semua test di course (publikasi test tidak difilter —
// satu aturan untuk semua path). 0 item → percentage 0 dan TIDAK complete.
func computeCourseProgress(tx *gorm.DB, userID, courseID uuid.UUID) (*CourseProgress, error) {
	var sections []courseModel.SectionModel
	if err := tx.Where("section_course_id = ?", courseID).
		Order("section_order ASC").
		Find(&sections).Error; err != nil {
		return nil, err
	}
	var lessons []lessonModel.LessonModel
	if err := tx.Where("lesson_course_id = ?", courseID).Find(&lessons).Error; err != nil {
		return nil, err
	}
	var tests []testModel.TestModel
	if err := tx.Where("test_course_id = ?", courseID).Find(&tests).Error; err != nil {
		return nil, err
	}

	var records []progressModel.ProgressRecordModel
	if err := tx.
		Where("progress_user_id = ? AND progress_course_id = ? AND progress_is_completed = ?", userID, courseID, true).
		Find(&records).Error; err != nil {
		return nil, err
	}
	completedLessons := make(map[uuid.UUID]struct{})
	completedTests := make(map[uuid.UUID]struct{})
	for _, r := range records {
		if r.ProgressLessonID != nil {
			completedLessons[*r.ProgressLessonID] = struct{}{}
		}
		if r.ProgressTestID != nil {
			completedTests[*r.ProgressTestID] = struct{}{}
		}
	}

	out := &CourseProgress{CourseID: courseID, Sections: make([]SectionProgress, 0, len(sections))}
	perSection := make(map[uuid.UUID]*SectionProgress, len(sections))
	for _, s := range sections {
		sp := SectionProgress{SectionID: s.SectionID, SectionTitle: s.SectionTitle, SectionOrder: s.SectionOrder}
		out.Sections = append(out.Sections, sp)
		perSection[s.SectionID] = &out.Sections[len(out.Sections)-1]
	}

	for _, l := range lessons {
		out.TotalItems++
		done := false
		if _, ok := completedLessons[l.LessonID]; ok {
			out.CompletedItems++
			done = true
		}
		if sp, ok := perSection[l.LessonSectionID]; ok {
			sp.TotalItems++
			if done {
				sp.CompletedItems++
			}
		}
	}
	for _, t := range tests {
		out.TotalItems++
		done := false
		if _, ok := completedTests[t.TestID]; ok {
			out.CompletedItems++
			done = true
		}
		if sp, ok := perSection[t.TestSectionID]; ok {
			sp.TotalItems++
			if done {
				sp.CompletedItems++
			}
		}
	}

	if out.TotalItems > 0 {
		out.Percentage = int(math.Round(100 * float64(out.CompletedItems) / float64(out.TotalItems)))
		out.IsCompleted = out.CompletedItems == out.TotalItems
	}
	return out, nil
}
