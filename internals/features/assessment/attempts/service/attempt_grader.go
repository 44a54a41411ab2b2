// file: internals/features/assessment/attempts/service/attempt_grader.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	attemptModel "kursusku_backend/internals/features/assessment/attempts/model"
	testModel "kursusku_backend/internals/features/course/tests/model"
	helper "kursusku_backend/internals/helpers"
)

/* =============================================================================
   Attempt grader
   Submit bikin TEPAT SATU attempt per (user, test) selamanya: objective
   (MCQ/TRUE_FALSE) di-auto-grade dengan exact set equality, short answer
   nunggu grading manual. Semua insert response + finalisasi attempt satu
   langkah atomic.
============================================================================= */

type ResponseInput struct {
	QuestionID        uuid.UUID
	SelectedOptionIDs []uuid.UUID
	ShortAnswer       *string
}

type GradingInput struct {
	ResponseID uuid.UUID
	Marks      float64
}

// SubmitAttempt menilai submission test satu user.
// Skor provisional = jumlah marks auto-graded saja; short answer nyumbang 0
// sampai dinilai manual. isPassed dievaluasi pada skor provisional ini.
func SubmitAttempt(db *gorm.DB, userID, testID uuid.UUID, responses []ResponseInput) (*attemptModel.TestAttemptModel, error) {
	var out *attemptModel.TestAttemptModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var test testModel.TestModel
		err := tx.Preload("Questions.Options").First(&test, "test_id = ?", testID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.NewAppError(helper.ErrKindNotFound, "Test tidak ditemukan")
			}
			return err
		}

		// Validasi defensif: marks question harus berjumlah total marks test.
		// Seharusnya sudah dijaga saat authoring; kalau sampai beda berarti
		// data korup dan submit ditolak.
		if sum := test.SumQuestionMarks(); sum != test.TestTotalMarks {
			return helper.NewAppError(helper.ErrKindInvariantViolation, "Total marks test tidak konsisten dengan questions").
				WithDetails(map[string]any{
					"test_total_marks":   test.TestTotalMarks,
					"sum_question_marks": sum,
				})
		}

		// Fast path duplicate check; race paralel tetap ketangkap unique
		// index saat insert di bawah.
		var existing int64
		if err := tx.Model(&attemptModel.TestAttemptModel{}).
			Where("test_attempt_user_id = ? AND test_attempt_test_id = ?", userID, testID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return helper.NewAppError(helper.ErrKindDuplicateAttempt, "Anda sudah pernah submit test ini")
		}

		questions := make(map[uuid.UUID]*testModel.QuestionModel, len(test.Questions))
		for i := range test.Questions {
			questions[test.Questions[i].QuestionID] = &test.Questions[i]
		}

		// Semua question id di payload harus milik test ini, tanpa duplikat.
		var invalid []uuid.UUID
		seen := make(map[uuid.UUID]struct{}, len(responses))
		for _, r := range responses {
			if _, ok := questions[r.QuestionID]; !ok {
				invalid = append(invalid, r.QuestionID)
				continue
			}
			if _, dup := seen[r.QuestionID]; dup {
				invalid = append(invalid, r.QuestionID)
				continue
			}
			seen[r.QuestionID] = struct{}{}
		}
		if len(invalid) > 0 {
			return helper.NewAppError(helper.ErrKindInvalidQuestion, "Ada question yang bukan bagian dari test ini").
				WithDetails(map[string]any{"invalid_question_ids": invalid})
		}

		attempt := attemptModel.TestAttemptModel{
			TestAttemptUserID:      userID,
			TestAttemptTestID:      testID,
			TestAttemptTotalMarks:  test.TestTotalMarks,
			TestAttemptCompletedAt: time.Now(),
		}

		var (
			score    float64
			hasShort bool
		)
		for _, r := range responses {
			q := questions[r.QuestionID]
			resp := attemptModel.UserResponseModel{
				UserResponseQuestionID: q.QuestionID,
			}

			if q.QuestionType.IsObjective() {
				if err := resp.SetSelectedOptions(r.SelectedOptionIDs); err != nil {
					return err
				}
				correct := gradeObjective(q, r.SelectedOptionIDs)
				marks := 0.0
				if correct {
					marks = q.QuestionMarks
				}
				resp.UserResponseStatus = attemptModel.ResponseAutoGraded
				resp.UserResponseIsCorrect = &correct
				resp.UserResponseMarksObtained = &marks
				score += marks
			} else {
				// SHORT_ANSWER: tidak ada perbandingan saat submit; status
				// tetap submitted, marks null sampai dinilai manual.
				resp.UserResponseStatus = attemptModel.ResponseSubmitted
				resp.UserResponseShortAnswer = r.ShortAnswer
				hasShort = true
			}
			attempt.Responses = append(attempt.Responses, resp)
		}

		attempt.TestAttemptScore = score
		attempt.TestAttemptPercentage = percentageOf(score, test.TestTotalMarks)
		attempt.TestAttemptIsPassed = attempt.TestAttemptPercentage >= test.TestPassingScore
		if hasShort {
			attempt.TestAttemptStatus = attemptModel.AttemptUnderReview
		} else {
			attempt.TestAttemptStatus = attemptModel.AttemptGraded
		}

		// Attempt + semua response satu insert (cascade); (user, test) unik
		// di store jadi submit paralel kedua pasti gagal di sini.
		if err := tx.Create(&attempt).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return helper.NewAppError(helper.ErrKindDuplicateAttempt, "Anda sudah pernah submit test ini")
			}
			return err
		}
		out = &attempt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GradeResponses menerapkan grading manual untuk response short answer, lalu
// menghitung ulang skor total dari SEMUA response (auto + manual). Attempt
// jadi graded hanya kalau semua response-nya sudah terminal. Seluruh operasi
// atomic: satu grading invalid membatalkan semuanya.
func GradeResponses(db *gorm.DB, attemptID uuid.UUID, gradings []GradingInput) (*attemptModel.TestAttemptModel, error) {
	if len(gradings) == 0 {
		return nil, helper.NewAppError(helper.ErrKindBadRequest, "Minimal satu grading diperlukan")
	}

	var out *attemptModel.TestAttemptModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var attempt attemptModel.TestAttemptModel
		err := tx.Preload("Responses").First(&attempt, "test_attempt_id = ?", attemptID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.NewAppError(helper.ErrKindNotFound, "Attempt tidak ditemukan")
			}
			return err
		}

		var test testModel.TestModel
		if err := tx.Preload("Questions").First(&test, "test_id = ?", attempt.TestAttemptTestID).Error; err != nil {
			return err
		}
		questions := make(map[uuid.UUID]*testModel.QuestionModel, len(test.Questions))
		for i := range test.Questions {
			questions[test.Questions[i].QuestionID] = &test.Questions[i]
		}

		byID := make(map[uuid.UUID]*attemptModel.UserResponseModel, len(attempt.Responses))
		for i := range attempt.Responses {
			byID[attempt.Responses[i].UserResponseID] = &attempt.Responses[i]
		}

		// Fase 1: validasi SEMUA grading sebelum menyentuh state apa pun.
		seen := make(map[uuid.UUID]struct{}, len(gradings))
		for _, g := range gradings {
			resp, ok := byID[g.ResponseID]
			if !ok {
				return helper.NewAppError(helper.ErrKindNotFound, "Response tidak ditemukan pada attempt ini").
					WithDetails(map[string]any{"response_id": g.ResponseID})
			}
			if _, dup := seen[g.ResponseID]; dup {
				return helper.NewAppError(helper.ErrKindBadRequest, "Response yang sama dinilai dua kali dalam satu request").
					WithDetails(map[string]any{"response_id": g.ResponseID})
			}
			seen[g.ResponseID] = struct{}{}

			q, ok := questions[resp.UserResponseQuestionID]
			if !ok || q.QuestionType != testModel.QuestionTypeShortAnswer {
				return helper.NewAppError(helper.ErrKindInvalidGradingTarget, "Hanya response SHORT_ANSWER yang bisa dinilai manual").
					WithDetails(map[string]any{"response_id": g.ResponseID})
			}
			if resp.UserResponseStatus == attemptModel.ResponseManualGraded {
				return helper.NewAppError(helper.ErrKindAlreadyGraded, "Response ini sudah dinilai").
					WithDetails(map[string]any{"response_id": g.ResponseID})
			}
			if g.Marks < 0 {
				return helper.NewAppError(helper.ErrKindBadRequest, "Marks tidak boleh negatif").
					WithDetails(map[string]any{"response_id": g.ResponseID})
			}
			if g.Marks > q.QuestionMarks {
				return helper.NewAppError(helper.ErrKindMarksExceeded, "Marks melebihi maksimum question").
					WithDetails(map[string]any{
						"response_id":    g.ResponseID,
						"awarded_marks":  g.Marks,
						"question_marks": q.QuestionMarks,
					})
			}
		}

		// Fase 2: terapkan semua grading.
		for _, g := range gradings {
			resp := byID[g.ResponseID]
			q := questions[resp.UserResponseQuestionID]

			marks := g.Marks
			correct := marks == q.QuestionMarks
			resp.UserResponseStatus = attemptModel.ResponseManualGraded
			resp.UserResponseMarksObtained = &marks
			resp.UserResponseIsCorrect = &correct

			if err := tx.Model(&attemptModel.UserResponseModel{}).
				Where("user_response_id = ?", resp.UserResponseID).
				Updates(map[string]any{
					"user_response_status":         resp.UserResponseStatus,
					"user_response_marks_obtained": marks,
					"user_response_is_correct":     correct,
				}).Error; err != nil {
				return err
			}
		}

		// Hitung ulang agregat attempt dari semua response.
		var (
			total       float64
			allTerminal = true
		)
		for i := range attempt.Responses {
			r := &attempt.Responses[i]
			if r.UserResponseMarksObtained != nil {
				total += *r.UserResponseMarksObtained
			}
			if !r.UserResponseStatus.Terminal() {
				allTerminal = false
			}
		}

		attempt.TestAttemptScore = total
		attempt.TestAttemptPercentage = percentageOf(total, attempt.TestAttemptTotalMarks)
		attempt.TestAttemptIsPassed = attempt.TestAttemptPercentage >= test.TestPassingScore
		if allTerminal {
			attempt.TestAttemptStatus = attemptModel.AttemptGraded
		}

		if err := tx.Model(&attemptModel.TestAttemptModel{}).
			Where("test_attempt_id = ?", attempt.TestAttemptID).
			Updates(map[string]any{
				"test_attempt_score":      attempt.TestAttemptScore,
				"test_attempt_percentage": attempt.TestAttemptPercentage,
				"test_attempt_is_passed":  attempt.TestAttemptIsPassed,
				"test_attempt_status":     attempt.TestAttemptStatus,
			}).Error; err != nil {
			return err
		}
		out = &attempt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetAttempt mengambil satu attempt beserta response-nya.
func GetAttempt(db *gorm.DB, attemptID uuid.UUID) (*attemptModel.TestAttemptModel, error) {
	var attempt attemptModel.TestAttemptModel
	err := db.Preload("Responses").First(&attempt, "test_attempt_id = ?", attemptID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewAppError(helper.ErrKindNotFound, "Attempt tidak ditemukan")
		}
		return nil, err
	}
	return &attempt, nil
}

// GetUserAttempt mengambil attempt user untuk satu test (kalau ada).
func GetUserAttempt(db *gorm.DB, userID, testID uuid.UUID) (*attemptModel.TestAttemptModel, error) {
	var attempt attemptModel.TestAttemptModel
	err := db.Preload("Responses").
		Where("test_attempt_user_id = ? AND test_attempt_test_id = ?", userID, testID).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewAppError(helper.ErrKindNotFound, "Attempt tidak ditemukan")
		}
		return nil, err
	}
	return &attempt, nil
}

/* =============================================================================
   Internal
============================================================================= */

// gradeObjective: exact set equality — himpunan option yang dipilih harus
// identik dengan himpunan option benar (ukuran sama, elemen sama). Partial
// match (subset/superset/overlap) dapat 0.
func gradeObjective(q *testModel.QuestionModel, selected []uuid.UUID) bool {
	correct := q.CorrectOptionIDs()
	picked := make(map[uuid.UUID]struct{}, len(selected))
	for _, id := range selected {
		picked[id] = struct{}{}
	}
	if len(picked) != len(correct) {
		return false
	}
	for id := range picked {
		if _, ok := correct[id]; !ok {
			return false
		}
	}
	return len(correct) > 0
}

func percentageOf(score, totalMarks float64) float64 {
	if totalMarks <= 0 {
		return 0
	}
	return score / totalMarks * 100
}
