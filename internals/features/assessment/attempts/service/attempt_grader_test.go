// file: internals/features/assessment/attempts/service/attempt_grader_test.go
package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	attemptModel "kursusku_backend/internals/features/assessment/attempts/model"
	testModel "kursusku_backend/internals/features/course/tests/model"
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
		&testModel.TestModel{},
		&testModel.QuestionModel{},
		&testModel.QuestionOptionModel{},
		&testModel.QuestionAnswerModel{},
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

// fixture: MCQ 2 marks (benar: A & C, multi-select), TRUE_FALSE 1 mark
// (benar: TRUE), SHORT_ANSWER 2 marks. Total 5, passing 60%.
type testFixture struct {
	TestID uuid.UUID
	MCQ    uuid.UUID
	OptA   uuid.UUID
	OptB   uuid.UUID
	OptC   uuid.UUID
	TF     uuid.UUID
	True   uuid.UUID
	False  uuid.UUID
	Short  uuid.UUID
}

func seedTest(t *testing.T, db *gorm.DB) testFixture {
	t.Helper()
	ts := testModel.TestModel{
		TestSectionID:    uuid.New(),
		TestCourseID:     uuid.New(),
		TestTitle:        "Kuis Dasar",
		TestTotalMarks:   5,
		TestPassingScore: 60,
		TestIsPublished:  true,
		Questions: []testModel.QuestionModel{
			{
				QuestionType:  testModel.QuestionTypeMCQ,
				QuestionText:  "Pilih semua yang benar",
				QuestionMarks: 2,
				QuestionOrder: 1,
				Options: []testModel.QuestionOptionModel{
					{OptionText: "A", OptionIsCorrect: true, OptionOrder: 1},
					{OptionText: "B", OptionIsCorrect: false, OptionOrder: 2},
					{OptionText: "C", OptionIsCorrect: true, OptionOrder: 3},
				},
			},
			{
				QuestionType:  testModel.QuestionTypeTrueFalse,
				QuestionText:  "Go punya garbage collector",
				QuestionMarks: 1,
				QuestionOrder: 2,
				Options: []testModel.QuestionOptionModel{
					{OptionText: "Benar", OptionIsCorrect: true, OptionOrder: 1},
					{OptionText: "Salah", OptionIsCorrect: false, OptionOrder: 2},
				},
			},
			{
				QuestionType:  testModel.QuestionTypeShortAnswer,
				QuestionText:  "Jelaskan goroutine",
				QuestionMarks: 2,
				QuestionOrder: 3,
				Answers: []testModel.QuestionAnswerModel{
					{AnswerText: "lightweight thread yang dijadwalkan runtime Go"},
				},
			},
		},
	}
	if err := db.Create(&ts).Error; err != nil {
		t.Fatalf("seed test: %v", err)
	}

	fx := testFixture{TestID: ts.TestID}
	fx.MCQ = ts.Questions[0].QuestionID
	fx.OptA = ts.Questions[0].Options[0].OptionID
	fx.OptB = ts.Questions[0].Options[1].OptionID
	fx.OptC = ts.Questions[0].Options[2].OptionID
	fx.TF = ts.Questions[1].QuestionID
	fx.True = ts.Questions[1].Options[0].OptionID
	fx.False = ts.Questions[1].Options[1].OptionID
	fx.Short = ts.Questions[2].QuestionID
	return fx
}

func strptr(s string) *string { return &s }

func TestSubmitAutoGradesObjectiveAndHoldsShortAnswer(t *testing.T) {
	db := newTestDB(t)
	fx := seedTest(t, db)
	userID := uuid.New()

	attempt, err := SubmitAttempt(db, userID, fx.TestID, []ResponseInput{
		{QuestionID: fx.MCQ, SelectedOptionIDs: []uuid.UUID{fx.OptA, fx.OptC}},
		{QuestionID: fx.TF, SelectedOptionIDs: []uuid.UUID{fx.True}},
		{QuestionID: fx.Short, ShortAnswer: strptr("thread ringan")},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// provisional: 2 (mcq) + 1 (tf) = 3 dari 5 → 60%, pass on provisional
	if attempt.TestAttemptScore != 3 {
		t.Fatalf("score = %v, want 3", attempt.TestAttemptScore)
	}
	if attempt.TestAttemptPercentage != 60 || !attempt.TestAttemptIsPassed {
		t.Fatalf("percentage/pass salah: %+v", attempt)
	}
	if attempt.TestAttemptStatus != attemptModel.AttemptUnderReview {
		t.Fatalf("ada short answer → status harus under_review, dapat %s", attempt.TestAttemptStatus)
	}
	if attempt.TestAttemptTotalMarks != 5 {
		t.Fatalf("snapshot total marks salah: %v", attempt.TestAttemptTotalMarks)
	}

	for _, r := range attempt.Responses {
		switch r.UserResponseQuestionID {
		case fx.Short:
			if r.UserResponseStatus != attemptModel.ResponseSubmitted {
				t.Fatalf("short answer harus submitted, dapat %s", r.UserResponseStatus)
			}
			if r.UserResponseMarksObtained != nil || r.UserResponseIsCorrect != nil {
				t.Fatalf("short answer belum boleh punya nilai")
			}
		default:
			if r.UserResponseStatus != attemptModel.ResponseAutoGraded {
				t.Fatalf("objective harus auto_graded, dapat %s", r.UserResponseStatus)
			}
		}
	}
}

func TestSubmitExactSetEquality(t *testing.T) {
	cases := []struct {
		name     string
		selected func(fx testFixture) []uuid.UUID
		marks    float64
	}{
		{"exact match", func(fx testFixture) []uuid.UUID { return []uuid.UUID{fx.OptA, fx.OptC} }, 2},
		{"subset", func(fx testFixture) []uuid.UUID { return []uuid.UUID{fx.OptA} }, 0},
		{"superset", func(fx testFixture) []uuid.UUID { return []uuid.UUID{fx.OptA, fx.OptB, fx.OptC} }, 0},
		{"overlap", func(fx testFixture) []uuid.UUID { return []uuid.UUID{fx.OptA, fx.OptB} }, 0},
		{"empty", func(fx testFixture) []uuid.UUID { return nil }, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t)
			fx := seedTest(t, db)

			attempt, err := SubmitAttempt(db, uuid.New(), fx.TestID, []ResponseInput{
				{QuestionID: fx.MCQ, SelectedOptionIDs: tc.selected(fx)},
			})
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
			if attempt.TestAttemptScore != tc.marks {
				t.Fatalf("score = %v, want %v", attempt.TestAttemptScore, tc.marks)
			}
		})
	}
}

func TestSubmitRejectsSecondAttempt(t *testing.T) {
	db := newTestDB(t)
	fx := seedTest(t, db)
	userID := uuid.New()

	if _, err := SubmitAttempt(db, userID, fx.TestID, []ResponseInput{
		{QuestionID: fx.TF, SelectedOptionIDs: []uuid.UUID{fx.False}},
	}); err != nil {
		t.Fatalf("first: %v", err)
	}

	_, err := SubmitAttempt(db, userID, fx.TestID, []ResponseInput{
		{QuestionID: fx.TF, SelectedOptionIDs: []uuid.UUID{fx.True}},
	})
	wantKind(t, err, helper.ErrKindDuplicateAttempt)

	// user lain tidak kena
	if _, err := SubmitAttempt(db, uuid.New(), fx.TestID, []ResponseInput{
		{QuestionID: fx.TF, SelectedOptionIDs: []uuid.UUID{fx.True}},
	}); err != nil {
		t.Fatalf("user lain: %v", err)
	}
}

func TestSubmitRejectsForeignAndDuplicateQuestions(t *testing.T) {
	db := newTestDB(t)
	fx := seedTest(t, db)

	foreign := uuid.New()
	_, err := SubmitAttempt(db, uuid.New(), fx.TestID, []ResponseInput{
		{QuestionID: foreign, SelectedOptionIDs: []uuid.UUID{fx.OptA}},
	})
	wantKind(t, err, helper.ErrKindInvalidQuestion)

	_, err = SubmitAttempt(db, uuid.New(), fx.TestID, []ResponseInput{
		{QuestionID: fx.TF, SelectedOptionIDs: []uuid.UUID{fx.True}},
		{QuestionID: fx.TF, SelectedOptionIDs: []uuid.UUID{fx.False}},
	})
	wantKind(t, err, helper.ErrKindInvalidQuestion)

	// validasi gagal → tidak ada attempt ketulis
	var count int64
	db.Model(&attemptModel.TestAttemptModel{}).Count(&count)
	if count != 0 {
		t.Fatalf("attempt tidak boleh ketulis saat submit ditolak, dapat %d", count)
	}
}

func TestSubmitAllObjectiveDirectlyGraded(t *testing.T) {
	db := newTestDB(t)
	fx := seedTest(t, db)

	// skip short answer: unanswered ya sudah, tidak bikin under_review
	attempt, err := SubmitAttempt(db, uuid.New(), fx.TestID, []ResponseInput{
		{QuestionID: fx.MCQ, SelectedOptionIDs: []uuid.UUID{fx.OptA, fx.OptC}},
		{QuestionID: fx.TF, SelectedOptionIDs: []uuid.UUID{fx.True}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if attempt.TestAttemptStatus != attemptModel.AttemptGraded {
		t.Fatalf("tanpa short answer status harus graded, dapat %s", attempt.TestAttemptStatus)
	}
}

func TestSubmitDetectsCorruptTotalMarks(t *testing.T) {
	db := newTestDB(t)
	fx := seedTest(t, db)

	if err := db.Model(&testModel.TestModel{}).
		Where("test_id = ?", fx.TestID).
		Update("test_total_marks", 99).Error; err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	_, err := SubmitAttempt(db, uuid.New(), fx.TestID, []ResponseInput{
		{QuestionID: fx.TF, SelectedOptionIDs: []uuid.UUID{fx.True}},
	})
	wantKind(t, err, helper.ErrKindInvariantViolation)
}

func submitWithShort(t *testing.T, db *gorm.DB, fx testFixture) *attemptModel.TestAttemptModel {
	t.Helper()
	attempt, err := SubmitAttempt(db, uuid.New(), fx.TestID, []ResponseInput{
		{QuestionID: fx.MCQ, SelectedOptionIDs: []uuid.UUID{fx.OptA, fx.OptC}},
		{QuestionID: fx.TF, SelectedOptionIDs: []uuid.UUID{fx.True}},
		{QuestionID: fx.Short, ShortAnswer: strptr("thread ringan milik runtime")},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return attempt
}

func shortResponseID(t *testing.T, attempt *attemptModel.TestAttemptModel, fx testFixture) uuid.UUID {
	t.Helper()
	for _, r := range attempt.Responses {
		if r.UserResponseQuestionID == fx.Short {
			return r.UserResponseID
		}
	}
	t.Fatalf("short response tidak ketemu")
	return uuid.Nil
}

func objectiveResponseID(t *testing.T, attempt *attemptModel.TestAttemptModel, fx testFixture) uuid.UUID {
	t.Helper()
	for _, r := range attempt.Responses {
		if r.UserResponseQuestionID == fx.MCQ {
			return r.UserResponseID
		}
	}
	t.Fatalf("mcq response tidak ketemu")
	return uuid.Nil
}

func TestGradeResponsesFinalizesAttempt(t *testing.T) {
	db := newTestDB(t)
	fx := seedTest(t, db)
	attempt := submitWithShort(t, db, fx)
	respID := shortResponseID(t, attempt, fx)

	graded, err := GradeResponses(db, attempt.TestAttemptID, []GradingInput{
		{ResponseID: respID, Marks: 2},
	})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if graded.TestAttemptScore != 5 || graded.TestAttemptPercentage != 100 {
		t.Fatalf("recompute salah: %+v", graded)
	}
	if graded.TestAttemptStatus != attemptModel.AttemptGraded {
		t.Fatalf("semua response terminal → graded, dapat %s", graded.TestAttemptStatus)
	}

	var resp attemptModel.UserResponseModel
	if err := db.First(&resp, "user_response_id = ?", respID).Error; err != nil {
		t.Fatalf("read resp: %v", err)
	}
	if resp.UserResponseStatus != attemptModel.ResponseManualGraded {
		t.Fatalf("status response salah: %s", resp.UserResponseStatus)
	}
	if resp.UserResponseIsCorrect == nil || !*resp.UserResponseIsCorrect {
		t.Fatalf("marks penuh → is_correct true")
	}

	// grading ulang response yang sama → ditolak
	_, err = GradeResponses(db, attempt.TestAttemptID, []GradingInput{
		{ResponseID: respID, Marks: 1},
	})
	wantKind(t, err, helper.ErrKindAlreadyGraded)
}

func TestGradeResponsesPartialMarksNotCorrect(t *testing.T) {
	db := newTestDB(t)
	fx := seedTest(t, db)
	attempt := submitWithShort(t, db, fx)
	respID := shortResponseID(t, attempt, fx)

	graded, err := GradeResponses(db, attempt.TestAttemptID, []GradingInput{
		{ResponseID: respID, Marks: 1},
	})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if graded.TestAttemptScore != 4 {
		t.Fatalf("score = %v, want 4", graded.TestAttemptScore)
	}

	var resp attemptModel.UserResponseModel
	if err := db.First(&resp, "user_response_id = ?", respID).Error; err != nil {
		t.Fatalf("read resp: %v", err)
	}
	if resp.UserResponseIsCorrect == nil || *resp.UserResponseIsCorrect {
		t.Fatalf("marks parsial → is_correct false")
	}
}

func TestGradeResponsesValidationAndAtomicity(t *testing.T) {
	db := newTestDB(t)
	fx := seedTest(t, db)
	attempt := submitWithShort(t, db, fx)
	shortID := shortResponseID(t, attempt, fx)
	mcqID := objectiveResponseID(t, attempt, fx)

	// target bukan short answer
	_, err := GradeResponses(db, attempt.TestAttemptID, []GradingInput{
		{ResponseID: mcqID, Marks: 1},
	})
	wantKind(t, err, helper.ErrKindInvalidGradingTarget)

	// response dari attempt lain / tidak ada
	_, err = GradeResponses(db, attempt.TestAttemptID, []GradingInput{
		{ResponseID: uuid.New(), Marks: 1},
	})
	wantKind(t, err, helper.ErrKindNotFound)

	// marks negatif
	_, err = GradeResponses(db, attempt.TestAttemptID, []GradingInput{
		{ResponseID: shortID, Marks: -1},
	})
	wantKind(t, err, helper.ErrKindBadRequest)

	// marks melebihi maksimum question
	_, err = GradeResponses(db, attempt.TestAttemptID, []GradingInput{
		{ResponseID: shortID, Marks: 3},
	})
	wantKind(t, err, helper.ErrKindMarksExceeded)

	// duplikat dalam satu batch
	_, err = GradeResponses(db, attempt.TestAttemptID, []GradingInput{
		{ResponseID: shortID, Marks: 1},
		{ResponseID: shortID, Marks: 2},
	})
	wantKind(t, err, helper.ErrKindBadRequest)

	// satu item invalid membatalkan seluruh batch: short tetap belum dinilai
	_, err = GradeResponses(db, attempt.TestAttemptID, []GradingInput{
		{ResponseID: shortID, Marks: 2},
		{ResponseID: mcqID, Marks: 1},
	})
	wantKind(t, err, helper.ErrKindInvalidGradingTarget)

	var resp attemptModel.UserResponseModel
	if err := db.First(&resp, "user_response_id = ?", shortID).Error; err != nil {
		t.Fatalf("read resp: %v", err)
	}
	if resp.UserResponseStatus != attemptModel.ResponseSubmitted {
		t.Fatalf("batch gagal tidak boleh nyisa efek, status = %s", resp.UserResponseStatus)
	}

	var fresh attemptModel.TestAttemptModel
	if err := db.First(&fresh, "test_attempt_id = ?", attempt.TestAttemptID).Error; err != nil {
		t.Fatalf("read attempt: %v", err)
	}
	if fresh.TestAttemptStatus != attemptModel.AttemptUnderReview {
		t.Fatalf("attempt harus tetap under_review, dapat %s", fresh.TestAttemptStatus)
	}
}

func TestGetUserAttempt(t *testing.T) {
	db := newTestDB(t)
	fx := seedTest(t, db)
	userID := uuid.New()

	if _, err := SubmitAttempt(db, userID, fx.TestID, []ResponseInput{
		{QuestionID: fx.TF, SelectedOptionIDs: []uuid.UUID{fx.True}},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	attempt, err := GetUserAttempt(db, userID, fx.TestID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(attempt.Responses) != 1 {
		t.Fatalf("responses harus ikut ter-load")
	}

	_, err = GetUserAttempt(db, uuid.New(), fx.TestID)
	wantKind(t, err, helper.ErrKindNotFound)
}
