// file: internals/features/course/tests/dto/test_dto.go
package dto

import (
	"fmt"

	"github.com/google/uuid"

	testModel "kursusku_backend/internals/features/course/tests/model"
)

/* ==========================================================================================
   REQUEST — test + nested questions (admin/instructor)
   Invariant dijaga di sini sebelum masuk DB:
   - test_total_marks == Σ question_marks
   - shape question sesuai tipenya (lihat QuestionModel.ValidateShape)
========================================================================================== */

type CreateQuestionOptionRequest struct {
	OptionText      string `json:"option_text" validate:"required"`
	OptionIsCorrect bool   `json:"option_is_correct"`
	OptionOrder     int    `json:"option_order" validate:"omitempty,gte=0"`
}

type CreateQuestionAnswerRequest struct {
	AnswerText string `json:"answer_text" validate:"required"`
}

type CreateQuestionRequest struct {
	QuestionType  string  `json:"question_type" validate:"required,oneof=mcq true_false short_answer"`
	QuestionText  string  `json:"question_text" validate:"required"`
	QuestionMarks float64 `json:"question_marks" validate:"required,gt=0"`
	QuestionOrder int     `json:"question_order" validate:"omitempty,gte=0"`

	Options []CreateQuestionOptionRequest `json:"options" validate:"omitempty,dive"`
	Answers []CreateQuestionAnswerRequest `json:"answers" validate:"omitempty,dive"`
}

func (r *CreateQuestionRequest) ToModel(testID uuid.UUID) *testModel.QuestionModel {
	q := &testModel.QuestionModel{
		QuestionTestID: testID,
		QuestionType:   testModel.QuestionType(r.QuestionType),
		QuestionText:   r.QuestionText,
		QuestionMarks:  r.QuestionMarks,
		QuestionOrder:  r.QuestionOrder,
	}
	for _, op := range r.Options {
		q.Options = append(q.Options, testModel.QuestionOptionModel{
			OptionText:      op.OptionText,
			OptionIsCorrect: op.OptionIsCorrect,
			OptionOrder:     op.OptionOrder,
		})
	}
	for _, an := range r.Answers {
		q.Answers = append(q.Answers, testModel.QuestionAnswerModel{
			AnswerText: an.AnswerText,
		})
	}
	return q
}

type CreateTestRequest struct {
	TestSectionID    uuid.UUID `json:"test_section_id" validate:"required"`
	TestTitle        string    `json:"test_title" validate:"required"`
	TestOrder        int       `json:"test_order" validate:"omitempty,gte=0"`
	TestTotalMarks   float64   `json:"test_total_marks" validate:"required,gt=0"`
	TestPassingScore float64   `json:"test_passing_score" validate:"gte=0,lte=100"`
	TestTimeLimit    *int      `json:"test_time_limit" validate:"omitempty,gt=0"`

	Questions []CreateQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

// Validate mengecek invariant lintas-field yang tidak bisa diekspresikan
// lewat tag validator.
func (r *CreateTestRequest) Validate() error {
	var sum float64
	for _, q := range r.Questions {
		sum += q.QuestionMarks
	}
	if sum != r.TestTotalMarks {
		return fmt.Errorf("test_total_marks (%.2f) tidak sama dengan jumlah marks question (%.2f)", r.TestTotalMarks, sum)
	}
	return nil
}

// ToModel: test_course_id diisi controller dari section induk. Shape tiap
// question divalidasi lagi lewat ValidateShape sebelum Create.
func (r *CreateTestRequest) ToModel(courseID uuid.UUID) *testModel.TestModel {
	t := &testModel.TestModel{
		TestSectionID:    r.TestSectionID,
		TestCourseID:     courseID,
		TestTitle:        r.TestTitle,
		TestOrder:        r.TestOrder,
		TestTotalMarks:   r.TestTotalMarks,
		TestPassingScore: r.TestPassingScore,
		TestTimeLimit:    r.TestTimeLimit,
	}
	for _, q := range r.Questions {
		t.Questions = append(t.Questions, *q.ToModel(uuid.Nil))
	}
	return t
}

/* ==========================================================================================
   REQUEST — update (metadata saja; tipe question immutable, ubah soal =
   hapus question lalu buat ulang)
========================================================================================== */

type UpdateTestRequest struct {
	TestTitle        *string  `json:"test_title" validate:"omitempty,min=1"`
	TestOrder        *int     `json:"test_order" validate:"omitempty,gte=0"`
	TestPassingScore *float64 `json:"test_passing_score" validate:"omitempty,gte=0,lte=100"`
	TestTimeLimit    *int     `json:"test_time_limit" validate:"omitempty,gt=0"`
}

func (r *UpdateTestRequest) ApplyToModel(m *testModel.TestModel) {
	if r.TestTitle != nil {
		m.TestTitle = *r.TestTitle
	}
	if r.TestOrder != nil {
		m.TestOrder = *r.TestOrder
	}
	if r.TestPassingScore != nil {
		m.TestPassingScore = *r.TestPassingScore
	}
	if r.TestTimeLimit != nil {
		m.TestTimeLimit = r.TestTimeLimit
	}
}

/* ==========================================================================================
   RESPONSE — tampilan learner: is_correct dan kunci jawaban TIDAK ikut keluar
========================================================================================== */

type UserQuestionOptionResponse struct {
	OptionID    uuid.UUID `json:"option_id"`
	OptionText  string    `json:"option_text"`
	OptionOrder int       `json:"option_order"`
}

type UserQuestionResponse struct {
	QuestionID    uuid.UUID                    `json:"question_id"`
	QuestionType  string                       `json:"question_type"`
	QuestionText  string                       `json:"question_text"`
	QuestionMarks float64                      `json:"question_marks"`
	QuestionOrder int                          `json:"question_order"`
	Options       []UserQuestionOptionResponse `json:"options,omitempty"`
}

type UserTestResponse struct {
	TestID           uuid.UUID              `json:"test_id"`
	TestSectionID    uuid.UUID              `json:"test_section_id"`
	TestCourseID     uuid.UUID              `json:"test_course_id"`
	TestTitle        string                 `json:"test_title"`
	TestOrder        int                    `json:"test_order"`
	TestTotalMarks   float64                `json:"test_total_marks"`
	TestPassingScore float64                `json:"test_passing_score"`
	TestTimeLimit    *int                   `json:"test_time_limit,omitempty"`
	Questions        []UserQuestionResponse `json:"questions"`
}

func FromModelUserTest(m *testModel.TestModel) UserTestResponse {
	out := UserTestResponse{
		TestID:           m.TestID,
		TestSectionID:    m.TestSectionID,
		TestCourseID:     m.TestCourseID,
		TestTitle:        m.TestTitle,
		TestOrder:        m.TestOrder,
		TestTotalMarks:   m.TestTotalMarks,
		TestPassingScore: m.TestPassingScore,
		TestTimeLimit:    m.TestTimeLimit,
		Questions:        make([]UserQuestionResponse, 0, len(m.Questions)),
	}
	for _, q := range m.Questions {
		qr := UserQuestionResponse{
			QuestionID:    q.QuestionID,
			QuestionType:  q.QuestionType.String(),
			QuestionText:  q.QuestionText,
			QuestionMarks: q.QuestionMarks,
			QuestionOrder: q.QuestionOrder,
		}
		for _, op := range q.Options {
			qr.Options = append(qr.Options, UserQuestionOptionResponse{
				OptionID:    op.OptionID,
				OptionText:  op.OptionText,
				OptionOrder: op.OptionOrder,
			})
		}
		out.Questions = append(out.Questions, qr)
	}
	return out
}
