// file: internals/features/course/tests/model/question_model.go
package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =============================================================================
   ENUM-like: Question Type ('mcq','true_false','short_answer')
   Tipe question immutable setelah create (ditolak di DTO update).
============================================================================= */

type QuestionType string

const (
	QuestionTypeMCQ         QuestionType = "mcq"
	QuestionTypeTrueFalse   QuestionType = "true_false"
	QuestionTypeShortAnswer QuestionType = "short_answer"
)

func (t QuestionType) String() string { return string(t) }

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeMCQ, QuestionTypeTrueFalse, QuestionTypeShortAnswer:
		return true
	default:
		return false
	}
}

// IsObjective: bisa di-auto-grade saat submit.
func (t QuestionType) IsObjective() bool {
	return t == QuestionTypeMCQ || t == QuestionTypeTrueFalse
}

func (t *QuestionType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = QuestionType(v)
	case []byte:
		*t = QuestionType(string(v))
	default:
		return fmt.Errorf("unsupported type for QuestionType: %T", value)
	}
	if !t.Valid() {
		return fmt.Errorf("invalid QuestionType: %q", *t)
	}
	return nil
}

func (t QuestionType) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	if !t.Valid() {
		return nil, fmt.Errorf("invalid QuestionType: %q", t)
	}
	return string(t), nil
}

/* =============================================================================
   MODEL: questions + question_options + question_answers
   Tagged union per tipe: MCQ/TRUE_FALSE punya Options (dengan is_correct),
   SHORT_ANSWER punya Answers (kunci referensi untuk grader manual).
============================================================================= */

type QuestionModel struct {
	QuestionID     uuid.UUID    `gorm:"column:question_id;type:uuid;primaryKey" json:"question_id"`
	QuestionTestID uuid.UUID    `gorm:"column:question_test_id;type:uuid;not null;index" json:"question_test_id"`
	QuestionType   QuestionType `gorm:"column:question_type;type:varchar(16);not null" json:"question_type"`
	QuestionText   string       `gorm:"column:question_text;type:text;not null" json:"question_text"`
	QuestionMarks  float64      `gorm:"column:question_marks;type:numeric(6,2);not null;default:1" json:"question_marks"`
	QuestionOrder  int          `gorm:"column:question_order;not null;default:0" json:"question_order"`

	QuestionCreatedAt time.Time `gorm:"column:question_created_at;autoCreateTime" json:"question_created_at"`
	QuestionUpdatedAt time.Time `gorm:"column:question_updated_at;autoUpdateTime" json:"question_updated_at"`

	Options []QuestionOptionModel `gorm:"foreignKey:OptionQuestionID;references:QuestionID" json:"options,omitempty"`
	Answers []QuestionAnswerModel `gorm:"foreignKey:AnswerQuestionID;references:QuestionID" json:"answers,omitempty"`
}

func (QuestionModel) TableName() string { return "questions" }

func (m *QuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuestionID == uuid.Nil {
		m.QuestionID = uuid.New()
	}
	return nil
}

// CorrectOptionIDs: himpunan option yang di-flag benar (untuk exact set match).
func (m *QuestionModel) CorrectOptionIDs() map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]struct{}, len(m.Options))
	for _, op := range m.Options {
		if op.OptionIsCorrect {
			out[op.OptionID] = struct{}{}
		}
	}
	return out
}

// ValidateShape me-mirror CHECK constraint DB supaya fail cepat di app:
// objective wajib punya ≥2 options dan ≥1 correct; short answer tanpa options.
func (m *QuestionModel) ValidateShape() error {
	if m.QuestionType.IsObjective() {
		if len(m.Options) < 2 {
			return fmt.Errorf("question %s: minimal 2 opsi diperlukan", m.QuestionID)
		}
		correct := 0
		for _, op := range m.Options {
			if op.OptionIsCorrect {
				correct++
			}
		}
		if correct == 0 {
			return fmt.Errorf("question %s: minimal satu opsi is_correct=true", m.QuestionID)
		}
		if m.QuestionType == QuestionTypeTrueFalse && len(m.Options) != 2 {
			return fmt.Errorf("question %s: TRUE_FALSE harus tepat 2 opsi", m.QuestionID)
		}
		return nil
	}
	// SHORT_ANSWER
	if len(m.Options) != 0 {
		return fmt.Errorf("question %s: SHORT_ANSWER tidak boleh punya options", m.QuestionID)
	}
	return nil
}

type QuestionOptionModel struct {
	OptionID         uuid.UUID `gorm:"column:option_id;type:uuid;primaryKey" json:"option_id"`
	OptionQuestionID uuid.UUID `gorm:"column:option_question_id;type:uuid;not null;index" json:"option_question_id"`
	OptionText       string    `gorm:"column:option_text;type:text;not null" json:"option_text"`
	OptionIsCorrect  bool      `gorm:"column:option_is_correct;not null;default:false" json:"option_is_correct"`
	OptionOrder      int       `gorm:"column:option_order;not null;default:0" json:"option_order"`
}

func (QuestionOptionModel) TableName() string { return "question_options" }

func (m *QuestionOptionModel) BeforeCreate(tx *gorm.DB) error {
	if m.OptionID == uuid.Nil {
		m.OptionID = uuid.New()
	}
	return nil
}

type QuestionAnswerModel struct {
	AnswerID         uuid.UUID `gorm:"column:answer_id;type:uuid;primaryKey" json:"answer_id"`
	AnswerQuestionID uuid.UUID `gorm:"column:answer_question_id;type:uuid;not null;index" json:"answer_question_id"`
	AnswerText       string    `gorm:"column:answer_text;type:text;not null" json:"answer_text"`
}

func (QuestionAnswerModel) TableName() string { return "question_answers" }

func (m *QuestionAnswerModel) BeforeCreate(tx *gorm.DB) error {
	if m.AnswerID == uuid.Nil {
		m.AnswerID = uuid.New()
	}
	return nil
}
