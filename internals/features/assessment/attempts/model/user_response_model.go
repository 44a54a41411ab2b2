// file: internals/features/assessment/attempts/model/user_response_model.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =============================================================================
   ENUM-like: Response Status ('submitted','auto_graded','manual_graded')
   submitted → auto_graded (objective, saat submit) atau
   submitted → manual_graded (short answer, via grading op). Keduanya terminal.
============================================================================= */

type UserResponseStatus string

const (
	ResponseSubmitted    UserResponseStatus = "submitted"
	ResponseAutoGraded   UserResponseStatus = "auto_graded"
	ResponseManualGraded UserResponseStatus = "manual_graded"
)

func (s UserResponseStatus) String() string { return string(s) }

func (s UserResponseStatus) Valid() bool {
	switch s {
	case ResponseSubmitted, ResponseAutoGraded, ResponseManualGraded:
		return true
	default:
		return false
	}
}

// Terminal: sudah kebagian nilai (auto ataupun manual).
func (s UserResponseStatus) Terminal() bool {
	return s == ResponseAutoGraded || s == ResponseManualGraded
}

func (s *UserResponseStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = UserResponseStatus(v)
	case []byte:
		*s = UserResponseStatus(string(v))
	default:
		return fmt.Errorf("unsupported type for UserResponseStatus: %T", value)
	}
	if !s.Valid() {
		return fmt.Errorf("invalid UserResponseStatus: %q", *s)
	}
	return nil
}

func (s UserResponseStatus) Value() (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	if !s.Valid() {
		return nil, fmt.Errorf("invalid UserResponseStatus: %q", s)
	}
	return string(s), nil
}

/* =============================================================================
   MODEL: user_responses
   selected_options (jsonb, array option id) untuk MCQ/TRUE_FALSE;
   short_answer untuk SHORT_ANSWER — mutually exclusive per tipe question.
   marks_obtained nullable (short answer belum dinilai), ≤ marks question.
============================================================================= */

type UserResponseModel struct {
	UserResponseID         uuid.UUID          `gorm:"column:user_response_id;type:uuid;primaryKey" json:"user_response_id"`
	UserResponseAttemptID  uuid.UUID          `gorm:"column:user_response_attempt_id;type:uuid;not null;index" json:"user_response_attempt_id"`
	UserResponseQuestionID uuid.UUID          `gorm:"column:user_response_question_id;type:uuid;not null;index" json:"user_response_question_id"`
	UserResponseStatus     UserResponseStatus `gorm:"column:user_response_status;type:varchar(16);not null" json:"user_response_status"`

	UserResponseSelectedOptions datatypes.JSON `gorm:"column:user_response_selected_options;type:jsonb" json:"user_response_selected_options,omitempty"`
	UserResponseShortAnswer     *string        `gorm:"column:user_response_short_answer;type:text" json:"user_response_short_answer,omitempty"`

	UserResponseIsCorrect     *bool    `gorm:"column:user_response_is_correct" json:"user_response_is_correct,omitempty"`
	UserResponseMarksObtained *float64 `gorm:"column:user_response_marks_obtained;type:numeric(6,2)" json:"user_response_marks_obtained,omitempty"`
}

func (UserResponseModel) TableName() string { return "user_responses" }

func (m *UserResponseModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserResponseID == uuid.Nil {
		m.UserResponseID = uuid.New()
	}
	return nil
}

// SetSelectedOptions menyimpan himpunan option id sebagai jsonb.
func (m *UserResponseModel) SetSelectedOptions(ids []uuid.UUID) error {
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	m.UserResponseSelectedOptions = datatypes.JSON(b)
	return nil
}

// SelectedOptionIDs membaca kembali himpunan option id dari jsonb.
func (m *UserResponseModel) SelectedOptionIDs() ([]uuid.UUID, error) {
	if len(m.UserResponseSelectedOptions) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal(m.UserResponseSelectedOptions, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
