// file: internals/features/assessment/attempts/model/test_attempt_model.go
package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =============================================================================
   ENUM-like: Attempt Status ('under_review','graded')
   Status CREATED transient — tidak pernah dipersist, langsung dilipat ke
   write awal: ada short answer → under_review, semua objective → graded.
   graded terminal.
============================================================================= */

type TestAttemptStatus string

const (
	AttemptUnderReview TestAttemptStatus = "under_review"
	AttemptGraded      TestAttemptStatus = "graded"
)

func (s TestAttemptStatus) String() string { return string(s) }

func (s TestAttemptStatus) Valid() bool {
	return s == AttemptUnderReview || s == AttemptGraded
}

func (s *TestAttemptStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = TestAttemptStatus(v)
	case []byte:
		*s = TestAttemptStatus(string(v))
	default:
		return fmt.Errorf("unsupported type for TestAttemptStatus: %T", value)
	}
	if !s.Valid() {
		return fmt.Errorf("invalid TestAttemptStatus: %q", *s)
	}
	return nil
}

func (s TestAttemptStatus) Value() (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	if !s.Valid() {
		return nil, fmt.Errorf("invalid TestAttemptStatus: %q", s)
	}
	return string(s), nil
}

/* =============================================================================
   MODEL: test_attempts
   Maksimal SATU attempt per (user, test), selamanya — dijaga unique index di
   store (uq_test_attempts_user_test), bukan cuma existence check aplikasi,
   supaya dua submit paralel tidak bisa dua-duanya masuk.
============================================================================= */

type TestAttemptModel struct {
	TestAttemptID     uuid.UUID         `gorm:"column:test_attempt_id;type:uuid;primaryKey" json:"test_attempt_id"`
	TestAttemptUserID uuid.UUID         `gorm:"column:test_attempt_user_id;type:uuid;not null;uniqueIndex:uq_test_attempts_user_test,priority:1" json:"test_attempt_user_id"`
	TestAttemptTestID uuid.UUID         `gorm:"column:test_attempt_test_id;type:uuid;not null;uniqueIndex:uq_test_attempts_user_test,priority:2" json:"test_attempt_test_id"`
	TestAttemptStatus TestAttemptStatus `gorm:"column:test_attempt_status;type:varchar(16);not null" json:"test_attempt_status"`

	TestAttemptScore      float64 `gorm:"column:test_attempt_score;type:numeric(7,2);not null;default:0" json:"test_attempt_score"`
	TestAttemptPercentage float64 `gorm:"column:test_attempt_percentage;type:numeric(5,2);not null;default:0" json:"test_attempt_percentage"`
	TestAttemptIsPassed   bool    `gorm:"column:test_attempt_is_passed;not null;default:false" json:"test_attempt_is_passed"`

	// Snapshot total marks test saat submit; perubahan test sesudahnya tidak
	// mengubah attempt lama.
	TestAttemptTotalMarks float64 `gorm:"column:test_attempt_total_marks;type:numeric(7,2);not null;default:0" json:"test_attempt_total_marks"`

	TestAttemptCompletedAt time.Time `gorm:"column:test_attempt_completed_at;not null" json:"test_attempt_completed_at"`
	TestAttemptCreatedAt   time.Time `gorm:"column:test_attempt_created_at;autoCreateTime" json:"test_attempt_created_at"`
	TestAttemptUpdatedAt   time.Time `gorm:"column:test_attempt_updated_at;autoUpdateTime" json:"test_attempt_updated_at"`

	Responses []UserResponseModel `gorm:"foreignKey:UserResponseAttemptID;references:TestAttemptID" json:"responses,omitempty"`
}

func (TestAttemptModel) TableName() string { return "test_attempts" }

func (m *TestAttemptModel) BeforeCreate(tx *gorm.DB) error {
	if m.TestAttemptID == uuid.Nil {
		m.TestAttemptID = uuid.New()
	}
	return nil
}
