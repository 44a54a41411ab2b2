// file: internals/features/course/tests/model/test_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestModel: test_total_marks harus sama dengan jumlah marks semua question
// (dijaga di DTO authoring dan divalidasi ulang defensif di service).
type TestModel struct {
	TestID        uuid.UUID `gorm:"column:test_id;type:uuid;primaryKey" json:"test_id"`
	TestSectionID uuid.UUID `gorm:"column:test_section_id;type:uuid;not null;index" json:"test_section_id"`
	TestCourseID  uuid.UUID `gorm:"column:test_course_id;type:uuid;not null;index" json:"test_course_id"`
	TestTitle     string    `gorm:"column:test_title;type:text;not null" json:"test_title"`
	TestOrder     int       `gorm:"column:test_order;not null;default:0" json:"test_order"`

	TestTotalMarks   float64 `gorm:"column:test_total_marks;type:numeric(7,2);not null;default:0" json:"test_total_marks"`
	TestPassingScore float64 `gorm:"column:test_passing_score;type:numeric(5,2);not null;default:0" json:"test_passing_score"`
	TestTimeLimit    *int    `gorm:"column:test_time_limit" json:"test_time_limit,omitempty"` // menit
	TestIsPublished  bool    `gorm:"column:test_is_published;not null;default:false" json:"test_is_published"`

	TestCreatedAt time.Time `gorm:"column:test_created_at;autoCreateTime" json:"test_created_at"`
	TestUpdatedAt time.Time `gorm:"column:test_updated_at;autoUpdateTime" json:"test_updated_at"`

	Questions []QuestionModel `gorm:"foreignKey:QuestionTestID;references:TestID" json:"questions,omitempty"`
}

func (TestModel) TableName() string { return "tests" }

func (m *TestModel) BeforeCreate(tx *gorm.DB) error {
	if m.TestID == uuid.Nil {
		m.TestID = uuid.New()
	}
	return nil
}

// SumQuestionMarks menjumlahkan marks semua question yang ter-load.
func (m *TestModel) SumQuestionMarks() float64 {
	var sum float64
	for _, q := range m.Questions {
		sum += q.QuestionMarks
	}
	return sum
}
