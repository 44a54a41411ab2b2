// file: internals/features/course/courses/model/course_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseModel struct {
	CourseID          uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey" json:"course_id"`
	CourseTitle       string    `gorm:"column:course_title;type:text;not null" json:"course_title"`
	CourseDescription string    `gorm:"column:course_description;type:text" json:"course_description"`
	CoursePrice       float64   `gorm:"column:course_price;type:numeric(12,2);not null;default:0" json:"course_price"`

	CourseCreatedAt time.Time `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
}

func (CourseModel) TableName() string { return "courses" }

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		m.CourseID = uuid.New()
	}
	return nil
}
