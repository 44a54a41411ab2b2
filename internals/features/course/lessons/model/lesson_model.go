// file: internals/features/course/lessons/model/lesson_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonModel: urutan lesson unik per section (uq_lessons_section_order).
// lesson_course_id diduplikasi dari section supaya query progress per course
// tidak perlu join.
type LessonModel struct {
	LessonID        uuid.UUID `gorm:"column:lesson_id;type:uuid;primaryKey" json:"lesson_id"`
	LessonSectionID uuid.UUID `gorm:"column:lesson_section_id;type:uuid;not null;index;uniqueIndex:uq_lessons_section_order,priority:1" json:"lesson_section_id"`
	LessonCourseID  uuid.UUID `gorm:"column:lesson_course_id;type:uuid;not null;index" json:"lesson_course_id"`
	LessonTitle     string    `gorm:"column:lesson_title;type:text;not null" json:"lesson_title"`
	LessonContent   string    `gorm:"column:lesson_content;type:text" json:"lesson_content"`
	LessonVideoURL  *string   `gorm:"column:lesson_video_url;type:text" json:"lesson_video_url,omitempty"`
	LessonOrder     int       `gorm:"column:lesson_order;not null;uniqueIndex:uq_lessons_section_order,priority:2" json:"lesson_order"`

	LessonCreatedAt time.Time `gorm:"column:lesson_created_at;autoCreateTime" json:"lesson_created_at"`
	LessonUpdatedAt time.Time `gorm:"column:lesson_updated_at;autoUpdateTime" json:"lesson_updated_at"`
}

func (LessonModel) TableName() string { return "lessons" }

func (m *LessonModel) BeforeCreate(tx *gorm.DB) error {
	if m.LessonID == uuid.Nil {
		m.LessonID = uuid.New()
	}
	return nil
}
