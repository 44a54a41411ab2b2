// file: internals/features/course/courses/model/section_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SectionModel: urutan section unik per course (uq_sections_course_order).
type SectionModel struct {
	SectionID       uuid.UUID `gorm:"column:section_id;type:uuid;primaryKey" json:"section_id"`
	SectionCourseID uuid.UUID `gorm:"column:section_course_id;type:uuid;not null;index;uniqueIndex:uq_sections_course_order,priority:1" json:"section_course_id"`
	SectionTitle    string    `gorm:"column:section_title;type:text;not null" json:"section_title"`
	SectionOrder    int       `gorm:"column:section_order;not null;uniqueIndex:uq_sections_course_order,priority:2" json:"section_order"`

	SectionCreatedAt time.Time `gorm:"column:section_created_at;autoCreateTime" json:"section_created_at"`
	SectionUpdatedAt time.Time `gorm:"column:section_updated_at;autoUpdateTime" json:"section_updated_at"`
}

func (SectionModel) TableName() string { return "sections" }

func (m *SectionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SectionID == uuid.Nil {
		m.SectionID = uuid.New()
	}
	return nil
}
