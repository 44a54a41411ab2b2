// file: internals/features/course/courses/dto/course_dto.go
package dto

import (
	"github.com/google/uuid"

	courseModel "kursusku_backend/internals/features/course/courses/model"
)

/* ==========================================================================================
   REQUEST — course (admin/instructor)
========================================================================================== */

type CreateCourseRequest struct {
	CourseTitle       string  `json:"course_title" validate:"required"`
	CourseDescription string  `json:"course_description" validate:"omitempty"`
	CoursePrice       float64 `json:"course_price" validate:"omitempty,gte=0"`
}

func (r *CreateCourseRequest) ToModel() *courseModel.CourseModel {
	return &courseModel.CourseModel{
		CourseTitle:       r.CourseTitle,
		CourseDescription: r.CourseDescription,
		CoursePrice:       r.CoursePrice,
	}
}

type UpdateCourseRequest struct {
	CourseTitle       *string  `json:"course_title" validate:"omitempty,min=1"`
	CourseDescription *string  `json:"course_description"`
	CoursePrice       *float64 `json:"course_price" validate:"omitempty,gte=0"`
}

// ApplyToModel hanya menimpa field yang dikirim (partial update).
func (r *UpdateCourseRequest) ApplyToModel(m *courseModel.CourseModel) {
	if r.CourseTitle != nil {
		m.CourseTitle = *r.CourseTitle
	}
	if r.CourseDescription != nil {
		m.CourseDescription = *r.CourseDescription
	}
	if r.CoursePrice != nil {
		m.CoursePrice = *r.CoursePrice
	}
}

/* ==========================================================================================
   REQUEST — section (admin/instructor)
========================================================================================== */

type CreateSectionRequest struct {
	SectionCourseID uuid.UUID `json:"section_course_id" validate:"required"`
	SectionTitle    string    `json:"section_title" validate:"required"`
	SectionOrder    int       `json:"section_order" validate:"required,gt=0"`
}

func (r *CreateSectionRequest) ToModel() *courseModel.SectionModel {
	return &courseModel.SectionModel{
		SectionCourseID: r.SectionCourseID,
		SectionTitle:    r.SectionTitle,
		SectionOrder:    r.SectionOrder,
	}
}

type UpdateSectionRequest struct {
	SectionTitle *string `json:"section_title" validate:"omitempty,min=1"`
	SectionOrder *int    `json:"section_order" validate:"omitempty,gt=0"`
}

func (r *UpdateSectionRequest) ApplyToModel(m *courseModel.SectionModel) {
	if r.SectionTitle != nil {
		m.SectionTitle = *r.SectionTitle
	}
	if r.SectionOrder != nil {
		m.SectionOrder = *r.SectionOrder
	}
}
