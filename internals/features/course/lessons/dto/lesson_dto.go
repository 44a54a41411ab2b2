// file: internals/features/course/lessons/dto/lesson_dto.go
package dto

import (
	"github.com/google/uuid"

	lessonModel "kursusku_backend/internals/features/course/lessons/model"
)

type CreateLessonRequest struct {
	LessonSectionID uuid.UUID `json:"lesson_section_id" validate:"required"`
	LessonTitle     string    `json:"lesson_title" validate:"required"`
	LessonContent   string    `json:"lesson_content" validate:"omitempty"`
	LessonVideoURL  *string   `json:"lesson_video_url" validate:"omitempty,url"`
	LessonOrder     int       `json:"lesson_order" validate:"required,gt=0"`
}

// ToModel: lesson_course_id diisi controller dari section induk, bukan dari request.
func (r *CreateLessonRequest) ToModel(courseID uuid.UUID) *lessonModel.LessonModel {
	return &lessonModel.LessonModel{
		LessonSectionID: r.LessonSectionID,
		LessonCourseID:  courseID,
		LessonTitle:     r.LessonTitle,
		LessonContent:   r.LessonContent,
		LessonVideoURL:  r.LessonVideoURL,
		LessonOrder:     r.LessonOrder,
	}
}

type UpdateLessonRequest struct {
	LessonTitle    *string `json:"lesson_title" validate:"omitempty,min=1"`
	LessonContent  *string `json:"lesson_content"`
	LessonVideoURL *string `json:"lesson_video_url" validate:"omitempty,url"`
	LessonOrder    *int    `json:"lesson_order" validate:"omitempty,gt=0"`
}

func (r *UpdateLessonRequest) ApplyToModel(m *lessonModel.LessonModel) {
	if r.LessonTitle != nil {
		m.LessonTitle = *r.LessonTitle
	}
	if r.LessonContent != nil {
		m.LessonContent = *r.LessonContent
	}
	if r.LessonVideoURL != nil {
		m.LessonVideoURL = r.LessonVideoURL
	}
	if r.LessonOrder != nil {
		m.LessonOrder = *r.LessonOrder
	}
}
