// file: internals/features/progress/progress/dto/progress_dto.go
package dto

import (
	"github.com/google/uuid"
)

/* ==========================================================================================
   REQUEST — tandai satu content item complete / incomplete.
   Tepat satu dari lesson_id / test_id wajib diisi (dicek lagi di service).
========================================================================================== */

type ContentRefRequest struct {
	ProgressLessonID *uuid.UUID `json:"progress_lesson_id" validate:"omitempty"`
	ProgressTestID   *uuid.UUID `json:"progress_test_id" validate:"omitempty"`
}

/* ==========================================================================================
   REQUEST — bulk-completion administratif untuk satu user.
========================================================================================== */

type CompleteCourseRequest struct {
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	ActorKind string    `json:"actor_kind" validate:"required,oneof=student company"`
}
