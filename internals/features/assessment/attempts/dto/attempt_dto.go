// file: internals/features/assessment/attempts/dto/attempt_dto.go
package dto

import (
	"github.com/google/uuid"

	"kursusku_backend/internals/features/assessment/attempts/service"
)

/* ==========================================================================================
   REQUEST — SUBMIT
   Satu submission = semua jawaban sekaligus; attempt tidak bisa dicicil.
========================================================================================== */

type SubmitResponseRequest struct {
	QuestionID        uuid.UUID   `json:"question_id" validate:"required"`
	SelectedOptionIDs []uuid.UUID `json:"selected_option_ids" validate:"omitempty"`
	ShortAnswer       *string     `json:"short_answer" validate:"omitempty"`
}

type SubmitAttemptRequest struct {
	TestID    uuid.UUID               `json:"test_id" validate:"required"`
	Responses []SubmitResponseRequest `json:"responses" validate:"required,min=1,dive"`
}

func (r *SubmitAttemptRequest) ToInputs() []service.ResponseInput {
	out := make([]service.ResponseInput, 0, len(r.Responses))
	for _, resp := range r.Responses {
		out = append(out, service.ResponseInput{
			QuestionID:        resp.QuestionID,
			SelectedOptionIDs: resp.SelectedOptionIDs,
			ShortAnswer:       resp.ShortAnswer,
		})
	}
	return out
}

/* ==========================================================================================
   REQUEST — GRADING MANUAL (instruktur/admin)
========================================================================================== */

type GradingRequest struct {
	ResponseID uuid.UUID `json:"response_id" validate:"required"`
	Marks      float64   `json:"marks" validate:"min=0"`
}

type GradeResponsesRequest struct {
	Gradings []GradingRequest `json:"gradings" validate:"required,min=1,dive"`
}

func (r *GradeResponsesRequest) ToInputs() []service.GradingInput {
	out := make([]service.GradingInput, 0, len(r.Gradings))
	for _, g := range r.Gradings {
		out = append(out, service.GradingInput{ResponseID: g.ResponseID, Marks: g.Marks})
	}
	return out
}
