// file: internals/features/assessment/attempts/controller/attempt_controller.go
package controller

import (
	attemptDTO "kursusku_backend/internals/features/assessment/attempts/dto"
	attemptService "kursusku_backend/internals/features/assessment/attempts/service"
	helper "kursusku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttemptController struct {
	DB *gorm.DB
}

func NewAttemptController(db *gorm.DB) *AttemptController {
	return &AttemptController{DB: db}
}

// SUBMIT
// POST /api/u/tests/:test_id/attempts
// Satu attempt per (user, test). Prasyarat urutan dicek saat menandai test
// selesai di progress, bukan di sini; submit hanya menolak duplikat.
func (ctrl *AttemptController) SubmitAttempt(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	testID, err := uuid.Parse(c.Params("test_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "test_id tidak valid")
	}

	var req attemptDTO.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	attempt, err := attemptService.SubmitAttempt(ctrl.DB, userID, testID, req.ToInputs())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Jawaban terkirim", attempt)
}

// GET MINE
// GET /api/u/tests/:test_id/attempts/me
func (ctrl *AttemptController) GetMyAttempt(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	testID, err := uuid.Parse(c.Params("test_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "test_id tidak valid")
	}

	attempt, err := attemptService.GetUserAttempt(ctrl.DB, userID, testID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "OK", attempt)
}

// GET BY ID (instructor/admin)
// GET /api/a/attempts/:attempt_id
func (ctrl *AttemptController) GetAttemptByID(c *fiber.Ctx) error {
	attemptID, err := uuid.Parse(c.Params("attempt_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "attempt_id tidak valid")
	}

	attempt, err := attemptService.GetAttempt(ctrl.DB, attemptID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "OK", attempt)
}

// GRADE (instructor/admin)
// POST /api/a/attempts/:attempt_id/grade
// Batch grading short answer: semua item divalidasi dulu, baru diterapkan.
func (ctrl *AttemptController) GradeAttempt(c *fiber.Ctx) error {
	attemptID, err := uuid.Parse(c.Params("attempt_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "attempt_id tidak valid")
	}

	var req attemptDTO.GradeResponsesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	attempt, err := attemptService.GradeResponses(ctrl.DB, attemptID, req.ToInputs())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Penilaian tersimpan", attempt)
}
