// file: internals/features/progress/progress/controller/progress_controller.go
package controller

import (
	"log"

	progressDTO "kursusku_backend/internals/features/progress/progress/dto"
	progressService "kursusku_backend/internals/features/progress/progress/service"
	helper "kursusku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB *gorm.DB
}

func NewProgressController(db *gorm.DB) *ProgressController {
	return &ProgressController{DB: db}
}

// COMPLETE
// POST /api/u/progress/complete
func (ctrl *ProgressController) CompleteContent(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	actorKind := helper.GetActorKindFromToken(c)

	var req progressDTO.ContentRefRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	cp, err := progressService.MarkContentCompleted(ctrl.DB, userID, actorKind, req.ProgressLessonID, req.ProgressTestID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Konten ditandai selesai", cp)
}

// INCOMPLETE
// POST /api/u/progress/incomplete
func (ctrl *ProgressController) IncompleteContent(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req progressDTO.ContentRefRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	cp, err := progressService.MarkContentIncomplete(ctrl.DB, userID, req.ProgressLessonID, req.ProgressTestID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Tanda selesai dibatalkan", cp)
}

// GET COURSE PROGRESS
// GET /api/u/progress/courses/:course_id
func (ctrl *ProgressController) GetCourseProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	cp, err := progressService.GetCourseProgress(ctrl.DB, userID, courseID)
	if err != nil {
		log.Println("[ERROR] Gagal mengambil progress course:", err)
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "OK", cp)
}

// GET LESSON MATERIAL (gated by prerequisite)
// GET /api/u/lessons/:lesson_id/material
func (ctrl *ProgressController) GetLessonMaterial(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	actorKind := helper.GetActorKindFromToken(c)

	lessonID, err := uuid.Parse(c.Params("lesson_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "lesson_id tidak valid")
	}

	lesson, err := progressService.GetLessonMaterial(ctrl.DB, userID, lessonID, actorKind)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "OK", lesson)
}

// COMPLETE COURSE (bulk, admin)
// POST /api/a/progress/courses/:course_id/complete
func (ctrl *ProgressController) CompleteCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	var req progressDTO.CompleteCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	cp, err := progressService.MarkCourseCompleted(ctrl.DB, req.UserID, courseID, req.ActorKind)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Seluruh konten course ditandai selesai", cp)
}
