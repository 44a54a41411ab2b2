// file: internals/features/course/lessons/controller/lesson_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	sectionModel "kursusku_backend/internals/features/course/courses/model"
	lessonDTO "kursusku_backend/internals/features/course/lessons/dto"
	lessonModel "kursusku_backend/internals/features/course/lessons/model"
	helper "kursusku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LessonController struct {
	DB *gorm.DB
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{DB: db}
}

// LIST PER SECTION (public, hanya metadata; materi di-gate lewat progress)
// GET /api/p/sections/:section_id/lessons
func (ctrl *LessonController) GetBySection(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("section_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "section_id tidak valid")
	}

	var lessons []lessonModel.LessonModel
	if err := ctrl.DB.
		Select("lesson_id", "lesson_section_id", "lesson_course_id", "lesson_title", "lesson_order").
		Where("lesson_section_id = ?", sectionID).
		Order("lesson_order ASC").
		Find(&lessons).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca lesson")
	}
	return helper.JsonOK(c, "OK", lessons)
}

// CREATE (admin/instructor)
// POST /api/a/lessons
func (ctrl *LessonController) Create(c *fiber.Ctx) error {
	var req lessonDTO.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.LessonTitle = strings.TrimSpace(req.LessonTitle)
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// ambil course_id dari section induk (denormalisasi)
	var section sectionModel.SectionModel
	if err := ctrl.DB.First(&section, "section_id = ?", req.LessonSectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Section tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca section")
	}

	lesson := req.ToModel(section.SectionCourseID)
	if err := ctrl.DB.Create(lesson).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "lesson_order sudah dipakai di section ini")
		}
		log.Println("[ERROR] Gagal membuat lesson:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat lesson")
	}
	return helper.JsonCreated(c, "Lesson dibuat", lesson)
}

// UPDATE (admin/instructor)
// PUT /api/a/lessons/:lesson_id
func (ctrl *LessonController) Update(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("lesson_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "lesson_id tidak valid")
	}

	var lesson lessonModel.LessonModel
	if err := ctrl.DB.First(&lesson, "lesson_id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lesson tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca lesson")
	}

	var req lessonDTO.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	req.ApplyToModel(&lesson)
	if err := ctrl.DB.Save(&lesson).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "lesson_order sudah dipakai di section ini")
		}
		log.Println("[ERROR] Gagal update lesson:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update lesson")
	}
	return helper.JsonUpdated(c, "Lesson diperbarui", lesson)
}

// DELETE (admin)
// DELETE /api/a/lessons/:lesson_id
func (ctrl *LessonController) Delete(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("lesson_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "lesson_id tidak valid")
	}

	res := ctrl.DB.Delete(&lessonModel.LessonModel{}, "lesson_id = ?", lessonID)
	if res.Error != nil {
		log.Println("[ERROR] Gagal menghapus lesson:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus lesson")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Lesson tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Lesson dihapus", fiber.Map{"lesson_id": lessonID})
}
