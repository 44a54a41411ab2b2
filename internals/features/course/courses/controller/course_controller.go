// file: internals/features/course/courses/controller/course_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	courseDTO "kursusku_backend/internals/features/course/courses/dto"
	courseModel "kursusku_backend/internals/features/course/courses/model"
	helper "kursusku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

// LIST (public)
// GET /api/p/courses?page=&per_page=&search=
func (ctrl *CourseController) GetAll(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	base := ctrl.DB.Model(&courseModel.CourseModel{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		base = base.Where("LOWER(course_title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data course")
	}

	var courses []courseModel.CourseModel
	if err := base.
		Order("course_created_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data course")
	}
	return helper.JsonList(c, "OK", courses, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// DETAIL (public) + daftar section terurut
// GET /api/p/courses/:course_id
func (ctrl *CourseController) GetByID(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	var course courseModel.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca course")
	}

	var sections []courseModel.SectionModel
	if err := ctrl.DB.
		Where("section_course_id = ?", courseID).
		Order("section_order ASC").
		Find(&sections).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca section")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"course":   course,
		"sections": sections,
	})
}

// CREATE (admin/instructor)
// POST /api/a/courses
func (ctrl *CourseController) Create(c *fiber.Ctx) error {
	var req courseDTO.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.CourseTitle = strings.TrimSpace(req.CourseTitle)
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	course := req.ToModel()
	if err := ctrl.DB.Create(course).Error; err != nil {
		log.Println("[ERROR] Gagal membuat course:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat course")
	}
	return helper.JsonCreated(c, "Course dibuat", course)
}

// UPDATE (admin/instructor)
// PUT /api/a/courses/:course_id
func (ctrl *CourseController) Update(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	var course courseModel.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca course")
	}

	var req courseDTO.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	req.ApplyToModel(&course)
	if err := ctrl.DB.Save(&course).Error; err != nil {
		log.Println("[ERROR] Gagal update course:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update course")
	}
	return helper.JsonUpdated(c, "Course diperbarui", course)
}

// DELETE (admin)
// DELETE /api/a/courses/:course_id
func (ctrl *CourseController) Delete(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	res := ctrl.DB.Delete(&courseModel.CourseModel{}, "course_id = ?", courseID)
	if res.Error != nil {
		log.Println("[ERROR] Gagal menghapus course:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus course")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Course dihapus", fiber.Map{"course_id": courseID})
}

/* ==========================================================================================
   SECTION
========================================================================================== */

// CREATE SECTION (admin/instructor)
// POST /api/a/sections
func (ctrl *CourseController) CreateSection(c *fiber.Ctx) error {
	var req courseDTO.CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.SectionTitle = strings.TrimSpace(req.SectionTitle)
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// pastikan course induk ada
	var count int64
	if err := ctrl.DB.Model(&courseModel.CourseModel{}).
		Where("course_id = ?", req.SectionCourseID).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca course")
	}
	if count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
	}

	section := req.ToModel()
	if err := ctrl.DB.Create(section).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "section_order sudah dipakai di course ini")
		}
		log.Println("[ERROR] Gagal membuat section:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat section")
	}
	return helper.JsonCreated(c, "Section dibuat", section)
}

// UPDATE SECTION (admin/instructor)
// PUT /api/a/sections/:section_id
func (ctrl *CourseController) UpdateSection(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("section_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "section_id tidak valid")
	}

	var section courseModel.SectionModel
	if err := ctrl.DB.First(&section, "section_id = ?", sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Section tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca section")
	}

	var req courseDTO.UpdateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	req.ApplyToModel(&section)
	if err := ctrl.DB.Save(&section).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "section_order sudah dipakai di course ini")
		}
		log.Println("[ERROR] Gagal update section:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update section")
	}
	return helper.JsonUpdated(c, "Section diperbarui", section)
}

// DELETE SECTION (admin)
// DELETE /api/a/sections/:section_id
func (ctrl *CourseController) DeleteSection(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("section_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "section_id tidak valid")
	}

	res := ctrl.DB.Delete(&courseModel.SectionModel{}, "section_id = ?", sectionID)
	if res.Error != nil {
		log.Println("[ERROR] Gagal menghapus section:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus section")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Section tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Section dihapus", fiber.Map{"section_id": sectionID})
}
