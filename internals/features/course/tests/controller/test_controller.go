// file: internals/features/course/tests/controller/test_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	sectionModel "kursusku_backend/internals/features/course/courses/model"
	testDTO "kursusku_backend/internals/features/course/tests/dto"
	testModel "kursusku_backend/internals/features/course/tests/model"
	enrollService "kursusku_backend/internals/features/enrollment/enrollments/service"
	helper "kursusku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TestController struct {
	DB *gorm.DB
}

func NewTestController(db *gorm.DB) *TestController {
	return &TestController{DB: db}
}

// CREATE (admin/instructor)
// POST /api/a/tests
// Test dibuat sekali jadi bersama question-nya; total_marks harus sama
// dengan jumlah marks semua question.
func (ctrl *TestController) Create(c *fiber.Ctx) error {
	var req testDTO.CreateTestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.TestTitle = strings.TrimSpace(req.TestTitle)
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := req.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var section sectionModel.SectionModel
	if err := ctrl.DB.First(&section, "section_id = ?", req.TestSectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Section tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca section")
	}

	test := req.ToModel(section.SectionCourseID)
	for i := range test.Questions {
		if err := test.Questions[i].ValidateShape(); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	// Create cascade: questions + options + answers ikut tersimpan
	if err := ctrl.DB.Create(test).Error; err != nil {
		log.Println("[ERROR] Gagal membuat test:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat test")
	}
	return helper.JsonCreated(c, "Test dibuat", test)
}

// UPDATE metadata (admin/instructor)
// PUT /api/a/tests/:test_id
func (ctrl *TestController) Update(c *fiber.Ctx) error {
	testID, err := uuid.Parse(c.Params("test_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "test_id tidak valid")
	}

	var test testModel.TestModel
	if err := ctrl.DB.First(&test, "test_id = ?", testID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Test tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca test")
	}

	var req testDTO.UpdateTestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	req.ApplyToModel(&test)
	if err := ctrl.DB.Save(&test).Error; err != nil {
		log.Println("[ERROR] Gagal update test:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update test")
	}
	return helper.JsonUpdated(c, "Test diperbarui", test)
}

// PUBLISH / UNPUBLISH (admin/instructor)
// POST /api/a/tests/:test_id/publish
// POST /api/a/tests/:test_id/unpublish
func (ctrl *TestController) Publish(c *fiber.Ctx) error {
	return ctrl.setPublished(c, true, "Test dipublish")
}

func (ctrl *TestController) Unpublish(c *fiber.Ctx) error {
	return ctrl.setPublished(c, false, "Test di-unpublish")
}

func (ctrl *TestController) setPublished(c *fiber.Ctx, published bool, okMsg string) error {
	testID, err := uuid.Parse(c.Params("test_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "test_id tidak valid")
	}

	res := ctrl.DB.Model(&testModel.TestModel{}).
		Where("test_id = ?", testID).
		Update("test_is_published", published)
	if res.Error != nil {
		log.Println("[ERROR] Gagal mengubah status publish:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah status publish")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Test tidak ditemukan")
	}
	return helper.JsonUpdated(c, okMsg, fiber.Map{
		"test_id":           testID,
		"test_is_published": published,
	})
}

// DELETE (admin)
// DELETE /api/a/tests/:test_id
func (ctrl *TestController) Delete(c *fiber.Ctx) error {
	testID, err := uuid.Parse(c.Params("test_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "test_id tidak valid")
	}

	res := ctrl.DB.Delete(&testModel.TestModel{}, "test_id = ?", testID)
	if res.Error != nil {
		log.Println("[ERROR] Gagal menghapus test:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus test")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Test tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Test dihapus", fiber.Map{"test_id": testID})
}

// GET FOR LEARNER
// GET /api/u/tests/:test_id
// Hanya test yang published; is_correct dan kunci jawaban tidak ikut keluar.
func (ctrl *TestController) GetForUser(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	actorKind := helper.GetActorKindFromToken(c)

	testID, err := uuid.Parse(c.Params("test_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "test_id tidak valid")
	}

	var test testModel.TestModel
	if err := ctrl.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_order ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("option_order ASC")
		}).
		First(&test, "test_id = ?", testID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Test tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca test")
	}
	if !test.TestIsPublished {
		return helper.JsonError(c, fiber.StatusNotFound, "Test tidak ditemukan")
	}

	if _, err := enrollService.RequireValidAccess(ctrl.DB, userID, test.TestCourseID, actorKind); err != nil {
		return helper.JsonAppError(c, err)
	}

	return helper.JsonOK(c, "OK", testDTO.FromModelUserTest(&test))
}
