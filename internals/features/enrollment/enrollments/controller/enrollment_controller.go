// file: internals/features/enrollment/enrollments/controller/enrollment_controller.go
package controller

import (
	"log"

	enrollDTO "kursusku_backend/internals/features/enrollment/enrollments/dto"
	enrollModel "kursusku_backend/internals/features/enrollment/enrollments/model"
	helper "kursusku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EnrollmentController struct {
	DB *gorm.DB
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

// CREATE (direct, admin)
// POST /api/a/enrollments/course
func (ctrl *EnrollmentController) CreateCourseEnrollment(c *fiber.Ctx) error {
	var req enrollDTO.CreateCourseEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row := req.ToModel()
	if err := ctrl.DB.Create(row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "User sudah terdaftar di course ini")
		}
		log.Println("[ERROR] Gagal membuat enrollment:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat enrollment")
	}
	return helper.JsonCreated(c, "Enrollment dibuat", row)
}

// CREATE (sponsored, admin)
// POST /api/a/enrollments/company
func (ctrl *EnrollmentController) CreateCompanyEnrollment(c *fiber.Ctx) error {
	var req enrollDTO.CreateCompanyEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row := req.ToModel()
	if err := ctrl.DB.Create(row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "User sudah terdaftar di course ini")
		}
		log.Println("[ERROR] Gagal membuat company enrollment:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat enrollment")
	}
	return helper.JsonCreated(c, "Enrollment dibuat", row)
}

// MARK PAYMENT DONE (admin)
// POST /api/a/enrollments/mark-payment-done
func (ctrl *EnrollmentController) MarkPaymentDone(c *fiber.Ctx) error {
	var req enrollDTO.MarkPaymentDoneRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var res *gorm.DB
	if req.ActorKind == "company" {
		res = ctrl.DB.Model(&enrollModel.CompanyEnrollmentModel{}).
			Where("company_enrollment_user_id = ? AND company_enrollment_course_id = ?", req.UserID, req.CourseID).
			Update("company_enrollment_is_payment_done", true)
	} else {
		res = ctrl.DB.Model(&enrollModel.CourseEnrollmentModel{}).
			Where("course_enrollment_user_id = ? AND course_enrollment_course_id = ?", req.UserID, req.CourseID).
			Update("course_enrollment_is_payment_done", true)
	}
	if res.Error != nil {
		log.Println("[ERROR] Gagal update status pembayaran:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update status pembayaran")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Enrollment tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Pembayaran ditandai lunas", fiber.Map{
		"user_id":   req.UserID,
		"course_id": req.CourseID,
	})
}

// LIST MINE
// GET /api/u/enrollments?page=&per_page=
// Daftar enrollment milik user yang login, sesuai actor_kind di token.
func (ctrl *EnrollmentController) ListMyEnrollments(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	actorKind := helper.GetActorKindFromToken(c)
	paging := helper.ResolvePaging(c, 20, 100)

	if actorKind == "company" {
		var total int64
		base := ctrl.DB.Model(&enrollModel.CompanyEnrollmentModel{}).
			Where("company_enrollment_user_id = ?", userID)
		if err := base.Count(&total).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca enrollment")
		}
		var rows []enrollModel.CompanyEnrollmentModel
		if err := base.
			Order("company_enrollment_created_at DESC").
			Limit(paging.PerPage).Offset(paging.Offset).
			Find(&rows).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca enrollment")
		}
		return helper.JsonList(c, "OK", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
	}

	var total int64
	base := ctrl.DB.Model(&enrollModel.CourseEnrollmentModel{}).
		Where("course_enrollment_user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca enrollment")
	}
	var rows []enrollModel.CourseEnrollmentModel
	if err := base.
		Order("course_enrollment_created_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca enrollment")
	}
	return helper.JsonList(c, "OK", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
