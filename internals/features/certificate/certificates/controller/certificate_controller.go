// file: internals/features/certificate/certificates/controller/certificate_controller.go
package controller

import (
	"errors"
	"log"

	certDTO "kursusku_backend/internals/features/certificate/certificates/dto"
	certModel "kursusku_backend/internals/features/certificate/certificates/model"
	certService "kursusku_backend/internals/features/certificate/certificates/service"
	helper "kursusku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CertificateController struct {
	DB *gorm.DB
}

func NewCertificateController(db *gorm.DB) *CertificateController {
	return &CertificateController{DB: db}
}

// ELIGIBILITY
// GET /api/u/courses/:course_id/certificate/eligibility
func (ctrl *CertificateController) GetEligibility(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	actorKind := helper.GetActorKindFromToken(c)

	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	elig, err := certService.GetEligibility(ctrl.DB, userID, courseID, actorKind)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "OK", elig)
}

// ISSUE
// POST /api/u/courses/:course_id/certificate
func (ctrl *CertificateController) IssueCertificate(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	actorKind := helper.GetActorKindFromToken(c)

	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	cert, err := certService.IssueCertificate(ctrl.DB, userID, courseID, actorKind)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Sertifikat diterbitkan", cert)
}

// VERIFY (public, tanpa auth)
// GET /api/p/certificates/verify/:number
func (ctrl *CertificateController) VerifyCertificate(c *fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nomor sertifikat wajib diisi")
	}

	cert, err := certService.VerifyCertificate(ctrl.DB, number)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Sertifikat valid", certDTO.FromModelVerify(cert))
}

// UPSERT TEMPLATE (admin)
// PUT /api/a/certificate-templates
// Satu template per course; request kedua menimpa template yang ada.
func (ctrl *CertificateController) UpsertTemplate(c *fiber.Ctx) error {
	var req certDTO.UpsertCertificateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var existing certModel.CertificateTemplateModel
	err := ctrl.DB.
		Where("certificate_template_course_id = ?", req.CertificateTemplateCourseID).
		First(&existing).Error
	switch {
	case err == nil:
		existing.CertificateTemplateTitle = req.CertificateTemplateTitle
		existing.CertificateTemplateDescription = req.CertificateTemplateDescription
		existing.CertificateTemplateURL = req.CertificateTemplateURL
		if err := ctrl.DB.Save(&existing).Error; err != nil {
			log.Println("[ERROR] Gagal update template sertifikat:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan template")
		}
		return helper.JsonUpdated(c, "Template sertifikat diperbarui", existing)
	case errors.Is(err, gorm.ErrRecordNotFound):
		tpl := req.ToModel()
		if err := ctrl.DB.Create(tpl).Error; err != nil {
			log.Println("[ERROR] Gagal membuat template sertifikat:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan template")
		}
		return helper.JsonCreated(c, "Template sertifikat dibuat", tpl)
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca template")
	}
}
