// file: internals/features/certificate/certificates/route/certificate_route.go
package routes

import (
	certController "kursusku_backend/internals/features/certificate/certificates/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// dipasang di group /api/p (tanpa auth, untuk verifikasi pihak ketiga)
func PublicCertificateRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := certController.NewCertificateController(db)

	certificates := router.Group("/certificates")
	certificates.Get("/verify/:number", ctrl.VerifyCertificate)
}

// dipasang di group /api/u
func UserCertificateRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := certController.NewCertificateController(db)

	courses := router.Group("/courses")
	courses.Get("/:course_id/certificate/eligibility", ctrl.GetEligibility)
	courses.Post("/:course_id/certificate", ctrl.IssueCertificate)
}

// dipasang di group /api/a
func AdminCertificateRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := certController.NewCertificateController(db)

	router.Put("/certificate-templates", ctrl.UpsertTemplate)
}
