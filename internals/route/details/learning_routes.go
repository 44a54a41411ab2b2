// file: internals/route/details/learning_routes.go
package details

import (
	AttemptRoutes "kursusku_backend/internals/features/assessment/attempts/route"
	CertificateRoutes "kursusku_backend/internals/features/certificate/certificates/route"
	ProgressRoutes "kursusku_backend/internals/features/progress/progress/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/* ===================== PUBLIC ===================== */
// Verifikasi sertifikat untuk pihak ketiga (HR, dll) — tanpa login
func LearningPublicRoutes(r fiber.Router, db *gorm.DB) {
	CertificateRoutes.PublicCertificateRoutes(r, db)
}

/* ===================== USER (PRIVATE) ===================== */
// Progress tracking, submit attempt, eligibility & penerbitan sertifikat
func LearningUserRoutes(r fiber.Router, db *gorm.DB) {
	ProgressRoutes.UserProgressRoutes(r, db)
	AttemptRoutes.UserAttemptRoutes(r, db)
	CertificateRoutes.UserCertificateRoutes(r, db)
}

/* ===================== ADMIN / INSTRUCTOR ===================== */
// Grading manual, bulk complete course, template sertifikat
func LearningAdminRoutes(r fiber.Router, db *gorm.DB) {
	ProgressRoutes.AdminProgressRoutes(r, db)
	AttemptRoutes.AdminAttemptRoutes(r, db)
	CertificateRoutes.AdminCertificateRoutes(r, db)
}
