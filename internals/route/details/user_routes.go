// file: internals/route/details/user_routes.go
package details

import (
	EnrollmentRoutes "kursusku_backend/internals/features/enrollment/enrollments/route"
	UserRoutes "kursusku_backend/internals/features/users/users/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/* ===================== USER (PRIVATE) ===================== */
// Profil sendiri + daftar enrollment milik sendiri
func AccountUserRoutes(r fiber.Router, db *gorm.DB) {
	UserRoutes.UserUserRoutes(r, db)
	EnrollmentRoutes.UserEnrollmentRoutes(r, db)
}

/* ===================== ADMIN ===================== */
// Pendaftaran manual (direct & sponsored) + tandai pembayaran lunas
func AccountAdminRoutes(r fiber.Router, db *gorm.DB) {
	EnrollmentRoutes.AdminEnrollmentRoutes(r, db)
}
