// file: internals/features/enrollment/enrollments/route/enrollment_route.go
package routes

import (
	enrollController "kursusku_backend/internals/features/enrollment/enrollments/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// dipasang di group /api/u
func UserEnrollmentRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := enrollController.NewEnrollmentController(db)

	router.Get("/enrollments", ctrl.ListMyEnrollments)
}

// dipasang di group /api/a
func AdminEnrollmentRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := enrollController.NewEnrollmentController(db)

	enrollments := router.Group("/enrollments")
	enrollments.Post("/course", ctrl.CreateCourseEnrollment)
	enrollments.Post("/company", ctrl.CreateCompanyEnrollment)
	enrollments.Post("/mark-payment-done", ctrl.MarkPaymentDone)
}
