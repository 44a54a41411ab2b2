// file: internals/features/progress/progress/route/progress_route.go
package routes

import (
	progressController "kursusku_backend/internals/features/progress/progress/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// dipasang di group /api/u (sudah lewat AuthJWT)
func UserProgressRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := progressController.NewProgressController(db)

	progress := router.Group("/progress")
	progress.Post("/complete", ctrl.CompleteContent)
	progress.Post("/incomplete", ctrl.IncompleteContent)
	progress.Get("/courses/:course_id", ctrl.GetCourseProgress)

	router.Get("/lessons/:lesson_id/material", ctrl.GetLessonMaterial)
}

// dipasang di group /api/a (admin)
func AdminProgressRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := progressController.NewProgressController(db)

	progress := router.Group("/progress")
	progress.Post("/courses/:course_id/complete", ctrl.CompleteCourse)
}
