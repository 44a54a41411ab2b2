// file: internals/features/course/lessons/route/lesson_route.go
package routes

import (
	lessonController "kursusku_backend/internals/features/course/lessons/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// dipasang di group /api/p (metadata saja, materi di-gate lewat /api/u)
func PublicLessonRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := lessonController.NewLessonController(db)

	sections := router.Group("/sections")
	sections.Get("/:section_id/lessons", ctrl.GetBySection)
}

// dipasang di group /api/a (instructor/admin)
func AdminLessonRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := lessonController.NewLessonController(db)

	lessons := router.Group("/lessons")
	lessons.Post("/", ctrl.Create)
	lessons.Put("/:lesson_id", ctrl.Update)
	lessons.Delete("/:lesson_id", ctrl.Delete)
}
