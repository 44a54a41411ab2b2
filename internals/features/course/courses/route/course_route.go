// file: internals/features/course/courses/route/course_route.go
package routes

import (
	courseController "kursusku_backend/internals/features/course/courses/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// dipasang di group /api/p (katalog publik)
func PublicCourseRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := courseController.NewCourseController(db)

	courses := router.Group("/courses")
	courses.Get("/", ctrl.GetAll)
	courses.Get("/:course_id", ctrl.GetByID)
}

// dipasang di group /api/a (instructor/admin)
func AdminCourseRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := courseController.NewCourseController(db)

	courses := router.Group("/courses")
	courses.Post("/", ctrl.Create)
	courses.Put("/:course_id", ctrl.Update)
	courses.Delete("/:course_id", ctrl.Delete)

	sections := router.Group("/sections")
	sections.Post("/", ctrl.CreateSection)
	sections.Put("/:section_id", ctrl.UpdateSection)
	sections.Delete("/:section_id", ctrl.DeleteSection)
}
