// file: internals/route/details/course_routes.go
package details

import (
	CourseRoutes "kursusku_backend/internals/features/course/courses/route"
	LessonRoutes "kursusku_backend/internals/features/course/lessons/route"
	TestRoutes "kursusku_backend/internals/features/course/tests/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/* ===================== PUBLIC ===================== */
// Katalog course & daftar lesson (metadata saja, tanpa login)
func CoursePublicRoutes(r fiber.Router, db *gorm.DB) {
	CourseRoutes.PublicCourseRoutes(r, db)
	LessonRoutes.PublicLessonRoutes(r, db)
}

/* ===================== USER (PRIVATE) ===================== */
// Learner view: test dengan soal tanpa kunci jawaban
func CourseUserRoutes(r fiber.Router, db *gorm.DB) {
	TestRoutes.UserTestRoutes(r, db)
}

/* ===================== ADMIN / INSTRUCTOR ===================== */
// Authoring: course, section, lesson, test + publish toggle
func CourseAdminRoutes(r fiber.Router, db *gorm.DB) {
	CourseRoutes.AdminCourseRoutes(r, db)
	LessonRoutes.AdminLessonRoutes(r, db)
	TestRoutes.AdminTestRoutes(r, db)
}
