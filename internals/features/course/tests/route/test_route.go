// file: internals/features/course/tests/route/test_route.go
package routes

import (
	testController "kursusku_backend/internals/features/course/tests/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// dipasang di group /api/u (learner view, tanpa kunci jawaban)
func UserTestRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := testController.NewTestController(db)

	tests := router.Group("/tests")
	tests.Get("/:test_id", ctrl.GetForUser)
}

// dipasang di group /api/a (instructor/admin)
func AdminTestRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := testController.NewTestController(db)

	tests := router.Group("/tests")
	tests.Post("/", ctrl.Create)
	tests.Put("/:test_id", ctrl.Update)
	tests.Post("/:test_id/publish", ctrl.Publish)
	tests.Post("/:test_id/unpublish", ctrl.Unpublish)
	tests.Delete("/:test_id", ctrl.Delete)
}
