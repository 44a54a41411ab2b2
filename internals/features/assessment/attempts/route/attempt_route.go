// file: internals/features/assessment/attempts/route/attempt_route.go
package routes

import (
	attemptController "kursusku_backend/internals/features/assessment/attempts/controller"
	middlewares "kursusku_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// dipasang di group /api/u
func UserAttemptRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := attemptController.NewAttemptController(db)

	tests := router.Group("/tests")
	// submit dibatasi rate limiter supaya spam duplicate cepat ketahan di edge
	tests.Post("/:test_id/attempts", middlewares.SubmitRateLimiter(), ctrl.SubmitAttempt)
	tests.Get("/:test_id/attempts/me", ctrl.GetMyAttempt)
}

// dipasang di group /api/a (instructor/admin)
func AdminAttemptRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := attemptController.NewAttemptController(db)

	attempts := router.Group("/attempts")
	attempts.Get("/:attempt_id", ctrl.GetAttemptByID)
	attempts.Post("/:attempt_id/grade", ctrl.GradeAttempt)
}
