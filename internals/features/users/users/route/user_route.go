// file: internals/features/users/users/route/user_route.go
package routes

import (
	userController "kursusku_backend/internals/features/users/users/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// dipasang di group /api/u
func UserUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	users := router.Group("/users")
	users.Get("/me", ctrl.GetMe)
	users.Put("/me", ctrl.UpdateMe)
}
