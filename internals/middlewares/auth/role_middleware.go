// file: internals/middlewares/auth/role_middleware.go
package middleware

import (
	"github.com/gofiber/fiber/v2"

	"kursusku_backend/internals/constants"
	helper "kursusku_backend/internals/helpers"
)

// OnlyAdmin membatasi route untuk role admin.
func OnlyAdmin(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !helper.HasRole(c, constants.RoleAdmin) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin(feature))
		}
		return c.Next()
	}
}

// OnlyInstructorOrAdmin membatasi route untuk instruktur/admin (mis. grading manual).
func OnlyInstructorOrAdmin(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !helper.HasRole(c, constants.RoleAdmin, constants.RoleInstructor) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorInstructor(feature))
		}
		return c.Next()
	}
}
