// file: internals/route/index.go
package routes

import (
	"log"
	"os"

	authMiddleware "kursusku_backend/internals/middlewares/auth"
	routeDetails "kursusku_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== GROUPS =====================

	// PUBLIC → tanpa auth (katalog, verifikasi sertifikat)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/p")

	// PRIVATE (USER) → wajib JWT
	log.Println("[INFO] Setting up PRIVATE (user) group...")
	private := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// ADMIN / INSTRUCTOR → JWT + role check
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		authMiddleware.OnlyInstructorOrAdmin("manajemen pembelajaran"),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Course routes...")
	routeDetails.CoursePublicRoutes(public, db)
	routeDetails.CourseUserRoutes(private, db)
	routeDetails.CourseAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Learning routes...")
	routeDetails.LearningPublicRoutes(public, db)
	routeDetails.LearningUserRoutes(private, db)
	routeDetails.LearningAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Account routes...")
	routeDetails.AccountUserRoutes(private, db)
	routeDetails.AccountAdminRoutes(admin, db)
}
