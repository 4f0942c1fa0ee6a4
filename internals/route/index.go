// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"audition_backend/internals/constants"
	rateLimiter "audition_backend/internals/middlewares"
	authMiddleware "audition_backend/internals/middlewares/auth"
	routeDetails "audition_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH (public) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group (/api)...")
	api := app.Group("/api",
		rateLimiter.GlobalRateLimiter(),
		authMiddleware.AuthMiddleware(db),
	)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (/api/admin)...")
	admin := api.Group("/admin",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("the admin dashboard"), constants.AdminOnly...),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(api, db)

	log.Println("[INFO] Mounting Quiz routes...")
	routeDetails.QuizRoutes(api, db)

	log.Println("[INFO] Mounting Audition routes...")
	routeDetails.AuditionUserRoutes(api, db)
	routeDetails.AuditionAdminRoutes(admin, db)
}
