// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "audition_backend/internals/features/users/auth/controller"
	rateLimiter "audition_backend/internals/middlewares"
	authMiddleware "audition_backend/internals/middlewares/auth"
)

// Base: /auth
func AuthRoutes(app fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	auth := app.Group("/auth")

	// 🔓 Public
	auth.Post("/google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	auth.Get("/google/callback", authController.GoogleCallback)
	auth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	auth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	auth.Post("/logout", authController.Logout)

	// 🔐 Protected
	auth.Get("/verify", authMiddleware.AuthMiddleware(db), authController.Verify)
}
