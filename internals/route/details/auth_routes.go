package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "audition_backend/internals/features/users/auth/route"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authRoute.AuthRoutes(app, db)
}
