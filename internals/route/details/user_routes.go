package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "audition_backend/internals/features/users/user/route"
)

// /api/users/me, /api/update-user-info
func UserRoutes(api fiber.Router, db *gorm.DB) {
	userRoute.UserRoutes(api, db)
}
