package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "audition_backend/internals/features/users/user/controller"
)

// Dipasang di group /api (sudah AuthMiddleware)
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	r.Get("/users/me", ctrl.GetMe)
	r.Put("/update-user-info", ctrl.UpdateUserInfo)
}
