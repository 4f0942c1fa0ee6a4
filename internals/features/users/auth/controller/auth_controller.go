package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"audition_backend/internals/features/users/auth/service"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return service.Register(ac.DB, c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	return service.LoginGoogle(ac.DB, c)
}

func (ac *AuthController) GoogleCallback(c *fiber.Ctx) error {
	return service.GoogleCallback(c)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return service.Logout(ac.DB, c)
}

func (ac *AuthController) Verify(c *fiber.Ctx) error {
	return service.Verify(ac.DB, c)
}
