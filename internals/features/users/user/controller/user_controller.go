package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	uDTO "audition_backend/internals/features/users/user/dto"
	uService "audition_backend/internals/features/users/user/service"
	helper "audition_backend/internals/helpers"
)

type UserController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, validator: validator.New()}
}

// GET /api/users/me
func (uc *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	u, err := uService.GetUser(c.UserContext(), uc.DB, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "User profile fetched", uDTO.FromModel(u))
}

// PUT /api/update-user-info
func (uc *UserController) UpdateUserInfo(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req uDTO.UpdateUserInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := uc.validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	u, err := uService.UpdateUserInfo(c.UserContext(), uc.DB, userID, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "User info updated", uDTO.FromModel(u))
}
