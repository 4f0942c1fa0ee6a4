package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	uDTO "audition_backend/internals/features/users/user/dto"
	uModel "audition_backend/internals/features/users/user/model"
)

// GetUser: 404 kalau user sudah tidak ada.
func GetUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*uModel.UserModel, error) {
	var u uModel.UserModel
	if err := db.WithContext(ctx).First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, err
	}
	return &u, nil
}

// UpdateUserInfo: partial update profil; round/role/hasGivenExam tidak bisa diubah dari sini.
func UpdateUserInfo(ctx context.Context, db *gorm.DB, userID uuid.UUID, in *uDTO.UpdateUserInfoRequest) (*uModel.UserModel, error) {
	updates := in.ToUpdates()
	if len(updates) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
	}
	updates["updated_at"] = time.Now()

	res := db.WithContext(ctx).Model(&uModel.UserModel{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		log.Printf("[ERROR] UpdateUserInfo user=%s: %v", userID, res.Error)
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	return GetUser(ctx, db, userID)
}
