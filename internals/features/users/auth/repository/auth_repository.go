// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"strings"

	"gorm.io/gorm"

	userModel "audition_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByEmailOrUsername(db *gorm.DB, identifier string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("email = ? OR user_name = ?", strings.ToLower(identifier), identifier).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByGoogleID(db *gorm.DB, googleID string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

// LinkGoogleAccount: akun email lama pertama kali login via Google.
func LinkGoogleAccount(db *gorm.DB, user *userModel.UserModel, googleID string) error {
	if err := db.Model(&userModel.UserModel{}).
		Where("id = ? AND google_id IS NULL", user.ID).
		Update("google_id", googleID).Error; err != nil {
		return err
	}
	user.GoogleID = &googleID
	return nil
}

// PromoteToAdmin: email terdaftar di ADMIN_EMAILS.
func PromoteToAdmin(db *gorm.DB, user *userModel.UserModel, role string) error {
	if user.Role == role {
		return nil
	}
	if err := db.Model(&userModel.UserModel{}).Where("id = ?", user.ID).Update("role", role).Error; err != nil {
		return err
	}
	user.Role = role
	return nil
}
