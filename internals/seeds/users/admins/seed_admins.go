package admins

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"audition_backend/internals/constants"
	userModel "audition_backend/internals/features/users/user/model"
)

// SeedAdmins: pastikan setiap email di ADMIN_EMAILS ada sebagai ADMIN.
// User lama dipromosikan, yang belum ada dibuat tanpa password (login via Google).
func SeedAdmins(db *gorm.DB, emails []string) (int, error) {
	touched := 0
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}

		var u userModel.UserModel
		err := db.Where("email = ?", email).First(&u).Error
		switch {
		case err == nil:
			if u.Role == constants.RoleAdmin {
				continue
			}
			if err := db.Model(&u).Update("role", constants.RoleAdmin).Error; err != nil {
				return touched, err
			}
			log.Printf("✅ User '%s' dipromosikan jadi admin", email)
		case errors.Is(err, gorm.ErrRecordNotFound):
			u = userModel.UserModel{
				UserName: strings.Split(email, "@")[0],
				Email:    email,
				Role:     constants.RoleAdmin,
			}
			if err := db.Create(&u).Error; err != nil {
				return touched, err
			}
			log.Printf("✅ Admin '%s' dibuat", email)
		default:
			return touched, err
		}
		touched++
	}
	return touched, nil
}
