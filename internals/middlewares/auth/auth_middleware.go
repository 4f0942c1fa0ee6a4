// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"audition_backend/internals/configs"
	userModel "audition_backend/internals/features/users/user/model"
	helper "audition_backend/internals/helpers"
	helperAuth "audition_backend/internals/helpers/auth"
)

// AuthMiddleware: verifikasi JWT (Bearer atau cookie access_token), cek blacklist,
// pastikan user masih ada, lalu isi Locals (user_id, user_email, userRole, user_name).
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c)
		if raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - No token provided")
		}

		secret := configs.JWTSecret
		if secret == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		// Cek blacklist (sekali per request)
		if c.Locals("token_checked") == nil {
			bl, err := helperAuth.IsBlacklisted(c.UserContext(), db, raw, secret)
			if err != nil {
				log.Println("[ERROR] DB error saat cek blacklist:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			if bl {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			}
			c.Locals("token_checked", true)
		}

		claims, err := helperAuth.ParseAccessToken(raw, secret)
		if err != nil {
			log.Println("[WARN] Gagal parse token:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid or expired token")
		}

		// Role diambil dari DB, bukan dari token: promosi admin langsung berlaku.
		var user userModel.UserModel
		if err := db.WithContext(c.UserContext()).
			Select("id", "email", "role", "user_name").
			Where("id = ?", claims.UserID).
			First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}

		helper.SetRawAccessToken(c, raw)
		c.Locals(helper.LocUserID, user.ID.String())
		c.Locals(helper.LocUserEmail, user.Email)
		c.Locals(helper.LocUserRole, user.Role)
		c.Locals(helper.LocUserName, user.UserName)
		return c.Next()
	}
}
