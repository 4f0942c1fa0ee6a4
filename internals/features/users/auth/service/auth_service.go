package service

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"audition_backend/internals/configs"
	"audition_backend/internals/constants"
	authDTO "audition_backend/internals/features/users/auth/dto"
	authRepo "audition_backend/internals/features/users/auth/repository"
	uDTO "audition_backend/internals/features/users/user/dto"
	userModel "audition_backend/internals/features/users/user/model"
	helpers "audition_backend/internals/helpers"
	authHelper "audition_backend/internals/helpers/auth"
)

const accessCookieName = "access_token"

var validate = validator.New()

func nowUTC() time.Time { return time.Now().UTC() }

// GoogleIdentity: claim yang dipakai dari ID token Google.
type GoogleIdentity struct {
	Sub   string
	Email string
	Name  string
}

// VerifyGoogleIDToken bisa diganti di test.
var VerifyGoogleIDToken = func(idToken, clientID string) (*GoogleIdentity, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{clientID}); err != nil {
		return nil, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, err
	}
	return &GoogleIdentity{Sub: claimSet.Sub, Email: claimSet.Email, Name: claimSet.Name}, nil
}

/* ==========================
   REGISTER
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input authDTO.RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.Normalize()
	if err := validate.Struct(&input); err != nil {
		return helpers.JsonValidationError(c, err)
	}

	hash, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := userModel.UserModel{
		UserName: input.UserName,
		Email:    input.Email,
		Password: &hash,
		Role:     constants.RoleUser,
	}
	if configs.IsAdminEmail(input.Email) {
		user.Role = constants.RoleAdmin
	}
	if err := authRepo.CreateUser(db.WithContext(c.UserContext()), &user); err != nil {
		if helpers.IsUniqueViolation(err) {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Email already registered")
		}
		log.Printf("[ERROR] register %s: %v", input.Email, err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	log.Printf("[INFO] user registered id=%s role=%s", user.ID, user.Role)
	return helpers.JsonCreated(c, "Registration successful", uDTO.FromModel(&user))
}

/* ==========================
   LOGIN (username/email + password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input authDTO.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.Normalize()
	if err := validate.Struct(&input); err != nil {
		return helpers.JsonValidationError(c, err)
	}

	user, err := authRepo.FindUserByEmailOrUsername(db.WithContext(c.UserContext()), input.Identifier)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid identifier or password")
	}
	if user.Password == nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "This account signs in with Google")
	}
	if err := authHelper.CheckPasswordHash(*user.Password, input.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid identifier or password")
	}

	return issueToken(c, user)
}

/* ==========================
   LOGIN GOOGLE
========================== */

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input authDTO.GoogleLoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return helpers.JsonValidationError(c, err)
	}
	if configs.GoogleClientID == "" {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Google login is not configured")
	}

	gid, err := VerifyGoogleIDToken(input.IDToken, configs.GoogleClientID)
	if err != nil {
		log.Printf("[WARN] google id token rejected: %v", err)
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}
	email := strings.ToLower(strings.TrimSpace(gid.Email))
	if email == "" || gid.Sub == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Google account has no email")
	}

	db = db.WithContext(c.UserContext())

	// by google_id → by email (link) → buat baru
	user, err := authRepo.FindUserByGoogleID(db, gid.Sub)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = authRepo.FindUserByEmail(db, email)
		if err == nil && user.GoogleID == nil {
			if err := authRepo.LinkGoogleAccount(db, user, gid.Sub); err != nil {
				return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to link Google account")
			}
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		name := strings.TrimSpace(gid.Name)
		if name == "" {
			name = strings.Split(email, "@")[0]
		}
		sub := gid.Sub
		newUser := userModel.UserModel{
			UserName: name,
			Email:    email,
			GoogleID: &sub,
			Role:     constants.RoleUser,
			Round:    1,
		}
		if err := authRepo.CreateUser(db, &newUser); err != nil {
			if helpers.IsUniqueViolation(err) {
				return helpers.JsonError(c, fiber.StatusBadRequest, "Email already registered")
			}
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create Google user")
		}
		log.Printf("[INFO] google user created id=%s", newUser.ID)
		user, err = &newUser, nil
	}
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}

	if configs.IsAdminEmail(user.Email) {
		if err := authRepo.PromoteToAdmin(db, user, constants.RoleAdmin); err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update role")
		}
	}

	return issueToken(c, user)
}

// GoogleCallback: SPA yang memegang ID token, di sini cukup redirect balik.
func GoogleCallback(c *fiber.Ctx) error {
	return c.Redirect(configs.FrontendURL, fiber.StatusFound)
}

/* ==========================
   TOKEN + COOKIE
========================== */

func issueToken(c *fiber.Ctx, user *userModel.UserModel) error {
	now := nowUTC()
	token, exp, err := authHelper.SignAccessToken(user.ID, user.Email, user.Role, user.UserName, configs.JWTSecret, configs.JWTTTL, now)
	if err != nil {
		log.Printf("[ERROR] sign token: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     accessCookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   configs.GetEnvBool("COOKIE_SECURE", true),
		SameSite: "None",
		Path:     "/",
		Expires:  exp,
	})

	return helpers.JsonOK(c, "Login successful", authDTO.LoginResponse{
		AccessToken: token,
		ExpiresAt:   exp.Unix(),
		User:        uDTO.FromModel(user),
	})
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	accessToken := helpers.GetRawAccessToken(c)

	if accessToken != "" {
		exp, ok := authHelper.TokenExpiry(accessToken, configs.JWTSecret)
		if !ok {
			exp = nowUTC().Add(configs.JWTTTL)
		}
		if err := authHelper.AddToBlacklist(c.UserContext(), db, accessToken, configs.JWTSecret, exp); err != nil {
			log.Printf("[WARN] Failed to blacklist token: %v", err)
		}
	} else {
		log.Println("[INFO] Logout tanpa access token; lanjut clear cookie")
	}

	c.Cookie(&fiber.Cookie{
		Name:     accessCookieName,
		Value:    "",
		HTTPOnly: true,
		Secure:   configs.GetEnvBool("COOKIE_SECURE", true),
		SameSite: "None",
		Path:     "/",
		Expires:  nowUTC().Add(-time.Hour),
		MaxAge:   -1,
	})

	return helpers.JsonOK(c, "Logout successful", nil)
}

/* ==========================
   VERIFY (setelah AuthMiddleware)
========================== */

func Verify(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	var user userModel.UserModel
	if err := db.WithContext(c.UserContext()).First(&user, "id = ?", userID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	return helpers.JsonOK(c, "Token valid", uDTO.FromModel(&user))
}
