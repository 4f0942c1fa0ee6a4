// helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Key Locals yang diisi middleware auth
const (
	LocRawToken  = "raw_token"
	LocUserID    = "user_id"
	LocUserEmail = "user_email"
	LocUserName  = "user_name"
	LocUserRole  = "userRole"
)

// GetRawAccessToken mengembalikan access token dari:
// 1) Locals("raw_token") yang diset middleware
// 2) Authorization header "Bearer <token>"
// 3) cookie "access_token"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	fields := strings.Fields(c.Get("Authorization"))
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		return strings.Trim(fields[1], "\"'")
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}

// Set raw token ke Locals dari middleware auth
func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}

// Ambil user_id dari c.Locals("user_id")
// Return 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User is not logged in")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User is not logged in")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User is not logged in")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user id in token")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user id in token")
	}
}

// GetUserEmailFromToken: "" kalau tidak ada di token.
func GetUserEmailFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocUserEmail).(string); ok {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return ""
}

// GetUserNameFromToken: dipakai sebagai evaluatedBy/reviewedBy.
func GetUserNameFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocUserName).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return GetUserEmailFromToken(c)
}

// ParseUUIDParam: path param → uuid, 400 kalau tidak valid.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}
