package auth

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	helper "audition_backend/internals/helpers"
)

// RoleMiddlewareWithCustomError validasi role + custom error message
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(helper.LocUserRole).(string)
		if !ok || strings.TrimSpace(role) == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}

		for _, allowed := range allowedRoles {
			if strings.EqualFold(role, allowed) {
				return c.Next()
			}
		}

		log.Printf("[WARN] role %s ditolak untuk %s %s", role, c.Method(), c.Path())
		if customForbiddenMessage == "" {
			customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}
		return helper.JsonError(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}

// Shortcut biar lebih clean pemakaian
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}
