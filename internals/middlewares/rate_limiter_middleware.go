package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"audition_backend/internals/configs"
	helper "audition_backend/internals/helpers"
)

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        configs.GetEnvInt("RATE_LIMIT_PER_MINUTE", 100),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "❌ Too many requests. Please try again later.")
		},
	})
}

// Rate limiter untuk login route (lebih ketat)
func LoginRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "❌ Too many login attempts. Please wait a moment.")
		},
	})
}

// Rate limiter untuk register route
func RegisterRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        3,
		Expiration: 5 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "❌ Too many registration attempts. Please wait a few minutes.")
		},
	})
}
