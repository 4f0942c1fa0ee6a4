package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"audition_backend/internals/configs"
)

// LoggerMiddleware: access log per request. /health tidak dicatat (dipanggil probe tiap beberapa detik).
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   configs.GetEnv("LOG_TIMEZONE", "Asia/Kolkata"),
		Format:     "[${time}] ${ip} - ${locals:reqid} ${method} ${path} - ${status} - ${latency} user=${locals:user_id}\n",
	})
}
