package middlewares

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"audition_backend/internals/configs"
)

// RecoveryMiddleware: panic → 500 lewat ErrorHandler, dicatat bersama request id.
// Stack trace hanya kalau PANIC_STACKTRACE=true (default true di dev).
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: configs.GetEnvBool("PANIC_STACKTRACE", true),
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Printf("[PANIC] reqid=%v %s %s: %s", c.Locals("reqid"), c.Method(), c.OriginalURL(), fmt.Sprint(e))
		},
	})
}
