// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"audition_backend/internals/configs"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

// CorsMiddleware membuat middleware CORS (cookie auth → AllowCredentials).
// Origin tambahan dari CORS_ALLOW_ORIGINS (dipisah koma).
func CorsMiddleware() fiber.Handler {
	origins := append([]string{}, defaultOrigins...)
	for _, o := range strings.Split(configs.GetEnv("CORS_ALLOW_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowCredentials: true,
	})
}
