package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	rOneRoute "audition_backend/internals/features/audition/round_one/route"
	rTwoRoute "audition_backend/internals/features/audition/round_two/route"
)

// 👤 kandidat: /api/round2
func AuditionUserRoutes(api fiber.Router, db *gorm.DB) {
	rTwoRoute.RoundTwoUserRoutes(api, db)
}

// 🔐 admin: /api/admin/r1/..., /api/admin/r2/...
func AuditionAdminRoutes(admin fiber.Router, db *gorm.DB) {
	rOneRoute.RoundOneAdminRoutes(admin, db)
	rTwoRoute.RoundTwoAdminRoutes(admin, db)
}
