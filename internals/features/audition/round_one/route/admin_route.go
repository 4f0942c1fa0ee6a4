package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	rOneController "audition_backend/internals/features/audition/round_one/controller"
)

/*
Catatan:
- Mount parent router dengan prefix /api/admin (Auth + OnlyRoles ADMIN).
- Base group di sini: /api/admin/r1
*/
func RoundOneAdminRoutes(r fiber.Router, db *gorm.DB) {
	evalCtrl := rOneController.NewEvaluationController(db)
	candCtrl := rOneController.NewCandidateController(db)

	g := r.Group("/r1") // -> /api/admin/r1

	g.Post("/evaluate", evalCtrl.Evaluate)                                 // POST /api/admin/r1/evaluate
	g.Get("/candidate", candCtrl.List)                                     // GET  /api/admin/r1/candidate
	g.Get("/responses/:userId", candCtrl.Responses)                        // GET  /api/admin/r1/responses/:userId
	g.Get("/candidate-personal-details/:userId", candCtrl.PersonalDetails) // GET  /api/admin/r1/candidate-personal-details/:userId
	g.Get("/progress/:userId", candCtrl.Progress)                          // GET  /api/admin/r1/progress/:userId
}
