package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"audition_backend/internals/constants"
	rTwoController "audition_backend/internals/features/audition/round_two/controller"
	authMiddleware "audition_backend/internals/middlewares/auth"
)

// /api/admin/r2 (parent sudah Auth + OnlyRoles ADMIN)
func RoundTwoAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := rTwoController.NewAdminRoundTwoController(db)

	g := r.Group("/r2")
	g.Post("/review", ctrl.SubmitReview)
	g.Post("/evaluate", ctrl.Evaluate)
	g.Post("/forward", ctrl.Forward)
	g.Put("/task/:userId", ctrl.UpdateTask)
	g.Get("/statistics", ctrl.Statistics)
	g.Get("/panel/:panel", ctrl.ListByPanel)
}

// /api/round2 (parent sudah Auth)
func RoundTwoUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := rTwoController.NewCandidateTaskController(db)
	candidateOnly := authMiddleware.OnlyRoles(constants.RoleErrorUser("round 2 submissions"), constants.UserOnly...)

	r.Post("/round2", candidateOnly, ctrl.Submit)
	r.Get("/round2", candidateOnly, ctrl.Mine)
}
