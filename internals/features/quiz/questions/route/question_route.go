package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"audition_backend/internals/constants"
	qController "audition_backend/internals/features/quiz/questions/controller"
	authMiddleware "audition_backend/internals/middlewares/auth"
)

/*
Dipasang di group /api yang sudah lewat AuthMiddleware.
Create/Delete berbagi prefix /api/quiz dengan endpoint kandidat,
jadi guard admin dipasang per-route, bukan per-group.
*/
func QuestionRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := qController.NewQuestionController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("quiz management"), constants.AdminOnly...)

	r.Get("/quiz/questions", ctrl.List)            // GET    /api/quiz/questions
	r.Post("/quiz/create", adminOnly, ctrl.Create) // POST   /api/quiz/create
	r.Delete("/quiz/:id", adminOnly, ctrl.Delete)  // DELETE /api/quiz/:id
}
