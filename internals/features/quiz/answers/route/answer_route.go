package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	answerController "audition_backend/internals/features/quiz/answers/controller"
)

// /api/quiz/answer (user login)
func AnswerRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := answerController.NewAnswerController(db)
	r.Post("/quiz/answer", ctrl.Submit)
}
