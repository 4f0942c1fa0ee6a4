package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	answerRoute "audition_backend/internals/features/quiz/answers/route"
	questionRoute "audition_backend/internals/features/quiz/questions/route"
)

// /api/quiz/...
func QuizRoutes(api fiber.Router, db *gorm.DB) {
	questionRoute.QuestionRoutes(api, db)
	answerRoute.AnswerRoutes(api, db)
}
