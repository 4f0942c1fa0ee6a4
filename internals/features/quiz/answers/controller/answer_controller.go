// file: internals/features/quiz/answers/controller/answer_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	answerDTO "audition_backend/internals/features/quiz/answers/dto"
	answerService "audition_backend/internals/features/quiz/answers/service"
	helper "audition_backend/internals/helpers"
)

type AnswerController struct {
	DB        *gorm.DB
	validator *validator.Validate
	svc       *answerService.AnswerService
}

func NewAnswerController(db *gorm.DB) *AnswerController {
	return &AnswerController{
		DB:        db,
		validator: validator.New(),
		svc:       answerService.NewAnswerService(db),
	}
}

// POST /api/quiz/answer
func (ctl *AnswerController) Submit(c *fiber.Ctx) error {
	var req answerDTO.SubmitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	who := answerService.Identity{Email: helper.GetUserEmailFromToken(c)}
	if id, err := helper.GetUserIDFromToken(c); err == nil {
		who.UserID = id
	}
	if who.Email == "" && who.UserID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User is not logged in")
	}

	res, err := ctl.svc.SubmitAnswers(c.UserContext(), who, req.Answers)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Quiz submitted", res)
}
