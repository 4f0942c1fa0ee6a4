// file: internals/features/audition/round_one/controller/evaluation_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	rOneDTO "audition_backend/internals/features/audition/round_one/dto"
	rOneService "audition_backend/internals/features/audition/round_one/service"
	helper "audition_backend/internals/helpers"
)

type EvaluationController struct {
	DB        *gorm.DB
	validator *validator.Validate
	svc       *rOneService.EvaluationService
}

func NewEvaluationController(db *gorm.DB) *EvaluationController {
	return &EvaluationController{
		DB:        db,
		validator: validator.New(),
		svc:       rOneService.NewEvaluationService(db),
	}
}

// POST /api/admin/r1/evaluate
func (ctl *EvaluationController) Evaluate(c *fiber.Ctx) error {
	var req rOneDTO.SubmitEvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res, err := ctl.svc.SubmitEvaluation(c.UserContext(), &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Evaluation submitted", res)
}
