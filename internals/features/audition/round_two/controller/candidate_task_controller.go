// file: internals/features/audition/round_two/controller/candidate_task_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	rTwoDTO "audition_backend/internals/features/audition/round_two/dto"
	rTwoService "audition_backend/internals/features/audition/round_two/service"
	helper "audition_backend/internals/helpers"
)

type CandidateTaskController struct {
	DB        *gorm.DB
	validator *validator.Validate
	tasks     *rTwoService.TaskService
}

func NewCandidateTaskController(db *gorm.DB) *CandidateTaskController {
	return &CandidateTaskController{
		DB:        db,
		validator: validator.New(),
		tasks:     rTwoService.NewTaskService(db),
	}
}

// POST /api/round2
func (ctl *CandidateTaskController) Submit(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req rTwoDTO.SubmitTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	rt, err := ctl.tasks.SubmitTask(c.UserContext(), userID, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Task submitted", rt)
}

// GET /api/round2
func (ctl *CandidateTaskController) Mine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rt, err := ctl.tasks.GetMine(c.UserContext(), userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Round two fetched", rt)
}
