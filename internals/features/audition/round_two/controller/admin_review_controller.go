// file: internals/features/audition/round_two/controller/admin_review_controller.go
package controller

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"audition_backend/internals/constants"
	rTwoDTO "audition_backend/internals/features/audition/round_two/dto"
	rTwoService "audition_backend/internals/features/audition/round_two/service"
	helper "audition_backend/internals/helpers"
)

type AdminRoundTwoController struct {
	DB        *gorm.DB
	validator *validator.Validate
	reviews   *rTwoService.ReviewService
	tasks     *rTwoService.TaskService
	stats     *rTwoService.StatisticsService
}

func NewAdminRoundTwoController(db *gorm.DB) *AdminRoundTwoController {
	return &AdminRoundTwoController{
		DB:        db,
		validator: validator.New(),
		reviews:   rTwoService.NewReviewService(db),
		tasks:     rTwoService.NewTaskService(db),
		stats:     rTwoService.NewStatisticsService(db),
	}
}

// POST /api/admin/r2/review
func (ctl *AdminRoundTwoController) SubmitReview(c *fiber.Ctx) error {
	var req rTwoDTO.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res, err := ctl.reviews.SubmitReview(c.UserContext(), &req, helper.GetUserNameFromToken(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Review saved", res)
}

// POST /api/admin/r2/evaluate
func (ctl *AdminRoundTwoController) Evaluate(c *fiber.Ctx) error {
	var req rTwoDTO.EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res, err := ctl.reviews.Evaluate(c.UserContext(), &req, helper.GetUserNameFromToken(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Candidate evaluated", res)
}

// POST /api/admin/r2/forward
func (ctl *AdminRoundTwoController) Forward(c *fiber.Ctx) error {
	var req rTwoDTO.ForwardRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res, err := ctl.reviews.Forward(c.UserContext(), &req, helper.GetUserNameFromToken(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Forward decision saved", res)
}

// PUT /api/admin/r2/task/:userId
func (ctl *AdminRoundTwoController) UpdateTask(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "userId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req rTwoDTO.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	rt, err := ctl.tasks.UpdateTask(c.UserContext(), userID, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Task assigned", rt)
}

// GET /api/admin/r2/statistics
func (ctl *AdminRoundTwoController) Statistics(c *fiber.Ctx) error {
	st, err := ctl.stats.Statistics(c.UserContext())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Statistics fetched", st)
}

// GET /api/admin/r2/panel/:panel
func (ctl *AdminRoundTwoController) ListByPanel(c *fiber.Ctx) error {
	panel, err := strconv.Atoi(c.Params("panel"))
	if err != nil || !constants.IsValidPanel(panel) {
		return helper.JsonError(c, fiber.StatusBadRequest, "panel must be between 1 and 6")
	}
	paging := helper.ResolvePaging(c, 50, 200)

	rows, total, err := ctl.tasks.ListByPanel(c.UserContext(), panel, paging.Offset, paging.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.BuildPagination(total, paging)
	return helper.JsonList(c, "Panel candidates fetched", rows, &p)
}
