// file: internals/features/audition/round_one/controller/candidate_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"audition_backend/internals/constants"
	rOneModel "audition_backend/internals/features/audition/round_one/model"
	rTwoModel "audition_backend/internals/features/audition/round_two/model"
	answerModel "audition_backend/internals/features/quiz/answers/model"
	userModel "audition_backend/internals/features/users/user/model"
	helper "audition_backend/internals/helpers"
)

// Read-only projections untuk dashboard admin round 1.
type CandidateController struct {
	DB *gorm.DB
}

func NewCandidateController(db *gorm.DB) *CandidateController {
	return &CandidateController{DB: db}
}

type CandidateRow struct {
	ID              uuid.UUID  `json:"id"`
	UserName        string     `json:"username"`
	Email           string     `json:"email"`
	Round           int        `json:"round"`
	HasGivenExam    bool       `json:"hasGivenExam"`
	Score           *int       `json:"score"`
	Total           *int       `json:"total"`
	AuditionRoundID *uuid.UUID `json:"auditionRoundId"`
	FinalSelection  *bool      `json:"finalSelection"`
	Panel           *int       `json:"panel"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// GET /api/admin/r1/candidate?q=&round=&has_given_exam=&page=&per_page=
func (ctl *CandidateController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.WithContext(c.UserContext()).
		Table("users AS u").
		Joins("LEFT JOIN quiz_attempts qa ON qa.user_id = u.id").
		Joins("LEFT JOIN audition_rounds ar ON ar.user_id = u.id AND ar.round = 1").
		Where("u.role = ?", constants.RoleUser)

	if s := strings.ToLower(strings.TrimSpace(c.Query("q"))); s != "" {
		like := "%" + s + "%"
		q = q.Where("(LOWER(u.user_name) LIKE ? OR LOWER(u.email) LIKE ?)", like, like)
	}
	if r := strings.TrimSpace(c.Query("round")); r != "" {
		n, err := strconv.Atoi(r)
		if err != nil || n < 1 {
			return helper.JsonError(c, fiber.StatusBadRequest, "round must be a positive integer")
		}
		q = q.Where("u.round = ?", n)
	}
	if g := strings.TrimSpace(c.Query("has_given_exam")); g != "" {
		b, err := strconv.ParseBool(g)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "has_given_exam must be a boolean")
		}
		q = q.Where("u.has_given_exam = ?", b)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	rows := make([]CandidateRow, 0)
	if err := q.Select(`u.id, u.user_name, u.email, u.round, u.has_given_exam, u.created_at,
			qa.score, qa.total,
			ar.id AS audition_round_id, ar.final_selection, ar.panel`).
		Order("qa.score DESC NULLS LAST").
		Order("u.created_at ASC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Scan(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.BuildPagination(total, paging)
	return helper.JsonList(c, "Candidates fetched", rows, &p)
}

type ResponseRow struct {
	ID           uuid.UUID  `json:"id"`
	QuestionID   uuid.UUID  `json:"questionId"`
	Question     string     `json:"question"`
	QuestionType string     `json:"questionType"`
	OptionID     *uuid.UUID `json:"optionId"`
	OptionText   *string    `json:"optionText"`
	IsCorrect    *bool      `json:"isCorrect"`
	AnswerText   *string    `json:"answerText"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// GET /api/admin/r1/responses/:userId
func (ctl *CandidateController) Responses(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "userId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.ensureUser(c, userID); err != nil {
		return helper.FromFiberError(c, err)
	}

	rows := make([]ResponseRow, 0)
	if err := ctl.DB.WithContext(c.UserContext()).
		Table("answers AS a").
		Select(`a.id, a.question_id, q.description AS question, q.type AS question_type,
			a.option_id, o.text AS option_text, o.is_correct, a.description AS answer_text, a.created_at`).
		Joins("JOIN questions q ON q.id = a.question_id").
		Joins("LEFT JOIN options o ON o.id = a.option_id").
		Where("a.user_id = ?", userID).
		Order("a.created_at ASC").
		Scan(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var attempt *answerModel.QuizAttemptModel
	var qa answerModel.QuizAttemptModel
	if err := ctl.DB.WithContext(c.UserContext()).Where("user_id = ?", userID).First(&qa).Error; err == nil {
		attempt = &qa
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "Responses fetched", fiber.Map{
		"responses": rows,
		"attempt":   attempt,
	})
}

// GET /api/admin/r1/candidate-personal-details/:userId
func (ctl *CandidateController) PersonalDetails(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "userId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var user userModel.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Candidate details fetched", user)
}

// GET /api/admin/r1/progress/:userId
func (ctl *CandidateController) Progress(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "userId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := ctl.DB.WithContext(c.UserContext())

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.FromFiberError(c, err)
	}

	rounds := make([]rOneModel.AuditionRoundModel, 0)
	if err := db.Preload("Reviews", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at ASC")
	}).Where("user_id = ?", userID).Order("round ASC").Find(&rounds).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var roundTwo *rTwoModel.RoundTwoModel
	var rt rTwoModel.RoundTwoModel
	if err := db.Preload("Review").Where("user_id = ?", userID).First(&rt).Error; err == nil {
		roundTwo = &rt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.FromFiberError(c, err)
	}

	var attempt *answerModel.QuizAttemptModel
	var qa answerModel.QuizAttemptModel
	if err := db.Where("user_id = ?", userID).First(&qa).Error; err == nil {
		attempt = &qa
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "Progress fetched", fiber.Map{
		"userId":         user.ID,
		"round":          user.Round,
		"hasGivenExam":   user.HasGivenExam,
		"quizAttempt":    attempt,
		"auditionRounds": rounds,
		"roundTwo":       roundTwo,
	})
}

func (ctl *CandidateController) ensureUser(c *fiber.Ctx, userID uuid.UUID) error {
	var n int64
	if err := ctl.DB.WithContext(c.UserContext()).Model(&userModel.UserModel{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	return nil
}
