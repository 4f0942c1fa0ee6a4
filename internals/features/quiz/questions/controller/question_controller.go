// file: internals/features/quiz/questions/controller/question_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	answerModel "audition_backend/internals/features/quiz/answers/model"
	qDTO "audition_backend/internals/features/quiz/questions/dto"
	qModel "audition_backend/internals/features/quiz/questions/model"
	helper "audition_backend/internals/helpers"
)

type QuestionController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewQuestionController(db *gorm.DB) *QuestionController {
	return &QuestionController{DB: db, validator: validator.New()}
}

// GET /api/quiz/questions?type=
func (ctl *QuestionController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).
		Preload("Options", func(tx *gorm.DB) *gorm.DB { return tx.Order("text ASC") }).
		Order("created_at ASC")

	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		t, ok := qModel.ParseQuestionType(raw)
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "type must be one of MCQ, Descriptive, Pictorial")
		}
		q = q.Where("type = ?", t)
	}

	rows := make([]qModel.QuestionModel, 0)
	if err := q.Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Questions fetched", qDTO.FromQuestionModels(rows))
}

// POST /api/quiz/create (admin)
func (ctl *QuestionController) Create(c *fiber.Ctx) error {
	var req qDTO.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	m, msg := req.ToModel()
	if msg != "" {
		return helper.JsonError(c, fiber.StatusBadRequest, msg)
	}

	// question + options dibuat bersama (association create)
	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	log.Printf("[INFO] question created id=%s type=%s options=%d", m.ID, m.Type, len(m.Options))
	return helper.JsonCreated(c, "Question created", m)
}

// DELETE /api/quiz/:id (admin)
func (ctl *QuestionController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var q qModel.QuestionModel
		if err := tx.First(&q, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Question not found")
			}
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&answerModel.AnswerModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&qModel.OptionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&q).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Question deleted", fiber.Map{"id": id})
}
