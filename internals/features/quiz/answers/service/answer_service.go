// file: internals/features/quiz/answers/service/answer_service.go
package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	answerDTO "audition_backend/internals/features/quiz/answers/dto"
	answerModel "audition_backend/internals/features/quiz/answers/model"
	qModel "audition_backend/internals/features/quiz/questions/model"
	userModel "audition_backend/internals/features/users/user/model"
)

var ErrAlreadySubmitted = fiber.NewError(fiber.StatusBadRequest, "Quiz has already been submitted")

type AnswerService struct {
	DB *gorm.DB
}

func NewAnswerService(db *gorm.DB) *AnswerService {
	return &AnswerService{DB: db}
}

// Identity: kandidat dicari by email dulu, fallback id.
type Identity struct {
	Email  string
	UserID uuid.UUID
}

/*
SubmitAnswers (satu transaksi):
  - soal yang tidak ada dilewati (tanpa error)
  - answers disimpan apa adanya
  - score = jumlah opsi benar (opsi harus milik soal yang dijawab)
  - total = jumlah jawaban pilihan (essay tidak dihitung)
  - quiz_attempts dibuat & users.has_given_exam = true
*/
func (s *AnswerService) SubmitAnswers(ctx context.Context, who Identity, items []answerDTO.AnswerItem) (*answerDTO.SubmitAnswersResponse, error) {
	if len(items) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "answers are required")
	}

	var out answerDTO.SubmitAnswersResponse
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := resolveUser(tx, who)
		if err != nil {
			return err
		}

		// guard submit ganda
		if user.HasGivenExam {
			return ErrAlreadySubmitted
		}
		var attempts int64
		if err := tx.Model(&answerModel.QuizAttemptModel{}).Where("user_id = ?", user.ID).Count(&attempts).Error; err != nil {
			return err
		}
		if attempts > 0 {
			return ErrAlreadySubmitted
		}

		// soal yang ada
		qids := make([]uuid.UUID, 0, len(items))
		for _, it := range items {
			qids = append(qids, it.QuestionID)
		}
		var existing []uuid.UUID
		if err := tx.Model(&qModel.QuestionModel{}).Where("id IN ?", qids).Pluck("id", &existing).Error; err != nil {
			return err
		}
		known := make(map[uuid.UUID]struct{}, len(existing))
		for _, id := range existing {
			known[id] = struct{}{}
		}

		rows := make([]answerModel.AnswerModel, 0, len(items))
		skipped := make([]uuid.UUID, 0)
		for _, it := range items {
			if _, ok := known[it.QuestionID]; !ok {
				skipped = append(skipped, it.QuestionID)
				continue
			}
			rows = append(rows, answerModel.AnswerModel{
				UserID:      user.ID,
				QuestionID:  it.QuestionID,
				OptionID:    it.SelectedOption(),
				Description: it.Ans,
			})
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		score, total, err := scoreAnswers(tx, rows)
		if err != nil {
			return err
		}

		attempt := answerModel.QuizAttemptModel{UserID: user.ID, Score: score, Total: total}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}
		if err := tx.Model(&userModel.UserModel{}).
			Where("id = ?", user.ID).
			Update("has_given_exam", true).Error; err != nil {
			return err
		}

		if len(skipped) > 0 {
			log.Printf("[WARN] quiz submit user=%s: %d answer(s) for unknown questions skipped", user.ID, len(skipped))
		}
		log.Printf("[INFO] quiz submitted user=%s score=%d/%d", user.ID, score, total)

		out = answerDTO.SubmitAnswersResponse{
			Score:   score,
			Total:   total,
			Saved:   len(rows),
			Skipped: skipped,
			Attempt: &attempt,
			Answers: rows,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// scoreAnswers: batch fetch opsi yang dipilih, hitung yang benar.
func scoreAnswers(tx *gorm.DB, rows []answerModel.AnswerModel) (score, total int, err error) {
	optIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		if r.OptionID != nil {
			optIDs = append(optIDs, *r.OptionID)
		}
	}
	total = len(optIDs)
	if total == 0 {
		return 0, 0, nil
	}

	var opts []qModel.OptionModel
	if err := tx.Where("id IN ?", optIDs).Find(&opts).Error; err != nil {
		return 0, 0, err
	}
	byID := make(map[uuid.UUID]qModel.OptionModel, len(opts))
	for _, o := range opts {
		byID[o.ID] = o
	}

	for _, r := range rows {
		if r.OptionID == nil {
			continue
		}
		o, ok := byID[*r.OptionID]
		if ok && o.QuestionID == r.QuestionID && o.IsCorrect {
			score++
		}
	}
	return score, total, nil
}

func resolveUser(tx *gorm.DB, who Identity) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if email := strings.ToLower(strings.TrimSpace(who.Email)); email != "" {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("email = ?", email).First(&u).Error
		if err == nil {
			return &u, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if who.UserID != uuid.Nil {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", who.UserID).First(&u).Error
		if err == nil {
			return &u, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
}
