// file: internals/features/quiz/answers/dto/answer_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	answerModel "audition_backend/internals/features/quiz/answers/model"
)

// POST /api/quiz/answer
type OptionRef struct {
	ID *uuid.UUID `json:"id"`
}

type AnswerItem struct {
	QuestionID uuid.UUID  `json:"questionId" validate:"required"`
	Option     *OptionRef `json:"option"`
	Ans        *string    `json:"ans"`
}

// SelectedOption: id opsi yang dipilih, nil kalau jawaban essay.
func (a *AnswerItem) SelectedOption() *uuid.UUID {
	if a.Option == nil || a.Option.ID == nil || *a.Option.ID == uuid.Nil {
		return nil
	}
	id := *a.Option.ID
	return &id
}

type SubmitAnswersRequest struct {
	Answers []AnswerItem `json:"answers" validate:"required,min=1,dive"`
}

func (r *SubmitAnswersRequest) Normalize() {
	for i := range r.Answers {
		if r.Answers[i].Ans != nil {
			s := strings.TrimSpace(*r.Answers[i].Ans)
			if s == "" {
				r.Answers[i].Ans = nil
			} else {
				r.Answers[i].Ans = &s
			}
		}
	}
}

type SubmitAnswersResponse struct {
	Score   int                           `json:"score"`
	Total   int                           `json:"total"`
	Saved   int                           `json:"saved"`
	Skipped []uuid.UUID                   `json:"skipped"`
	Attempt *answerModel.QuizAttemptModel `json:"attempt"`
	Answers []answerModel.AnswerModel     `json:"answers"`
}
