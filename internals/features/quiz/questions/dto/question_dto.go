// file: internals/features/quiz/questions/dto/question_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	qModel "audition_backend/internals/features/quiz/questions/model"
	helper "audition_backend/internals/helpers"
)

// =========================================================
// REQUEST: POST /api/quiz/create
// =========================================================
type OptionInput struct {
	Text      string `json:"text" validate:"required,max=1000"`
	IsCorrect bool   `json:"isCorrect"`
}

type CreateQuestionRequest struct {
	Description string        `json:"description" validate:"required"`
	Type        string        `json:"type" validate:"required"`
	Picture     *string       `json:"picture" validate:"omitempty,url"`
	Options     []OptionInput `json:"options" validate:"omitempty,dive"`
}

func (r *CreateQuestionRequest) Normalize() {
	r.Description = strings.TrimSpace(r.Description)
	r.Type = strings.TrimSpace(r.Type)
	if r.Picture != nil {
		p := strings.TrimSpace(*r.Picture)
		if p == "" {
			r.Picture = nil
		} else {
			r.Picture = &p
		}
	}
	for i := range r.Options {
		r.Options[i].Text = helper.CleanText(r.Options[i].Text)
	}
}

// ToModel: validasi aturan per tipe soal lalu bentuk model.
// MCQ/Pictorial: minimal 2 opsi & minimal 1 benar. Descriptive: tanpa opsi.
func (r *CreateQuestionRequest) ToModel() (*qModel.QuestionModel, string) {
	t, ok := qModel.ParseQuestionType(r.Type)
	if !ok {
		return nil, "type must be one of MCQ, Descriptive, Pictorial"
	}

	q := &qModel.QuestionModel{
		Description: r.Description,
		Type:        t,
		Picture:     r.Picture,
		Options:     make([]qModel.OptionModel, 0, len(r.Options)),
	}

	if !t.HasOptions() {
		if len(r.Options) > 0 {
			return nil, "descriptive questions cannot have options"
		}
		return q, ""
	}

	if len(r.Options) < 2 {
		return nil, "question needs at least 2 options"
	}
	correct := 0
	for _, o := range r.Options {
		if o.IsCorrect {
			correct++
		}
		q.Options = append(q.Options, qModel.OptionModel{Text: o.Text, IsCorrect: o.IsCorrect})
	}
	if correct == 0 {
		return nil, "question needs at least 1 correct option"
	}
	return q, ""
}

// =========================================================
// RESPONSE: tanpa isCorrect untuk kandidat
// =========================================================
type PublicOption struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

type PublicQuestion struct {
	ID          uuid.UUID      `json:"id"`
	Description string         `json:"description"`
	Type        string         `json:"type"`
	Picture     *string        `json:"picture,omitempty"`
	Options     []PublicOption `json:"options"`
}

func FromQuestionModel(m *qModel.QuestionModel) PublicQuestion {
	out := PublicQuestion{
		ID:          m.ID,
		Description: m.Description,
		Type:        m.Type.String(),
		Picture:     m.Picture,
		Options:     make([]PublicOption, 0, len(m.Options)),
	}
	for _, o := range m.Options {
		out.Options = append(out.Options, PublicOption{ID: o.ID, Text: o.Text})
	}
	return out
}

func FromQuestionModels(list []qModel.QuestionModel) []PublicQuestion {
	out := make([]PublicQuestion, 0, len(list))
	for i := range list {
		out = append(out, FromQuestionModel(&list[i]))
	}
	return out
}
