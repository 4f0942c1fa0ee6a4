// file: internals/features/audition/round_one/dto/evaluation_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	rOneModel "audition_backend/internals/features/audition/round_one/model"
	rTwoModel "audition_backend/internals/features/audition/round_two/model"
	helper "audition_backend/internals/helpers"
)

// ==========================================================================================
// REQUEST: POST /api/admin/r1/evaluate
// - auditionRoundId kosong → userId wajib (dicek di service).
// - panel 0 dianggap "tanpa panel".
// ==========================================================================================
type SubmitEvaluationRequest struct {
	AuditionRoundID *uuid.UUID `json:"auditionRoundId"`
	UserID          *uuid.UUID `json:"userId"`
	Panel           *int       `json:"panel" validate:"omitempty,min=0,max=6"`
	Remarks         string     `json:"remarks" validate:"required"`
	FinalSelection  *bool      `json:"finalSelection" validate:"required"`
	EvaluatedBy     string     `json:"evaluatedBy" validate:"required"`
}

func (r *SubmitEvaluationRequest) Normalize() {
	r.Remarks = helper.CleanText(r.Remarks)
	r.EvaluatedBy = helper.CleanText(r.EvaluatedBy)
	if r.Panel != nil && *r.Panel == 0 {
		r.Panel = nil
	}
	if r.AuditionRoundID != nil && *r.AuditionRoundID == uuid.Nil {
		r.AuditionRoundID = nil
	}
	if r.UserID != nil && *r.UserID == uuid.Nil {
		r.UserID = nil
	}
}

// ReviewPanel: panel untuk baris reviews (panel ?? 0).
func (r *SubmitEvaluationRequest) ReviewPanel() int {
	if r.Panel == nil {
		return 0
	}
	return *r.Panel
}

// ==========================================================================================
// RESPONSE
// ==========================================================================================
type AuditionRoundResponse struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"userId"`
	Round          int              `json:"round"`
	FinalSelection *bool            `json:"finalSelection"`
	Panel          *int             `json:"panel"`
	Reviews        []ReviewResponse `json:"reviews,omitempty"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

type ReviewResponse struct {
	ID          uuid.UUID `json:"id"`
	Panel       int       `json:"panel"`
	Remarks     string    `json:"remarks"`
	EvaluatedBy string    `json:"evaluatedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

type EvaluationResponse struct {
	AuditionRound AuditionRoundResponse    `json:"auditionRound"`
	Review        ReviewResponse           `json:"review"`
	RoundTwo      *rTwoModel.RoundTwoModel `json:"roundTwo,omitempty"`
	UserRound     int                      `json:"userRound"`
}

func FromAuditionRound(m *rOneModel.AuditionRoundModel) AuditionRoundResponse {
	out := AuditionRoundResponse{
		ID:             m.ID,
		UserID:         m.UserID,
		Round:          m.Round,
		FinalSelection: m.FinalSelection,
		Panel:          m.Panel,
		UpdatedAt:      m.UpdatedAt,
	}
	for i := range m.Reviews {
		out.Reviews = append(out.Reviews, FromReview(&m.Reviews[i]))
	}
	return out
}

func FromReview(m *rOneModel.ReviewModel) ReviewResponse {
	return ReviewResponse{
		ID:          m.ID,
		Panel:       m.Panel,
		Remarks:     m.Remarks,
		EvaluatedBy: m.EvaluatedBy,
		CreatedAt:   m.CreatedAt,
	}
}
