// file: internals/features/audition/round_two/dto/review_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	rOneModel "audition_backend/internals/features/audition/round_one/model"
	rTwoModel "audition_backend/internals/features/audition/round_two/model"
	helper "audition_backend/internals/helpers"
)

// =========================================================
// POST /api/admin/r2/review
// - rating wajib ada (0..10), bukan default 0 diam-diam
// - forwarded opsional: nil → false & belum diputuskan
// =========================================================
type ReviewRequest struct {
	UserID     *uuid.UUID `json:"userId" validate:"required"`
	RoundTwoID *uuid.UUID `json:"roundTwoId" validate:"required"`
	Attendance bool       `json:"attendance"`
	TaskGiven  string     `json:"taskgiven"`
	ClubPrefer string     `json:"clubPrefer" validate:"max=100"`
	SubDomain  string     `json:"subDomain" validate:"max=100"`
	HsPlace    string     `json:"hs_place" validate:"max=100"`
	Reviews    []string   `json:"reviews"`
	Remarks    string     `json:"remarks"`
	Rating     *int       `json:"rating" validate:"required,min=0,max=10"`
	GD         string     `json:"gd"`
	General    string     `json:"general"`
	Forwarded  *bool      `json:"forwarded"`
}

func (r *ReviewRequest) Normalize() {
	r.TaskGiven = strings.TrimSpace(r.TaskGiven)
	r.ClubPrefer = helper.CleanText(r.ClubPrefer)
	r.SubDomain = helper.CleanText(r.SubDomain)
	r.HsPlace = helper.CleanText(r.HsPlace)
	r.Remarks = strings.TrimSpace(r.Remarks)
	r.GD = strings.TrimSpace(r.GD)
	r.General = strings.TrimSpace(r.General)

	reviews := make([]string, 0, len(r.Reviews))
	for _, s := range r.Reviews {
		if s = strings.TrimSpace(s); s != "" {
			reviews = append(reviews, s)
		}
	}
	r.Reviews = reviews

	if r.UserID != nil && *r.UserID == uuid.Nil {
		r.UserID = nil
	}
	if r.RoundTwoID != nil && *r.RoundTwoID == uuid.Nil {
		r.RoundTwoID = nil
	}
}

// =========================================================
// POST /api/admin/r2/evaluate
// =========================================================
type EvaluateRequest struct {
	UserID         *uuid.UUID `json:"userId" validate:"required"`
	FinalSelection *bool      `json:"finalSelection" validate:"required"`
	Remarks        *string    `json:"remarks"`
}

// RemarksOrDefault: teks default tergantung verdict.
func (r *EvaluateRequest) RemarksOrDefault() string {
	if r.Remarks != nil {
		if s := strings.TrimSpace(*r.Remarks); s != "" {
			return s
		}
	}
	if r.FinalSelection != nil && *r.FinalSelection {
		return "Selected in round 2"
	}
	return "Not selected in round 2"
}

// =========================================================
// POST /api/admin/r2/forward
// =========================================================
type ForwardRequest struct {
	UserID    *uuid.UUID `json:"userId" validate:"required"`
	Forwarded *bool      `json:"forwarded" validate:"required"`
	Remarks   *string    `json:"remarks"`
}

// =========================================================
// RESPONSES
// =========================================================
type ReviewResponse struct {
	RoundTwo      *rTwoModel.RoundTwoModel       `json:"roundTwo"`
	Review        *rTwoModel.RoundTwoReviewModel `json:"review"`
	AuditionRound *rOneModel.AuditionRoundModel  `json:"auditionRound"`
}

type EvaluateResponse struct {
	UserID        uuid.UUID                     `json:"userId"`
	UserRound     int                           `json:"userRound"`
	Status        string                        `json:"status"`
	AuditionRound *rOneModel.AuditionRoundModel `json:"auditionRound"`
	Review        *rOneModel.ReviewModel        `json:"review"`
}

type ForwardResponse struct {
	UserID uuid.UUID                      `json:"userId"`
	Review *rTwoModel.RoundTwoReviewModel `json:"review"`
}
