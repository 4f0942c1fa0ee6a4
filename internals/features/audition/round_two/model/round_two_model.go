// file: internals/features/audition/round_two/model/round_two_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =============================================================================
// MODEL: round_twos: penugasan task round 2 (satu per user)
// Status: label bebas, nilai yang dipakai server ada di progression.Status*.
// =============================================================================
type RoundTwoModel struct {
	ID          uuid.UUID                   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                   `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_round_twos_user" json:"userId"`
	Panel       *int                        `gorm:"column:panel;index:idx_round_twos_panel" json:"panel"`
	TaskAlloted string                      `gorm:"column:task_alloted;type:text;not null;default:''" json:"taskAlloted"`
	TaskLink    string                      `gorm:"column:task_link;type:text;not null;default:''" json:"taskLink"`
	Status      string                      `gorm:"column:status;size:32;not null;index:idx_round_twos_status" json:"status"`
	AddOns      datatypes.JSONSlice[string] `gorm:"column:add_ons" json:"addOns"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	Review      *RoundTwoReviewModel        `gorm:"foreignKey:RoundTwoID;references:ID;constraint:OnDelete:CASCADE" json:"review,omitempty"`
	CreatedAt   time.Time                   `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (RoundTwoModel) TableName() string { return "round_twos" }

func (m *RoundTwoModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.AddOns == nil {
		m.AddOns = datatypes.JSONSlice[string]{}
	}
	if m.Tags == nil {
		m.Tags = datatypes.JSONSlice[string]{}
	}
	return nil
}

// =============================================================================
// MODEL: round_two_reviews: satu review terstruktur per round_two (upsert)
// Forwarded terpisah dari verdict (final_selection di audition_rounds).
// =============================================================================
type RoundTwoReviewModel struct {
	ID               uuid.UUID                   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RoundTwoID       uuid.UUID                   `gorm:"column:round_two_id;type:uuid;not null;uniqueIndex:uq_round_two_reviews_round_two" json:"roundTwoId"`
	Attendance       bool                        `gorm:"column:attendance;not null;default:false" json:"attendance"`
	TaskGiven        string                      `gorm:"column:task_given;type:text;not null;default:''" json:"taskgiven"`
	ClubPrefer       string                      `gorm:"column:club_prefer;size:100;not null;default:''" json:"clubPrefer"`
	SubDomain        string                      `gorm:"column:sub_domain;size:100;not null;default:''" json:"subDomain"`
	HsPlace          string                      `gorm:"column:hs_place;size:100;not null;default:''" json:"hs_place"`
	Reviews          datatypes.JSONSlice[string] `gorm:"column:reviews" json:"reviews"`
	Remarks          string                      `gorm:"column:remarks;type:text;not null;default:''" json:"remarks"`
	Rating           int                         `gorm:"column:rating;not null;check:chk_round_two_reviews_rating,rating >= 0 AND rating <= 10" json:"rating"`
	GD               string                      `gorm:"column:gd;type:text;not null;default:''" json:"gd"`
	General          string                      `gorm:"column:general;type:text;not null;default:''" json:"general"`
	Forwarded        bool                        `gorm:"column:forwarded;not null;default:false;index:idx_round_two_reviews_forwarded" json:"forwarded"`
	ForwardDecidedAt *time.Time                  `gorm:"column:forward_decided_at" json:"forwardDecidedAt,omitempty"`
	ReviewedBy       *string                     `gorm:"column:reviewed_by;size:255" json:"reviewedBy,omitempty"`
	CreatedAt        time.Time                   `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (RoundTwoReviewModel) TableName() string { return "round_two_reviews" }

func (m *RoundTwoReviewModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Reviews == nil {
		m.Reviews = datatypes.JSONSlice[string]{}
	}
	return nil
}

// IsForwardDecided: admin sudah memutuskan forward / tidak.
func (m *RoundTwoReviewModel) IsForwardDecided() bool {
	return m.Forwarded || m.ForwardDecidedAt != nil
}
