// file: internals/features/audition/round_one/model/audition_round_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =============================================================================
// MODEL: audition_rounds
// - Satu baris per (user_id, round): uq_audition_rounds_user_round.
// - FinalSelection nil = belum diputuskan. Di-update in place, riwayatnya di reviews.
// =============================================================================
type AuditionRoundModel struct {
	ID             uuid.UUID     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID     `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_audition_rounds_user_round,priority:1" json:"userId"`
	Round          int           `gorm:"column:round;not null;uniqueIndex:uq_audition_rounds_user_round,priority:2" json:"round"`
	FinalSelection *bool         `gorm:"column:final_selection" json:"finalSelection"`
	Panel          *int          `gorm:"column:panel" json:"panel"`
	Reviews        []ReviewModel `gorm:"foreignKey:AuditionRoundID;references:ID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	CreatedAt      time.Time     `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (AuditionRoundModel) TableName() string { return "audition_rounds" }

func (m *AuditionRoundModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsDecided: verdict sudah ada (true/false).
func (m *AuditionRoundModel) IsDecided() bool { return m.FinalSelection != nil }

// =============================================================================
// MODEL: reviews: append-only, tidak pernah di-update
// =============================================================================
type ReviewModel struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AuditionRoundID uuid.UUID `gorm:"column:audition_round_id;type:uuid;not null;index:idx_reviews_audition_round" json:"auditionRoundId"`
	Panel           int       `gorm:"column:panel;not null;default:0" json:"panel"`
	Remarks         string    `gorm:"column:remarks;type:text;not null" json:"remarks"`
	EvaluatedBy     string    `gorm:"column:evaluated_by;size:255;not null" json:"evaluatedBy"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (ReviewModel) TableName() string { return "reviews" }

func (m *ReviewModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeUpdate: reviews bersifat append-only.
func (m *ReviewModel) BeforeUpdate(_ *gorm.DB) error {
	return gorm.ErrInvalidData
}
