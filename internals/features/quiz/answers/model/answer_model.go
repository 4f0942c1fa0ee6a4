// file: internals/features/quiz/answers/model/answer_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =============================================================================
// MODEL: answers: satu jawaban kandidat untuk satu soal (tidak pernah di-update)
// =============================================================================
type AnswerModel struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_answers_user" json:"userId"`
	QuestionID  uuid.UUID  `gorm:"column:question_id;type:uuid;not null;index:idx_answers_question" json:"questionId"`
	OptionID    *uuid.UUID `gorm:"column:option_id;type:uuid" json:"optionId,omitempty"`
	Description *string    `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (AnswerModel) TableName() string { return "answers" }

func (a *AnswerModel) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// =============================================================================
// MODEL: quiz_attempts: ringkasan submit round 1 (satu per user)
// =============================================================================
type QuizAttemptModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_quiz_attempts_user" json:"userId"`
	Score     int       `gorm:"column:score;not null" json:"score"`
	Total     int       `gorm:"column:total;not null" json:"total"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (QuizAttemptModel) TableName() string { return "quiz_attempts" }

func (m *QuizAttemptModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
