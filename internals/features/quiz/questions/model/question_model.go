// file: internals/features/quiz/questions/model/question_model.go
package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =============================================================================
// ENUM-like: QuestionType ('MCQ','Descriptive','Pictorial')
// =============================================================================
type QuestionType string

const (
	QuestionTypeMCQ         QuestionType = "MCQ"
	QuestionTypeDescriptive QuestionType = "Descriptive"
	QuestionTypePictorial   QuestionType = "Pictorial"
)

func (t QuestionType) String() string { return string(t) }

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeMCQ, QuestionTypeDescriptive, QuestionTypePictorial:
		return true
	default:
		return false
	}
}

// HasOptions: MCQ & Pictorial dijawab dengan memilih opsi.
func (t QuestionType) HasOptions() bool {
	return t == QuestionTypeMCQ || t == QuestionTypePictorial
}

// ParseQuestionType: toleran huruf besar/kecil ("mcq", "DESCRIPTIVE").
func ParseQuestionType(s string) (QuestionType, bool) {
	for _, t := range []QuestionType{QuestionTypeMCQ, QuestionTypeDescriptive, QuestionTypePictorial} {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

// sql.Scanner + driver.Valuer (aman saat scan ke enum)
func (t *QuestionType) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = QuestionType(v)
	case []byte:
		*t = QuestionType(string(v))
	default:
		return fmt.Errorf("unsupported type for QuestionType: %T", value)
	}
	if !t.Valid() {
		return fmt.Errorf("invalid QuestionType: %q", *t)
	}
	return nil
}

func (t QuestionType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid QuestionType: %q", t)
	}
	return string(t), nil
}

// =============================================================================
// MODEL: questions
// =============================================================================
type QuestionModel struct {
	ID          uuid.UUID     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Description string        `gorm:"column:description;type:text;not null" json:"description"`
	Type        QuestionType  `gorm:"column:type;type:varchar(16);not null;index:idx_questions_type" json:"type"`
	Picture     *string       `gorm:"column:picture" json:"picture,omitempty"`
	Options     []OptionModel `gorm:"foreignKey:QuestionID;references:ID;constraint:OnDelete:CASCADE" json:"options"`
	CreatedAt   time.Time     `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (QuestionModel) TableName() string { return "questions" }

func (q *QuestionModel) BeforeCreate(_ *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// =============================================================================
// MODEL: options
// =============================================================================
type OptionModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"column:question_id;type:uuid;not null;index:idx_options_question" json:"questionId"`
	Text       string    `gorm:"column:text;type:text;not null" json:"text"`
	IsCorrect  bool      `gorm:"column:is_correct;not null" json:"isCorrect"`
}

func (OptionModel) TableName() string { return "options" }

func (o *OptionModel) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
