package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"audition_backend/internals/constants"
)

// UserModel merepresentasikan tabel users (profil + state progres kandidat).
// Round hanya diubah lewat package progression.
type UserModel struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserName       string    `gorm:"column:user_name;size:100;not null" json:"username"`
	Email          string    `gorm:"column:email;size:255;not null;uniqueIndex:uq_users_email" json:"email"`
	Password       *string   `gorm:"column:password" json:"-"`
	GoogleID       *string   `gorm:"column:google_id;size:255;uniqueIndex:uq_users_google_id" json:"-"`
	Role           string    `gorm:"column:role;type:varchar(10);not null;default:'USER'" json:"role"`
	Contact        *string   `gorm:"column:contact;size:30" json:"contact,omitempty"`
	Gender         *string   `gorm:"column:gender;size:20" json:"gender,omitempty"`
	Specialization *string   `gorm:"column:specialization;size:100" json:"specialization,omitempty"`
	Picture        *string   `gorm:"column:picture" json:"picture,omitempty"`

	// progression state
	Round        int  `gorm:"column:round;not null;default:1;index:idx_users_round" json:"round"`
	HasGivenExam bool `gorm:"column:has_given_exam;not null;default:false" json:"hasGivenExam"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate: isi ID & default yang tidak boleh kosong
func (u *UserModel) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = constants.RoleUser
	}
	if u.Round < 1 {
		u.Round = 1
	}
	return nil
}

func (u *UserModel) IsAdmin() bool { return u.Role == constants.RoleAdmin }
