package dto

import (
	"time"

	"github.com/google/uuid"

	uModel "audition_backend/internals/features/users/user/model"
	helper "audition_backend/internals/helpers"
)

// =======================================================
// REQUEST: PUT /api/update-user-info
// Partial update: field nil = tidak diubah.
// =======================================================
type UpdateUserInfoRequest struct {
	UserName       *string `json:"username,omitempty" validate:"omitempty,min=3,max=100"`
	Contact        *string `json:"contact,omitempty" validate:"omitempty,max=30"`
	Gender         *string `json:"gender,omitempty" validate:"omitempty,max=20"`
	Specialization *string `json:"specialization,omitempty" validate:"omitempty,max=100"`
	Picture        *string `json:"picture,omitempty" validate:"omitempty,url"`
}

func (r *UpdateUserInfoRequest) Normalize() {
	for _, p := range []**string{&r.UserName, &r.Contact, &r.Gender, &r.Specialization, &r.Picture} {
		if *p != nil {
			v := helper.CleanText(**p)
			*p = &v
		}
	}
}

// ToUpdates: map kolom → nilai. String kosong menghapus field opsional.
func (r *UpdateUserInfoRequest) ToUpdates() map[string]any {
	u := map[string]any{}
	if r.UserName != nil && *r.UserName != "" {
		u["user_name"] = *r.UserName
	}
	setNullable := func(col string, v *string) {
		if v == nil {
			return
		}
		u[col] = helper.StrPtr(*v)
	}
	setNullable("contact", r.Contact)
	setNullable("gender", r.Gender)
	setNullable("specialization", r.Specialization)
	setNullable("picture", r.Picture)
	return u
}

// =======================================================
// RESPONSE
// =======================================================
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	UserName       string    `json:"username"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Contact        *string   `json:"contact,omitempty"`
	Gender         *string   `json:"gender,omitempty"`
	Specialization *string   `json:"specialization,omitempty"`
	Picture        *string   `json:"picture,omitempty"`
	Round          int       `json:"round"`
	HasGivenExam   bool      `json:"hasGivenExam"`
	CreatedAt      time.Time `json:"createdAt"`
}

func FromModel(u *uModel.UserModel) UserResponse {
	return UserResponse{
		ID:             u.ID,
		UserName:       u.UserName,
		Email:          u.Email,
		Role:           u.Role,
		Contact:        u.Contact,
		Gender:         u.Gender,
		Specialization: u.Specialization,
		Picture:        u.Picture,
		Round:          u.Round,
		HasGivenExam:   u.HasGivenExam,
		CreatedAt:      u.CreatedAt,
	}
}
