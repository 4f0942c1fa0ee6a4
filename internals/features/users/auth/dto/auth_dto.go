package dto

import (
	"strings"

	uDTO "audition_backend/internals/features/users/user/dto"
)

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type RegisterRequest struct {
	UserName string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *RegisterRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Identifier: email atau username.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Identifier = strings.TrimSpace(r.Identifier)
}

type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	ExpiresAt   int64             `json:"expires_at"`
	User        uDTO.UserResponse `json:"user"`
}
