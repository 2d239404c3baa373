package dto

import (
	"time"

	"basamu_backend/internals/features/users/auth/service"
)

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// RefreshRequest is optional; browsers send the refresh_token cookie instead.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type AuthResponse struct {
	Session      service.Session `json:"session"`
	AccessToken  string          `json:"access_token"`
	ExpiresAt    time.Time       `json:"expires_at"`
	RefreshToken string          `json:"refresh_token"`
}

func NewAuthResponse(sess service.Session, pair service.Pair) AuthResponse {
	return AuthResponse{
		Session:      sess,
		AccessToken:  pair.AccessToken,
		ExpiresAt:    pair.AccessExpiresAt,
		RefreshToken: pair.RefreshToken,
	}
}

type AdminStatusResponse struct {
	IsAdmin bool `json:"is_admin"`
}
