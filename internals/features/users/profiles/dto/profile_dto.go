package dto

import (
	"strings"

	"github.com/google/uuid"

	"basamu_backend/internals/features/users/profiles/model"
)

type UpdateProfileRequest struct {
	ProfileFirstName string `json:"profile_first_name" validate:"max=100"`
	ProfileLastName  string `json:"profile_last_name" validate:"max=100"`
}

func (r *UpdateProfileRequest) Normalize() {
	r.ProfileFirstName = strings.TrimSpace(r.ProfileFirstName)
	r.ProfileLastName = strings.TrimSpace(r.ProfileLastName)
}

type ProfileResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	AvatarURL *string   `json:"avatar_url"`
	// false until the user saves their profile for the first time
	Saved bool `json:"saved"`
}

func FromModel(m model.ProfileModel, email string) ProfileResponse {
	return ProfileResponse{
		UserID:    m.ProfileUserID,
		Email:     email,
		FirstName: m.ProfileFirstName,
		LastName:  m.ProfileLastName,
		AvatarURL: m.ProfileAvatarURL,
		Saved:     true,
	}
}
