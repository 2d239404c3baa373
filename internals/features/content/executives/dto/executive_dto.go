package dto

import (
	"encoding/json"
	"strconv"
	"strings"

	"basamu_backend/internals/features/content/executives/model"
	helper "basamu_backend/internals/helpers"
)

// LooseInt accepts 3, "3" or garbage; anything unparsable becomes 0.
type LooseInt int

func (n *LooseInt) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		*n = 0
		return nil
	}
	switch v := raw.(type) {
	case float64:
		*n = LooseInt(int(v))
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			i = 0
		}
		*n = LooseInt(i)
	default:
		*n = 0
	}
	return nil
}

// ============================
// Requests
// ============================

type CreateExecutiveRequest struct {
	ExecutiveName     string   `json:"executive_name" validate:"required,max=150"`
	ExecutivePosition string   `json:"executive_position" validate:"required,max=150"`
	ExecutiveRole     string   `json:"executive_role" validate:"required"`
	ExecutiveYear     string   `json:"executive_year" validate:"required,max=20"`
	ExecutiveRank     LooseInt `json:"executive_rank"`
	ExecutivePhotoURL *string  `json:"executive_photo_url" validate:"omitempty,url"`
	ExecutiveEmail    *string  `json:"executive_email" validate:"omitempty,email"`
}

func (r *CreateExecutiveRequest) Normalize() {
	r.ExecutiveName = strings.TrimSpace(r.ExecutiveName)
	r.ExecutivePosition = strings.TrimSpace(r.ExecutivePosition)
	r.ExecutiveRole = strings.TrimSpace(r.ExecutiveRole)
	r.ExecutiveYear = strings.TrimSpace(r.ExecutiveYear)
	r.ExecutivePhotoURL = helper.NullIfBlank(r.ExecutivePhotoURL)
	r.ExecutiveEmail = helper.NullIfBlank(r.ExecutiveEmail)
}

func (r CreateExecutiveRequest) ToModel() model.ExecutiveModel {
	return model.ExecutiveModel{
		ExecutiveName:     r.ExecutiveName,
		ExecutivePosition: r.ExecutivePosition,
		ExecutiveRole:     r.ExecutiveRole,
		ExecutiveYear:     r.ExecutiveYear,
		ExecutiveRank:     int(r.ExecutiveRank),
		ExecutivePhotoURL: r.ExecutivePhotoURL,
		ExecutiveEmail:    r.ExecutiveEmail,
	}
}

// UpdateExecutiveRequest edits the details; the photo has its own action.
type UpdateExecutiveRequest struct {
	ExecutiveName     string   `json:"executive_name" validate:"required,max=150"`
	ExecutivePosition string   `json:"executive_position" validate:"required,max=150"`
	ExecutiveRole     string   `json:"executive_role" validate:"required"`
	ExecutiveYear     string   `json:"executive_year" validate:"required,max=20"`
	ExecutiveRank     LooseInt `json:"executive_rank"`
	ExecutiveEmail    *string  `json:"executive_email" validate:"omitempty,email"`
}

func (r *UpdateExecutiveRequest) Normalize() {
	r.ExecutiveName = strings.TrimSpace(r.ExecutiveName)
	r.ExecutivePosition = strings.TrimSpace(r.ExecutivePosition)
	r.ExecutiveRole = strings.TrimSpace(r.ExecutiveRole)
	r.ExecutiveYear = strings.TrimSpace(r.ExecutiveYear)
	r.ExecutiveEmail = helper.NullIfBlank(r.ExecutiveEmail)
}

func (r UpdateExecutiveRequest) ToDetails() model.ExecutiveDetails {
	return model.ExecutiveDetails{
		Name:     r.ExecutiveName,
		Position: r.ExecutivePosition,
		Role:     r.ExecutiveRole,
		Year:     r.ExecutiveYear,
		Rank:     int(r.ExecutiveRank),
		Email:    r.ExecutiveEmail,
	}
}

type ReplacePhotoRequest struct {
	ExecutivePhotoURL string `json:"executive_photo_url" validate:"required,url"`
}

func (r *ReplacePhotoRequest) Normalize() {
	r.ExecutivePhotoURL = strings.TrimSpace(r.ExecutivePhotoURL)
}

// ============================
// Responses
// ============================

type ExecutiveListResponse struct {
	Executives []model.ExecutiveModel `json:"executives"`
	Years      []string               `json:"years"`
	CanEdit    bool                   `json:"can_edit"`
}
