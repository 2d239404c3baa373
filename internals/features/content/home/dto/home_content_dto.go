package dto

import (
	"strings"

	"basamu_backend/internals/features/content/home/model"
	helper "basamu_backend/internals/helpers"
)

type UpdateHomeContentRequest struct {
	HomeHeroTitle        string  `json:"home_hero_title" validate:"required,max=255"`
	HomeHeroSubtitle     string  `json:"home_hero_subtitle"`
	HomeMissionText      string  `json:"home_mission_text"`
	HomeVisionText       string  `json:"home_vision_text"`
	HomeSlogan           string  `json:"home_slogan" validate:"max=255"`
	HomeHeroImageURL     *string `json:"home_hero_image_url" validate:"omitempty,url"`
	HomeChairpersonEmail *string `json:"home_chairperson_email" validate:"omitempty,email"`
}

func (r *UpdateHomeContentRequest) Normalize() {
	r.HomeHeroTitle = strings.TrimSpace(r.HomeHeroTitle)
	r.HomeHeroSubtitle = strings.TrimSpace(r.HomeHeroSubtitle)
	r.HomeMissionText = strings.TrimSpace(r.HomeMissionText)
	r.HomeVisionText = strings.TrimSpace(r.HomeVisionText)
	r.HomeSlogan = strings.TrimSpace(r.HomeSlogan)
	r.HomeHeroImageURL = helper.NullIfBlank(r.HomeHeroImageURL)
	r.HomeChairpersonEmail = helper.NullIfBlank(r.HomeChairpersonEmail)
}

func (r UpdateHomeContentRequest) ToDetails() model.HomeContentDetails {
	return model.HomeContentDetails{
		HeroTitle:        r.HomeHeroTitle,
		HeroSubtitle:     r.HomeHeroSubtitle,
		MissionText:      r.HomeMissionText,
		VisionText:       r.HomeVisionText,
		Slogan:           r.HomeSlogan,
		HeroImageURL:     r.HomeHeroImageURL,
		ChairpersonEmail: r.HomeChairpersonEmail,
	}
}

type GalleryItem struct {
	ImageURL string `json:"image_url"`
	Caption  string `json:"caption"`
}

type HomePageResponse struct {
	Content              model.HomeContentModel `json:"content"`
	IsDefault            bool                   `json:"is_default"`
	Gallery              []GalleryItem          `json:"gallery"`
	GalleryIsPlaceholder bool                   `json:"gallery_is_placeholder"`
}
