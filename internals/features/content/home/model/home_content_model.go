package model

import (
	"time"

	"github.com/google/uuid"
)

// HomeContentModel is a single-row table holding the home page copy.
type HomeContentModel struct {
	HomeContentID        uuid.UUID `gorm:"column:home_content_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"home_content_id"`
	HomeHeroTitle        string    `gorm:"column:home_hero_title;type:text;not null" json:"home_hero_title"`
	HomeHeroSubtitle     string    `gorm:"column:home_hero_subtitle;type:text;not null;default:''" json:"home_hero_subtitle"`
	HomeMissionText      string    `gorm:"column:home_mission_text;type:text;not null;default:''" json:"home_mission_text"`
	HomeVisionText       string    `gorm:"column:home_vision_text;type:text;not null;default:''" json:"home_vision_text"`
	HomeSlogan           string    `gorm:"column:home_slogan;type:text;not null;default:''" json:"home_slogan"`
	HomeHeroImageURL     *string   `gorm:"column:home_hero_image_url;type:text" json:"home_hero_image_url"`
	HomeChairpersonEmail *string   `gorm:"column:home_chairperson_email;type:varchar(255)" json:"home_chairperson_email"`
	HomeUpdatedAt        time.Time `gorm:"column:home_updated_at;autoUpdateTime" json:"home_updated_at"`
}

func (HomeContentModel) TableName() string {
	return "home_content"
}

type HomeContentDetails struct {
	HeroTitle        string
	HeroSubtitle     string
	MissionText      string
	VisionText       string
	Slogan           string
	HeroImageURL     *string
	ChairpersonEmail *string
}
