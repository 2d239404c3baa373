package model

import (
	"time"

	"github.com/google/uuid"
)

type CulturalImageModel struct {
	CulturalImageID        uuid.UUID `gorm:"column:cultural_image_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"cultural_image_id"`
	CulturalImageURL       string    `gorm:"column:cultural_image_url;type:text;not null" json:"cultural_image_url"`
	CulturalImageCaption   string    `gorm:"column:cultural_image_caption;type:text;not null" json:"cultural_image_caption"`
	CulturalImageCreatedAt time.Time `gorm:"column:cultural_image_created_at;autoCreateTime;index" json:"cultural_image_created_at"`
}

func (CulturalImageModel) TableName() string {
	return "cultural_images"
}
