package model

import (
	"time"

	"github.com/google/uuid"
)

type ExecutiveModel struct {
	ExecutiveID       uuid.UUID `gorm:"column:executive_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"executive_id"`
	ExecutiveName     string    `gorm:"column:executive_name;type:varchar(150);not null" json:"executive_name"`
	ExecutivePosition string    `gorm:"column:executive_position;type:varchar(150);not null" json:"executive_position"`
	ExecutiveRole     string    `gorm:"column:executive_role;type:text;not null" json:"executive_role"`
	ExecutiveYear     string    `gorm:"column:executive_year;type:varchar(20);not null;index" json:"executive_year"` // e.g. "2025/2026"
	ExecutiveRank     int       `gorm:"column:executive_rank;not null;default:0" json:"executive_rank"`
	ExecutivePhotoURL *string   `gorm:"column:executive_photo_url;type:text" json:"executive_photo_url"`
	ExecutiveEmail    *string   `gorm:"column:executive_email;type:varchar(255)" json:"executive_email"`

	ExecutiveCreatedAt time.Time `gorm:"column:executive_created_at;autoCreateTime" json:"executive_created_at"`
	ExecutiveUpdatedAt time.Time `gorm:"column:executive_updated_at;autoUpdateTime" json:"executive_updated_at"`
}

func (ExecutiveModel) TableName() string {
	return "executives"
}

// ExecutiveDetails is everything the detail-edit action may change.
type ExecutiveDetails struct {
	Name     string
	Position string
	Role     string
	Year     string
	Rank     int
	Email    *string
}
