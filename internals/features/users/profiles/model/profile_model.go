package model

import (
	"time"

	"github.com/google/uuid"
)

type ProfileModel struct {
	ProfileID        uuid.UUID `gorm:"column:profile_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"profile_id"`
	ProfileUserID    uuid.UUID `gorm:"column:profile_user_id;type:uuid;not null;uniqueIndex" json:"profile_user_id"`
	ProfileFirstName string    `gorm:"column:profile_first_name;type:varchar(100);not null;default:''" json:"profile_first_name"`
	ProfileLastName  string    `gorm:"column:profile_last_name;type:varchar(100);not null;default:''" json:"profile_last_name"`
	ProfileAvatarURL *string   `gorm:"column:profile_avatar_url;type:text" json:"profile_avatar_url"`
	ProfileCreatedAt time.Time `gorm:"column:profile_created_at;autoCreateTime" json:"profile_created_at"`
	ProfileUpdatedAt time.Time `gorm:"column:profile_updated_at;autoUpdateTime" json:"profile_updated_at"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}
