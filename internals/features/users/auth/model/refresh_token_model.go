package model

import (
	"time"

	"github.com/google/uuid"
)

type RefreshTokenModel struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`

	// HMAC of the token, never the token itself
	TokenHash string `gorm:"column:token_hash;size:64;not null;uniqueIndex" json:"-"`

	ExpiresAt time.Time  `gorm:"column:expires_at;type:timestamptz;not null" json:"expires_at"`
	RevokedAt *time.Time `gorm:"column:revoked_at;type:timestamptz" json:"revoked_at,omitempty"`

	UserAgent *string `gorm:"column:user_agent" json:"user_agent,omitempty"`
	IP        *string `gorm:"column:ip" json:"ip,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
