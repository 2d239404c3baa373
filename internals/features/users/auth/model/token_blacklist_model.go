package model

import (
	"time"
)

// TokenBlacklist holds signed-out access tokens until they would have expired anyway.
type TokenBlacklist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"type:text;not null;uniqueIndex" json:"token"`
	ExpiredAt time.Time `gorm:"index" json:"expired_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
