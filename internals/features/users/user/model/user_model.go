package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserModel is an account that can hold a session.
type UserModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  *string        `gorm:"column:password" json:"-"`
	GoogleID  *string        `gorm:"size:255;uniqueIndex" json:"google_id,omitempty"`
	Metadata  datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"metadata"`
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// UserMetadata is the free-form part of a session (names shown in the navbar).
type UserMetadata struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

func NewMetadata(first, last string) datatypes.JSON {
	b, _ := json.Marshal(UserMetadata{FirstName: strings.TrimSpace(first), LastName: strings.TrimSpace(last)})
	return datatypes.JSON(b)
}

// Meta decodes Metadata; malformed or empty metadata yields the zero value.
func (u UserModel) Meta() UserMetadata {
	var m UserMetadata
	if len(u.Metadata) == 0 {
		return m
	}
	_ = json.Unmarshal(u.Metadata, &m)
	return m
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
