package model

import (
	"time"

	"github.com/google/uuid"

	"basamu_backend/internals/constants"
)

type EventModel struct {
	EventID          uuid.UUID            `gorm:"column:event_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"event_id"`
	EventTitle       string               `gorm:"column:event_title;type:varchar(255);not null" json:"event_title"`
	EventDescription string               `gorm:"column:event_description;type:text;not null" json:"event_description"`
	EventDate        *time.Time           `gorm:"column:event_date;type:timestamptz;index" json:"event_date"`
	EventMediaLink   *string              `gorm:"column:event_media_link;type:text" json:"event_media_link"`
	EventImageURL    *string              `gorm:"column:event_image_url;type:text" json:"event_image_url"`
	EventMediaKind   *constants.MediaKind `gorm:"column:event_media_kind;type:varchar(10)" json:"event_media_kind"`

	EventCreatedAt time.Time `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`
}

func (EventModel) TableName() string {
	return "events"
}

// EventDetails is what the edit dialog may change. The image is fixed at creation.
type EventDetails struct {
	Title       string
	Description string
	Date        *time.Time
	MediaLink   *string
}
