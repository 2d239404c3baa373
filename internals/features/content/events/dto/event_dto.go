package dto

import (
	"strings"

	"basamu_backend/internals/constants"
	"basamu_backend/internals/features/content/events/model"
	helper "basamu_backend/internals/helpers"
)

type CreateEventRequest struct {
	EventTitle       string  `json:"event_title" validate:"required,max=255"`
	EventDescription string  `json:"event_description" validate:"required"`
	EventDate        *string `json:"event_date"`
	EventMediaLink   *string `json:"event_media_link" validate:"omitempty,url"`
	EventImageURL    *string `json:"event_image_url" validate:"omitempty,url"`
	EventMediaKind   string  `json:"event_media_kind" validate:"omitempty,oneof=image video"`
}

func (r *CreateEventRequest) Normalize() {
	r.EventTitle = strings.TrimSpace(r.EventTitle)
	r.EventDescription = strings.TrimSpace(r.EventDescription)
	r.EventDate = helper.NullIfBlank(r.EventDate)
	r.EventMediaLink = helper.NullIfBlank(r.EventMediaLink)
	r.EventImageURL = helper.NullIfBlank(r.EventImageURL)
	r.EventMediaKind = strings.ToLower(strings.TrimSpace(r.EventMediaKind))
}

// ToModel fails only on an unparsable date. A media URL without an explicit kind
// (older clients) gets one from its extension.
func (r CreateEventRequest) ToModel() (model.EventModel, error) {
	date, err := helper.ParseOptionalDate(r.EventDate)
	if err != nil {
		return model.EventModel{}, err
	}
	m := model.EventModel{
		EventTitle:       r.EventTitle,
		EventDescription: r.EventDescription,
		EventDate:        date,
		EventMediaLink:   r.EventMediaLink,
		EventImageURL:    r.EventImageURL,
	}
	if r.EventImageURL != nil {
		kind := constants.MediaKind(r.EventMediaKind)
		if !kind.Valid() {
			kind = constants.MediaKindFromExt(*r.EventImageURL)
		}
		m.EventMediaKind = &kind
	}
	return m, nil
}

type UpdateEventRequest struct {
	EventTitle       string  `json:"event_title" validate:"required,max=255"`
	EventDescription string  `json:"event_description" validate:"required"`
	EventDate        *string `json:"event_date"`
	EventMediaLink   *string `json:"event_media_link" validate:"omitempty,url"`
}

func (r *UpdateEventRequest) Normalize() {
	r.EventTitle = strings.TrimSpace(r.EventTitle)
	r.EventDescription = strings.TrimSpace(r.EventDescription)
	r.EventDate = helper.NullIfBlank(r.EventDate)
	r.EventMediaLink = helper.NullIfBlank(r.EventMediaLink)
}

func (r UpdateEventRequest) ToDetails() (model.EventDetails, error) {
	date, err := helper.ParseOptionalDate(r.EventDate)
	if err != nil {
		return model.EventDetails{}, err
	}
	return model.EventDetails{
		Title:       r.EventTitle,
		Description: r.EventDescription,
		Date:        date,
		MediaLink:   r.EventMediaLink,
	}, nil
}

type EventListResponse struct {
	Events  []model.EventModel `json:"events"`
	State   string             `json:"state"`
	Total   int                `json:"total"`
	Matched int                `json:"matched"`
	Years   []string           `json:"years"`
	CanEdit bool               `json:"can_edit"`
}
