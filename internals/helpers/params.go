package helper

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParamUUID parses a path parameter as a UUID; 400 when it is not one.
func ParamUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

// NullIfBlank trims s and returns nil when nothing is left.
func NullIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// ParseOptionalDate accepts RFC3339, datetime-local and plain dates. Blank gives nil.
// The wall clock as entered is kept and labelled UTC, so an offset never moves the
// date into another day or year.
func ParseOptionalDate(s *string) (*time.Time, error) {
	v := NullIfBlank(s)
	if v == nil {
		return nil, nil
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, *v)
		if err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
			return &t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
