package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const LocalUserID = "user_id"

// GetUserIDFromToken reads c.Locals("user_id") set by the auth middleware.
// 401 when not signed in, 400 when the stored value is malformed.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocalUserID)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Not signed in")
	}

	var s string
	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Not signed in")
		}
		return t, nil
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user id in token")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Not signed in")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user id in token")
	}
	return id, nil
}

// OptionalUserID is GetUserIDFromToken for routes where auth is optional.
func OptionalUserID(c *fiber.Ctx) uuid.UUID {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil
	}
	return id
}
