package upload

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Rejection maps a file the workflow refused to its HTTP status. ok is false for
// anything else (store failures), which callers answer as 502.
func Rejection(err error) (status int, ok bool) {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		return fiber.StatusUnsupportedMediaType, true
	case errors.Is(err, ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge, true
	case errors.Is(err, ErrEmptyFile):
		return fiber.StatusBadRequest, true
	default:
		return fiber.StatusBadGateway, false
	}
}
