package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the app-wide fiber error handler; it keeps every error in the
// standard envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	return JsonError(c, fiber.StatusInternalServerError, "")
}
