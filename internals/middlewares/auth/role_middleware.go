package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"basamu_backend/internals/constants"
	helper "basamu_backend/internals/helpers"
)

type AdminChecker interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

// RequireAdmin runs the admin check on every request. A failed lookup is answered
// like a missing role.
func RequireAdmin(gate AdminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		ok, err := gate.IsAdmin(c.UserContext(), userID)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID.String()).Str("path", c.Path()).Msg("admin check failed")
			return helper.JsonError(c, fiber.StatusForbidden, constants.ErrVerifyAdminAccess)
		}
		if !ok {
			return helper.JsonError(c, fiber.StatusForbidden, constants.ErrNotAdmin)
		}
		return c.Next()
	}
}

// CanEdit is the inline-edit flag for public views: true only for a confirmed admin.
func CanEdit(c *fiber.Ctx, gate AdminChecker) bool {
	userID := helper.OptionalUserID(c)
	if userID == uuid.Nil {
		return false
	}
	ok, err := gate.IsAdmin(c.UserContext(), userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("inline edit check failed")
		return false
	}
	return ok
}
