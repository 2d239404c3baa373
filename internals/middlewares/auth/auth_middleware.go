// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	authService "basamu_backend/internals/features/users/auth/service"
	helper "basamu_backend/internals/helpers"
)

const (
	LocalSession     = "session"
	LocalAccessToken = "access_token"
)

type SessionResolver interface {
	CurrentSession(ctx context.Context, accessToken string) (authService.Session, error)
}

// ExtractBearerToken reads "Authorization: Bearer" and falls back to the access_token cookie.
func ExtractBearerToken(c *fiber.Ctx) string {
	if h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}

func AuthMiddleware(sessions SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ExtractBearerToken(c)
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing token")
		}

		sess, err := sessions.CurrentSession(c.UserContext(), token)
		switch {
		case err == nil:
		case errors.Is(err, authService.ErrNoSession):
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid or expired session")
		case errors.Is(err, authService.ErrAccountDisabled):
			return fiber.NewError(fiber.StatusForbidden, "Your account has been disabled")
		default:
			log.Error().Err(err).Str("path", c.Path()).Msg("session lookup failed")
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}

		storeSession(c, sess, token)
		return c.Next()
	}
}

// OptionalAuth attaches the session when a valid token is presented and otherwise
// continues anonymously.
func OptionalAuth(sessions SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ExtractBearerToken(c)
		if token == "" {
			return c.Next()
		}
		sess, err := sessions.CurrentSession(c.UserContext(), token)
		if err != nil {
			if !errors.Is(err, authService.ErrNoSession) {
				log.Warn().Err(err).Str("path", c.Path()).Msg("optional auth: continuing anonymously")
			}
			return c.Next()
		}
		storeSession(c, sess, token)
		return c.Next()
	}
}

func storeSession(c *fiber.Ctx, sess authService.Session, token string) {
	c.Locals(helper.LocalUserID, sess.UserID.String())
	c.Locals(LocalSession, sess)
	c.Locals(LocalAccessToken, token)
}

// SessionFrom returns the session stored by AuthMiddleware/OptionalAuth.
func SessionFrom(c *fiber.Ctx) (authService.Session, bool) {
	sess, ok := c.Locals(LocalSession).(authService.Session)
	return sess, ok
}
