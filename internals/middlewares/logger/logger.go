package logger

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog/log"
)

const (
	HeaderRequestID = "X-Request-ID"
	LocalRequestID  = "request_id"

	localBaseContext = "base_context"
)

const (
	// DefaultTimeout bounds every request's context.
	DefaultTimeout = 15 * time.Second
	// UploadTimeout is for routes that push a file to the blob store (50 MB videos).
	UploadTimeout = 60 * time.Second
)

// LoggerMiddleware tags each request with an id, bounds its context and logs it.
func LoggerMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = utils.UUIDv4()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(LocalRequestID, rid)

		c.Locals(localBaseContext, c.UserContext())
		if timeout > 0 {
			ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
			defer cancel()
			c.SetUserContext(ctx)
		}

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		evt := log.Info()
		switch {
		case status >= 500:
			evt = log.Error()
		case status >= 400:
			evt = log.Warn()
		}
		evt = evt.
			Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP())
		if uid, ok := c.Locals("user_id").(string); ok && uid != "" {
			evt = evt.Str("user_id", uid)
		}
		evt.Msg("request")
		return err
	}
}

// Deadline swaps the deadline set by LoggerMiddleware for d. The new context
// derives from the request's context before that deadline, so d may be longer.
func Deadline(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		base, ok := c.Locals(localBaseContext).(context.Context)
		if !ok {
			base = c.UserContext()
		}
		ctx, cancel := context.WithTimeout(base, d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
