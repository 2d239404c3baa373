package middlewares

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

// RecoveryMiddleware turns a panic into a 500 and logs the stack.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Error().
				Str("panic", fmt.Sprint(e)).
				Str("path", c.Path()).
				Bytes("stack", debug.Stack()).
				Msg("recovered from panic")
		},
	})
}
