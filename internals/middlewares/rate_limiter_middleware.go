package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "basamu_backend/internals/helpers"
)

func newLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// GlobalRateLimiter applies to every route.
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(100, time.Minute, "Too many requests. Please try again later.")
}

func LoginRateLimiter() fiber.Handler {
	return newLimiter(5, time.Minute, "Too many sign-in attempts. Please wait a moment.")
}

func RegisterRateLimiter() fiber.Handler {
	return newLimiter(3, 5*time.Minute, "Too many sign-up attempts. Please wait a few minutes.")
}

// UploadRateLimiter keeps a stuck client from flooding the blob store.
func UploadRateLimiter() fiber.Handler {
	return newLimiter(30, time.Minute, "Too many uploads. Please slow down.")
}
