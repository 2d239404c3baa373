package route

import (
	"github.com/gofiber/fiber/v2"

	"basamu_backend/internals/features/users/auth/controller"
	"basamu_backend/internals/features/users/auth/service"
	rateLimiter "basamu_backend/internals/middlewares"
	authMw "basamu_backend/internals/middlewares/auth"
)

// AuthRoutes mounts the session provider under /api/auth.
func AuthRoutes(app fiber.Router, ctrl *controller.AuthController, sessions *service.Provider) {
	baseAuth := app.Group("/api/auth")

	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), ctrl.Register)
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), ctrl.Login)
	baseAuth.Post("/google", rateLimiter.LoginRateLimiter(), ctrl.LoginGoogle)
	baseAuth.Post("/refresh-token", ctrl.RefreshToken)
	baseAuth.Post("/logout", ctrl.Logout)
	baseAuth.Get("/session", authMw.OptionalAuth(sessions), ctrl.Session)
}

// UserAuthRoutes mounts the signed-in user's session endpoints on the /api/u group.
func UserAuthRoutes(user fiber.Router, ctrl *controller.AuthController) {
	user.Get("/session", ctrl.Me)
	user.Post("/change-password", ctrl.ChangePassword)
	user.Get("/me/admin", ctrl.AdminStatus)
}
