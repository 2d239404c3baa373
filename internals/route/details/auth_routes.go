package details

import (
	"github.com/gofiber/fiber/v2"

	authController "basamu_backend/internals/features/users/auth/controller"
	authRoute "basamu_backend/internals/features/users/auth/route"
)

func newAuthController(d Deps) *authController.AuthController {
	return authController.NewAuthController(d.Provider, d.Gate, d.Config.IsProduction())
}

func AuthRoutes(app *fiber.App, d Deps) {
	authRoute.AuthRoutes(app, newAuthController(d), d.Provider)
}
