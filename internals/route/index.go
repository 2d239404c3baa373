package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	authMw "basamu_backend/internals/middlewares/auth"
	routeDetails "basamu_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, d routeDetails.Deps) {
	startTime = time.Now()

	BaseRoutes(app, d)

	// ===================== AUTH =====================
	log.Info().Msg("mounting auth routes")
	routeDetails.AuthRoutes(app, d)

	// ===================== GROUPS =====================

	// PUBLIC: session optional, only used for the inline-edit flag
	public := app.Group("/api/public", authMw.OptionalAuth(d.Provider))

	// USER: any signed-in account
	user := app.Group("/api/u", authMw.AuthMiddleware(d.Provider))

	// ADMIN: role checked against user_roles on every request
	admin := app.Group("/api/a", authMw.AuthMiddleware(d.Provider), authMw.RequireAdmin(d.Gate))

	// ===================== MOUNT =====================
	log.Info().Msg("mounting user routes")
	routeDetails.UserRoutes(user, d)

	log.Info().Msg("mounting content routes")
	routeDetails.ContentRoutes(public, admin, d)
}
