package route

import (
	"github.com/gofiber/fiber/v2"

	"basamu_backend/internals/features/users/profiles/controller"
	helper "basamu_backend/internals/helpers"
	"basamu_backend/internals/helpers/inflight"
	"basamu_backend/internals/middlewares"
	"basamu_backend/internals/middlewares/logger"
)

// ProfileRoutes mounts under the signed-in group (/api/u).
func ProfileRoutes(user fiber.Router, ctrl *controller.ProfileController, guard *inflight.Guard) {
	p := user.Group("/profile")
	p.Get("/", ctrl.Get)
	p.Put("/", guard.Middleware("profile:update", helper.OptionalUserID), ctrl.Update)
	p.Post("/avatar", logger.Deadline(logger.UploadTimeout), middlewares.UploadRateLimiter(), guard.Middleware("profile:avatar", helper.OptionalUserID), ctrl.UploadAvatar)
}
