package route

import (
	"github.com/gofiber/fiber/v2"

	"basamu_backend/internals/features/content/home/controller"
	helper "basamu_backend/internals/helpers"
	"basamu_backend/internals/helpers/inflight"
)

func HomeAdminRoutes(admin fiber.Router, ctrl *controller.HomeContentController, guard *inflight.Guard) {
	admin.Get("/home-content", ctrl.Get)
	admin.Put("/home-content/:id", guard.Middleware("home-content:update", helper.OptionalUserID), ctrl.Update)
}

func HomePublicRoutes(public fiber.Router, ctrl *controller.HomeContentController) {
	public.Get("/home", ctrl.Page)
}
