package route

import (
	"github.com/gofiber/fiber/v2"

	"basamu_backend/internals/features/content/events/controller"
	helper "basamu_backend/internals/helpers"
	"basamu_backend/internals/helpers/inflight"
)

func EventAdminRoutes(admin fiber.Router, ctrl *controller.EventController, guard *inflight.Guard) {
	g := admin.Group("/events")
	g.Post("/", guard.Middleware("event:create", helper.OptionalUserID), ctrl.Create)
	g.Patch("/:id", guard.Middleware("event:update", helper.OptionalUserID), ctrl.Update)
}

func EventPublicRoutes(public fiber.Router, ctrl *controller.EventController) {
	public.Get("/events", ctrl.List)
}
