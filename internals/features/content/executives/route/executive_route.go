package route

import (
	"github.com/gofiber/fiber/v2"

	"basamu_backend/internals/features/content/executives/controller"
	helper "basamu_backend/internals/helpers"
	"basamu_backend/internals/helpers/inflight"
)

// ExecutiveAdminRoutes expects admin to already carry auth + RequireAdmin.
func ExecutiveAdminRoutes(admin fiber.Router, ctrl *controller.ExecutiveController, guard *inflight.Guard) {
	g := admin.Group("/executives")
	g.Post("/", guard.Middleware("executive:create", helper.OptionalUserID), ctrl.Create)
	g.Patch("/:id", guard.Middleware("executive:update", helper.OptionalUserID), ctrl.UpdateDetails)
	g.Patch("/:id/photo", guard.Middleware("executive:photo", helper.OptionalUserID), ctrl.ReplacePhoto)
}

func ExecutivePublicRoutes(public fiber.Router, ctrl *controller.ExecutiveController) {
	public.Get("/executives", ctrl.List)
}
