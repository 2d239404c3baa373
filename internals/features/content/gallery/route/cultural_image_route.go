package route

import (
	"github.com/gofiber/fiber/v2"

	"basamu_backend/internals/features/content/gallery/controller"
	helper "basamu_backend/internals/helpers"
	"basamu_backend/internals/helpers/inflight"
)

func GalleryAdminRoutes(admin fiber.Router, ctrl *controller.CulturalImageController, guard *inflight.Guard) {
	g := admin.Group("/cultural-images")
	g.Get("/", ctrl.List)
	g.Post("/", guard.Middleware("cultural-image:create", helper.OptionalUserID), ctrl.Create)
	g.Delete("/:id", guard.Middleware("cultural-image:delete", helper.OptionalUserID), ctrl.Delete)
}

func GalleryPublicRoutes(public fiber.Router, ctrl *controller.CulturalImageController) {
	public.Get("/gallery", ctrl.List)
}
