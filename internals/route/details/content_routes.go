package details

import (
	"github.com/gofiber/fiber/v2"

	eventController "basamu_backend/internals/features/content/events/controller"
	eventRepo "basamu_backend/internals/features/content/events/repository"
	eventRoute "basamu_backend/internals/features/content/events/route"
	executiveController "basamu_backend/internals/features/content/executives/controller"
	executiveRepo "basamu_backend/internals/features/content/executives/repository"
	executiveRoute "basamu_backend/internals/features/content/executives/route"
	galleryController "basamu_backend/internals/features/content/gallery/controller"
	galleryRepo "basamu_backend/internals/features/content/gallery/repository"
	galleryRoute "basamu_backend/internals/features/content/gallery/route"
	galleryService "basamu_backend/internals/features/content/gallery/service"
	homeController "basamu_backend/internals/features/content/home/controller"
	homeRepo "basamu_backend/internals/features/content/home/repository"
	homeRoute "basamu_backend/internals/features/content/home/route"
	homeService "basamu_backend/internals/features/content/home/service"
	uploadController "basamu_backend/internals/features/content/uploads/controller"
	uploadRoute "basamu_backend/internals/features/content/uploads/route"
)

type contentControllers struct {
	executives *executiveController.ExecutiveController
	events     *eventController.EventController
	gallery    *galleryController.CulturalImageController
	home       *homeController.HomeContentController
	uploads    *uploadController.UploadController
}

func newContentControllers(d Deps) contentControllers {
	images := galleryRepo.New(d.DB)
	gallery := galleryService.NewGallery(images, d.Workflow.Store(), d.Metrics.ObserveBlobDelete)
	return contentControllers{
		executives: executiveController.NewExecutiveController(executiveRepo.New(d.DB), d.Gate),
		events:     eventController.NewEventController(eventRepo.New(d.DB), d.Gate),
		gallery:    galleryController.NewCulturalImageController(images, gallery),
		home:       homeController.NewHomeContentController(homeService.NewHome(homeRepo.New(d.DB), images)),
		uploads:    uploadController.NewUploadController(d.Workflow),
	}
}

// ContentRoutes mounts the read-only pages on public and the dashboard on admin.
func ContentRoutes(public, admin fiber.Router, d Deps) {
	cc := newContentControllers(d)

	homeRoute.HomePublicRoutes(public, cc.home)
	executiveRoute.ExecutivePublicRoutes(public, cc.executives)
	eventRoute.EventPublicRoutes(public, cc.events)
	galleryRoute.GalleryPublicRoutes(public, cc.gallery)

	homeRoute.HomeAdminRoutes(admin, cc.home, d.Guard)
	executiveRoute.ExecutiveAdminRoutes(admin, cc.executives, d.Guard)
	eventRoute.EventAdminRoutes(admin, cc.events, d.Guard)
	galleryRoute.GalleryAdminRoutes(admin, cc.gallery, d.Guard)
	uploadRoute.UploadAdminRoutes(admin, cc.uploads)
}
