package route

import (
	"github.com/gofiber/fiber/v2"

	"basamu_backend/internals/features/content/uploads/controller"
	"basamu_backend/internals/middlewares"
	"basamu_backend/internals/middlewares/logger"
)

func UploadAdminRoutes(admin fiber.Router, ctrl *controller.UploadController) {
	admin.Post("/uploads/:slot", logger.Deadline(logger.UploadTimeout), middlewares.UploadRateLimiter(), ctrl.Upload)
}
