package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	database "basamu_backend/internals/databases"
	"basamu_backend/internals/helpers/storage"
	routeDetails "basamu_backend/internals/route/details"
)

func BaseRoutes(app *fiber.App, d routeDetails.Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("basamu backend is running")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := database.Ping(c.UserContext(), d.DB); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    d.Config.AppEnv,
		})
	})

	app.Get("/metrics", d.Metrics.Handler())

	// STORAGE_DRIVER=memory serves its objects itself so local URLs resolve.
	if mem, ok := d.Workflow.Store().(*storage.MemoryStore); ok {
		app.Get("/storage/v1/object/public/:bucket/*", func(c *fiber.Ctx) error {
			obj, found := mem.Get(c.Params("bucket"), c.Params("*"))
			if !found {
				return fiber.ErrNotFound
			}
			c.Set(fiber.HeaderContentType, obj.ContentType)
			return c.Send(obj.Body)
		})
	}
}
