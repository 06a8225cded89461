package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"go.uber.org/zap"

	"github.com/artem13815/cvstudio/api/http/handlers"
)

// NewApp builds the Fiber app with the error handler, panic recovery and
// request logging. bodyLimit bounds every request body, uploads included.
func NewApp(log *zap.Logger, bodyLimit int) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "cvstudio",
		BodyLimit:    bodyLimit,
		ErrorHandler: handlers.ErrorHandler(log),
	})
	app.Use(handlers.RequestLogger(log))
	app.Use(recover.New())
	return app
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, cvs *handlers.CVHandler, export *handlers.ExportHandler, health *handlers.HealthHandler) {
	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", health.Health)
	api.Get("/ready", health.Ready)

	api.Post("/parse-cv", cvs.ParseCV)
	api.Post("/save-cv", cvs.SaveCV)
	api.Get("/cv-list", cvs.ListCVs)
	api.Get("/cv/:id", cvs.GetCV)

	api.Post("/export-pdf", export.ExportPDF)
	api.Post("/preview", export.Preview)
	api.Get("/templates", export.Templates)

	app.Get("/swagger/*", swagger.HandlerDefault)
}
