package api

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config controls the HTTP surface.
type Config struct {
	CORSOrigins string
}

// NewApp builds the Fiber app with all middleware and routes wired.
func NewApp(h *Handlers, config Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "LocalPulse API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "UTC",
	}))
	origins := config.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, " + AdminSecretHeader,
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	setupRoutes(app, h)
	return app
}

func setupRoutes(app *fiber.App, h *Handlers) {
	app.Get("/health", h.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")

	events := v1.Group("/events")
	events.Get("/", h.ListEvents)
	events.Post("/score", h.ScoreEvents)
	events.Get("/:id", h.GetEvent)
	events.Post("/:id/save", h.SaveEvent)
	events.Delete("/:id/save", h.UnsaveEvent)

	v1.Get("/saved", h.ListSaved)

	reviews := v1.Group("/reviews")
	reviews.Post("/", h.SubmitReview)
	reviews.Get("/", h.ListReviews)

	admin := v1.Group("/admin", h.RequireAdmin)
	admin.Get("/drafts", h.ListDrafts)
	admin.Post("/events", h.SubmitDraft)
	admin.Post("/extract", h.ExtractDrafts)
	admin.Post("/drafts/:id/approve", h.ApproveDraft)
	admin.Post("/drafts/:id/reject", h.RejectDraft)
	admin.Delete("/drafts/:id", h.DeleteDraft)
	admin.Get("/sources", h.ListSources)
	admin.Post("/sources/:key/scrape", h.ScrapeSource)
}
