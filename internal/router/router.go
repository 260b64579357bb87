package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/mathieu-neron/tubedash/internal/handler"
	"github.com/mathieu-neron/tubedash/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Health  *handler.HealthHandler
	Stats   *handler.StatsHandler
	Chart   *handler.ChartHandler
	Channel *handler.ChannelHandler
	Video   *handler.VideoHandler
	Export  *handler.ExportHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
// A nil limiter disables rate limiting.
func Setup(app *fiber.App, h *Handlers, corsOrigins string, limiter *middleware.RateLimiter) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestID())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics sit outside the rate limit
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")
	if limiter != nil {
		api.Use(limiter.Handler())
	}

	api.Get("/dataset", h.Stats.GetDataset)
	api.Get("/filters", h.Stats.GetFilters)
	api.Get("/kpis", h.Stats.GetKPIs)

	api.Get("/charts", h.Chart.List)
	api.Get("/charts/:name", h.Chart.Get)

	api.Get("/channels", h.Channel.List)
	api.Get("/videos", h.Video.List)
	api.Get("/export", h.Export.Export)
}
