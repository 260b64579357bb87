package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/tubedash/internal/middleware"
	"github.com/mathieu-neron/tubedash/internal/service"
)

type ChartHandler struct {
	svc *service.DashboardService
}

func NewChartHandler(svc *service.DashboardService) *ChartHandler {
	return &ChartHandler{svc: svc}
}

// List handles GET /api/charts
func (h *ChartHandler) List(c fiber.Ctx) error {
	return c.JSON(service.Catalogue())
}

// Get handles GET /api/charts/:name
func (h *ChartHandler) Get(c fiber.Ctx) error {
	name, msg := middleware.ValidateChartName(c.Params("name"))
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", msg)
	}

	spec, err := filterSpec(c, h.svc)
	if err != nil {
		return respondError(c, err, "Failed to build chart")
	}
	opts, err := chartOptions(c)
	if err != nil {
		return respondError(c, err, "Failed to build chart")
	}

	chart, err := h.svc.Chart(name, spec, opts)
	if err != nil {
		return respondError(c, err, "Failed to build chart")
	}

	Metrics.ChartsRendered.WithLabelValues(chart.Name).Inc()
	return c.JSON(chart)
}
