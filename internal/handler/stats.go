package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/tubedash/internal/service"
)

type StatsHandler struct {
	svc *service.DashboardService
}

func NewStatsHandler(svc *service.DashboardService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetKPIs handles GET /api/kpis
func (h *StatsHandler) GetKPIs(c fiber.Ctx) error {
	spec, err := filterSpec(c, h.svc)
	if err != nil {
		return respondError(c, err, "Failed to compute totals")
	}

	kpis, err := h.svc.KPIs(spec)
	if err != nil {
		return respondError(c, err, "Failed to compute totals")
	}

	return c.JSON(kpis)
}

// GetDataset handles GET /api/dataset
func (h *StatsHandler) GetDataset(c fiber.Ctx) error {
	return c.JSON(h.svc.Dataset())
}

// GetFilters handles GET /api/filters
func (h *StatsHandler) GetFilters(c fiber.Ctx) error {
	return c.JSON(h.svc.Options())
}
