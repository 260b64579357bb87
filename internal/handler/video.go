package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/tubedash/internal/service"
)

type VideoHandler struct {
	svc *service.DashboardService
}

func NewVideoHandler(svc *service.DashboardService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// List handles GET /api/videos?sort=viewCount&order=desc&top=10
func (h *VideoHandler) List(c fiber.Ctx) error {
	spec, err := filterSpec(c, h.svc)
	if err != nil {
		return respondError(c, err, "Failed to list videos")
	}
	opts, err := chartOptions(c)
	if err != nil {
		return respondError(c, err, "Failed to list videos")
	}

	page, err := h.svc.Videos(spec, opts)
	if err != nil {
		return respondError(c, err, "Failed to list videos")
	}

	return c.JSON(page)
}
