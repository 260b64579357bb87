package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/tubedash/internal/service"
)

type ChannelHandler struct {
	svc *service.DashboardService
}

func NewChannelHandler(svc *service.DashboardService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// List handles GET /api/channels
func (h *ChannelHandler) List(c fiber.Ctx) error {
	spec, err := filterSpec(c, h.svc)
	if err != nil {
		return respondError(c, err, "Failed to summarize channels")
	}

	channels, err := h.svc.Channels(spec)
	if err != nil {
		return respondError(c, err, "Failed to summarize channels")
	}

	return c.JSON(channels)
}
