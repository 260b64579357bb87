package handler

import (
	"bytes"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/tubedash/internal/dataset"
	"github.com/mathieu-neron/tubedash/internal/service"
)

type ExportHandler struct {
	svc *service.DashboardService
}

func NewExportHandler(svc *service.DashboardService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Export handles GET /api/export
// Serves the filtered videos as CSV in the dataset's own column layout.
func (h *ExportHandler) Export(c fiber.Ctx) error {
	spec, err := filterSpec(c, h.svc)
	if err != nil {
		return respondError(c, err, "Failed to export videos")
	}

	videos, err := h.svc.Export(spec)
	if err != nil {
		return respondError(c, err, "Failed to export videos")
	}

	var buf bytes.Buffer
	if err := dataset.WriteCSV(&buf, videos); err != nil {
		return respondError(c, err, "Failed to export videos")
	}

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", "attachment; filename=videos.csv")
	return c.Send(buf.Bytes())
}
