package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"

	"github.com/mathieu-neron/tubedash/internal/model"
)

type HealthHandler struct {
	ds      *model.Dataset
	rdb     *redis.Client
	version string
	startAt time.Time
}

func NewHealthHandler(ds *model.Dataset, rdb *redis.Client, version string) *HealthHandler {
	return &HealthHandler{
		ds:      ds,
		rdb:     rdb,
		version: version,
		startAt: time.Now(),
	}
}

// Live handles GET /health/live (liveness probe).
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready (readiness probe with dependency checks).
// Redis only degrades the status: rate limiting falls back to memory.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	checks := make(fiber.Map)
	overallStatus := "healthy"

	checks["dataset"] = checkDataset(h.ds)
	if h.ds == nil {
		overallStatus = "unavailable"
	}

	checks["redis"] = checkRedis(ctx, h.rdb)
	if redisCheck, ok := checks["redis"].(fiber.Map); ok {
		if redisCheck["status"] == "down" && overallStatus == "healthy" {
			overallStatus = "degraded"
		}
	}

	resp := fiber.Map{
		"status":         overallStatus,
		"checks":         checks,
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
		"version":        h.version,
	}

	status := fiber.StatusOK
	if overallStatus == "unavailable" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(resp)
}

func checkDataset(ds *model.Dataset) fiber.Map {
	if ds == nil {
		return fiber.Map{"status": "down"}
	}
	return fiber.Map{
		"status":      "up",
		"rows":        ds.Len(),
		"fingerprint": ds.Fingerprint(),
		"loaded_at":   ds.LoadedAt().Format(time.RFC3339),
	}
}

func checkRedis(ctx context.Context, rdb *redis.Client) fiber.Map {
	if rdb == nil {
		return fiber.Map{
			"status": "disabled",
		}
	}

	start := time.Now()
	err := rdb.Ping(ctx).Err()
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}
