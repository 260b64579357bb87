package router

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieu-neron/tubedash/internal/handler"
	"github.com/mathieu-neron/tubedash/internal/middleware"
	"github.com/mathieu-neron/tubedash/internal/model"
	"github.com/mathieu-neron/tubedash/internal/service"
)

func newApp(limiter *middleware.RateLimiter) *fiber.App {
	views := int64(42)
	ds := model.NewDataset([]model.Video{{ChannelName: "Alpha", ViewCount: &views}}, "fixture.csv", "fp", 0)
	svc := service.NewDashboardService(ds)

	app := fiber.New()
	Setup(app, &Handlers{
		Health:  handler.NewHealthHandler(ds, nil, "test"),
		Stats:   handler.NewStatsHandler(svc),
		Chart:   handler.NewChartHandler(svc),
		Channel: handler.NewChannelHandler(svc),
		Video:   handler.NewVideoHandler(svc),
		Export:  handler.NewExportHandler(svc),
	}, "*", limiter)
	return app
}

func TestSetup_Routes(t *testing.T) {
	app := newApp(nil)

	for _, path := range []string{
		"/health/live",
		"/health/ready",
		"/metrics",
		"/api/dataset",
		"/api/filters",
		"/api/kpis",
		"/api/charts",
		"/api/charts/views-by-channel",
		"/api/channels",
		"/api/videos",
		"/api/export",
	} {
		t.Run(path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", path, nil))
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

func TestSetup_RequestID(t *testing.T) {
	app := newApp(nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/kpis", nil))
	require.NoError(t, err)
	_, err = uuid.Parse(resp.Header.Get(middleware.RequestIDHeader))
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/kpis", nil)
	id := uuid.NewString()
	req.Header.Set(middleware.RequestIDHeader, id)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, id, resp.Header.Get(middleware.RequestIDHeader))
}

func TestSetup_RateLimitSkipsProbes(t *testing.T) {
	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Max:    1,
		Window: time.Minute,
	})
	app := newApp(limiter)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/kpis", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/kpis", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "RATE_LIMITED")

	for i := 0; i < 3; i++ {
		resp, err = app.Test(httptest.NewRequest("GET", "/health/live", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	}
}

func TestSetup_UnknownRoute(t *testing.T) {
	app := newApp(nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
