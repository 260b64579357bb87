package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieu-neron/tubedash/internal/model"
	"github.com/mathieu-neron/tubedash/internal/service"
)

func i64(n int64) *int64 { return &n }

func testDataset() *model.Dataset {
	mon := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	day, month := model.DayName(mon), model.MonthName(mon)
	desc := "gopher news"
	return model.NewDataset([]model.Video{
		{ChannelName: "Alpha", Description: &desc, ViewCount: i64(100), LikeCount: i64(10), CommentCount: i64(1), DurationSecs: i64(90), PublishedAt: &mon, Day: &day, Month: &month},
		{ChannelName: "Beta", ViewCount: i64(70000), LikeCount: i64(700), CommentCount: i64(70), DurationSecs: i64(1300)},
	}, "fixture.csv", "f1ng3rpr1nt", 1)
}

func newTestApp() *fiber.App {
	ds := testDataset()
	svc := service.NewDashboardService(ds)
	stats := NewStatsHandler(svc)
	charts := NewChartHandler(svc)
	health := NewHealthHandler(ds, nil, "test")

	app := fiber.New()
	app.Get("/health/live", health.Live)
	app.Get("/health/ready", health.Ready)
	app.Get("/api/dataset", stats.GetDataset)
	app.Get("/api/filters", stats.GetFilters)
	app.Get("/api/kpis", stats.GetKPIs)
	app.Get("/api/charts", charts.List)
	app.Get("/api/charts/:name", charts.Get)
	app.Get("/api/channels", NewChannelHandler(svc).List)
	app.Get("/api/videos", NewVideoHandler(svc).List)
	app.Get("/api/export", NewExportHandler(svc).Export)
	return app
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Param   string `json:"param"`
	} `json:"error"`
}

func TestKPIs(t *testing.T) {
	app := newTestApp()

	resp, body := get(t, app, "/api/kpis")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var all model.KPIResponse
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Equal(t, model.KPIResponse{TotalViews: 70100, TotalLikes: 710, TotalComments: 71, TotalVideos: 2}, all)

	resp, body = get(t, app, "/api/kpis?channel=Beta&views=50001%2B")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var beta model.KPIResponse
	require.NoError(t, json.Unmarshal(body, &beta))
	assert.Equal(t, 1, beta.TotalVideos)
	assert.Equal(t, int64(70000), beta.TotalViews)
}

func TestKPIs_InvalidFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		param string
	}{
		{"unknown bucket", "?duration=5-10", "duration"},
		{"unknown month", "?month=Smarch", "month"},
		{"unknown channel", "?channel=Nobody", "channel"},
		{"bad word limit", "?words=Top%20many", "words"},
	}
	app := newTestApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, app, "/api/kpis"+tt.query)
			require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			var e errorBody
			require.NoError(t, json.Unmarshal(body, &e))
			assert.Equal(t, "INVALID_FILTER", e.Error.Code)
			assert.Equal(t, tt.param, e.Error.Param)
		})
	}
}

func TestChart(t *testing.T) {
	resp, body := get(t, newTestApp(), "/api/charts/views-by-channel")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var chart struct {
		Name  string `json:"name"`
		Kind  string `json:"kind"`
		Table struct {
			Columns []string         `json:"columns"`
			Rows    []map[string]any `json:"rows"`
		} `json:"table"`
		Roles model.ChartRoles `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(body, &chart))
	assert.Equal(t, "views-by-channel", chart.Name)
	assert.Equal(t, "bar", chart.Kind)
	assert.Equal(t, []string{"channelName", "viewCount"}, chart.Table.Columns)
	require.Len(t, chart.Table.Rows, 2)
	assert.Equal(t, "Alpha", chart.Table.Rows[0]["channelName"])
	assert.Equal(t, float64(100), chart.Table.Rows[0]["viewCount"])
	assert.Equal(t, "channelName", chart.Roles.X)
}

func TestChart_UndefinedCorrelationIsNull(t *testing.T) {
	resp, body := get(t, newTestApp(), "/api/charts/correlation?channel=Alpha")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var chart struct {
		Table struct {
			Rows []map[string]any `json:"rows"`
		} `json:"table"`
	}
	require.NoError(t, json.Unmarshal(body, &chart))
	require.Len(t, chart.Table.Rows, 4)
	v, present := chart.Table.Rows[0]["viewCount"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestChart_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
		code   string
		param  string
	}{
		{"unknown chart", "/api/charts/pie-chart", fiber.StatusNotFound, "NOT_FOUND", ""},
		{"malformed chart name", "/api/charts/pie_chart", fiber.StatusNotFound, "NOT_FOUND", ""},
		{"non-numeric top", "/api/charts/top-videos?top=ten", fiber.StatusBadRequest, "INVALID_FILTER", "top"},
		{"negative bins", "/api/charts/duration-histogram?bins=-2", fiber.StatusBadRequest, "INVALID_FILTER", "bins"},
		{"unknown metric", "/api/charts/correlation?metric=dislikes", fiber.StatusBadRequest, "INVALID_FILTER", "metric"},
		{"unknown day", "/api/charts/views-by-day?day=Caturday", fiber.StatusBadRequest, "INVALID_FILTER", "day"},
	}
	app := newTestApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, app, tt.target)
			require.Equal(t, tt.status, resp.StatusCode)
			var e errorBody
			require.NoError(t, json.Unmarshal(body, &e))
			assert.Equal(t, tt.code, e.Error.Code)
			assert.Equal(t, tt.param, e.Error.Param)
		})
	}
}

func TestChartCatalogue(t *testing.T) {
	resp, body := get(t, newTestApp(), "/api/charts")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cat []service.ChartInfo
	require.NoError(t, json.Unmarshal(body, &cat))
	assert.Len(t, cat, len(service.ChartNames()))
}

func TestDatasetAndFilters(t *testing.T) {
	app := newTestApp()

	resp, body := get(t, app, "/api/dataset")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var ds model.DatasetResponse
	require.NoError(t, json.Unmarshal(body, &ds))
	assert.Equal(t, "fixture.csv", ds.Source)
	assert.Equal(t, 2, ds.Rows)
	assert.Equal(t, 1, ds.Warnings)

	resp, body = get(t, app, "/api/filters")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var opts model.FilterOptions
	require.NoError(t, json.Unmarshal(body, &opts))
	assert.Equal(t, []string{"Alpha", "Beta"}, opts.Channels)
	assert.Contains(t, opts.Buckets, "durationSecs")
}

func TestChannelsAndVideos(t *testing.T) {
	app := newTestApp()

	resp, body := get(t, app, "/api/channels")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var channels []model.ChannelSummary
	require.NoError(t, json.Unmarshal(body, &channels))
	require.Len(t, channels, 2)
	assert.Equal(t, "Beta", channels[0].ChannelName)

	resp, body = get(t, app, "/api/videos?top=1&sort=likeCount&order=asc")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var page service.VideoPage
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Videos, 1)
	assert.Equal(t, "Alpha", page.Videos[0].ChannelName)
}

func TestExport(t *testing.T) {
	resp, body := get(t, newTestApp(), "/api/export?duration=1201%2B")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Equal(t,
		"channelName,description,viewCount,likeCount,commentCount,durationSecs,publishedAt\n"+
			"Beta,,70000,700,70,1300,\n",
		string(body))
}

func TestHealth(t *testing.T) {
	app := newTestApp()

	resp, _ := get(t, app, "/health/live")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := get(t, app, "/health/ready")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var ready struct {
		Status string                    `json:"status"`
		Checks map[string]map[string]any `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(body, &ready))
	assert.Equal(t, "healthy", ready.Status)
	assert.Equal(t, "up", ready.Checks["dataset"]["status"])
	assert.Equal(t, "disabled", ready.Checks["redis"]["status"])
}

func TestHealth_NoDataset(t *testing.T) {
	app := fiber.New()
	app.Get("/health/ready", NewHealthHandler(nil, nil, "test").Ready)

	resp, _ := get(t, app, "/health/ready")
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestSanitizeEndpoint(t *testing.T) {
	assert.Equal(t, "/api/charts/:name", sanitizeEndpoint("/api/charts/views-by-day"))
	assert.Equal(t, "/api/kpis", sanitizeEndpoint("/api/kpis"))
	assert.Equal(t, "other", sanitizeEndpoint("/wp-admin.php"))
}
