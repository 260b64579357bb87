package handler

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the dashboard backend.
var Metrics = struct {
	ChartsRendered     *prometheus.CounterVec
	ValidationErrors   *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	RequestsInFlight   prometheus.Gauge
	DatasetRows        prometheus.Gauge
	DatasetWarnings    prometheus.Gauge
	DatasetLoadSeconds prometheus.Gauge
}{
	ChartsRendered: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tubedash_charts_rendered_total",
			Help: "Chart specifications served, by chart.",
		},
		[]string{"chart"},
	),
	ValidationErrors: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tubedash_validation_errors_total",
			Help: "Requests rejected for an invalid parameter, by parameter.",
		},
		[]string{"param"},
	),
	RequestDuration: prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tubedash_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	),
	RequestsInFlight: prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tubedash_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	),
	DatasetRows: prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tubedash_dataset_rows",
			Help: "Rows in the loaded dataset.",
		},
	),
	DatasetWarnings: prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tubedash_dataset_parse_warnings",
			Help: "Cells that could not be parsed while loading the dataset.",
		},
	),
	DatasetLoadSeconds: prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tubedash_dataset_load_duration_seconds",
			Help: "Time taken by the last dataset load.",
		},
	),
}

var registerOnce sync.Once

// InitMetrics registers all Prometheus metrics. Safe to call more than once.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			Metrics.ChartsRendered,
			Metrics.ValidationErrors,
			Metrics.RequestDuration,
			Metrics.RequestsInFlight,
			Metrics.DatasetRows,
			Metrics.DatasetWarnings,
			Metrics.DatasetLoadSeconds,
		)
	})
}

// RecordLoad publishes the outcome of a dataset load.
func RecordLoad(rows, warnings int, took time.Duration) {
	Metrics.DatasetRows.Set(float64(rows))
	Metrics.DatasetWarnings.Set(float64(warnings))
	Metrics.DatasetLoadSeconds.Set(took.Seconds())
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next(). Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/charts/"):
		return "/api/charts/:name"
	case strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/health/"):
		return path
	default:
		return "other"
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
