package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"*"}},
		{"*", []string{"*"}},
		{" , ", []string{"*"}},
		{"https://a.example", []string{"https://a.example"}},
		{"https://a.example/, https://b.example", []string{"https://a.example", "https://b.example"}},
		{"https://a.example,*", []string{"*"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOrigins(tt.in))
		})
	}
}

func TestNewCORS(t *testing.T) {
	app := fiber.New()
	app.Use(NewCORS("https://dash.example"))
	app.Get("/api/kpis", func(c fiber.Ctx) error { return c.SendString("ok") })

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/kpis", nil)
		req.Header.Set("Origin", "https://dash.example")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "https://dash.example", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Contains(t, resp.Header.Get("Access-Control-Expose-Headers"), RequestIDHeader)
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/kpis", nil)
		req.Header.Set("Origin", "https://evil.example")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/kpis", nil)
		req.Header.Set("Origin", "https://dash.example")
		req.Header.Set("Access-Control-Request-Method", "GET")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "GET")
		assert.NotContains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
	})
}
