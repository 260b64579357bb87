package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// NewCORS lets a browser-hosted dashboard on another origin read the API.
// Every route is a GET, so only GET, HEAD and the preflight OPTIONS are
// allowed and no credentials are sent. The rate-limit and request-id headers
// are exposed so the UI can back off and quote request ids in bug reports.
func NewCORS(corsOrigins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  parseOrigins(corsOrigins),
		AllowMethods:  []string{fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions},
		AllowHeaders:  []string{"Origin", "Accept", RequestIDHeader},
		ExposeHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", RequestIDHeader},
		MaxAge:        86400,
	})
}

// parseOrigins splits a comma-separated origin list. Empty input or "*"
// allows any origin.
func parseOrigins(corsOrigins string) []string {
	var origins []string
	for _, o := range strings.Split(corsOrigins, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			return []string{"*"}
		}
		if o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
