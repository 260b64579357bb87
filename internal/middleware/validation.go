package middleware

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"
)

// Input limits for request parameters.
const (
	MaxChannelNameLen = 200 // runes
	MaxChartNameLen   = 64
	MaxQueryValueLen  = 256 // bytes, any other query value
)

// chartNameRe matches catalogue names: lowercase words joined by dashes.
var chartNameRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// InvalidParamResponse is the 400 response for a rejected request parameter.
func InvalidParamResponse(c fiber.Ctx, param, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "INVALID_FILTER",
			"message": message,
			"param":   param,
		},
	})
}

// ValidateChannelName trims a channel filter value and rejects control
// characters and oversized input. An empty name is valid and means all.
func ValidateChannelName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if !utf8.ValidString(name) {
		return "", "channel must be valid UTF-8"
	}
	if utf8.RuneCountInString(name) > MaxChannelNameLen {
		return "", "channel must be at most 200 characters"
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return "", "channel contains control characters"
	}
	return name, ""
}

// ValidateChartName checks that a chart name is well-formed.
func ValidateChartName(name string) (string, string) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return "", "chart name is required"
	}
	if len(name) > MaxChartNameLen {
		return "", "chart name must be at most 64 characters"
	}
	if !chartNameRe.MatchString(name) {
		return "", "chart name contains invalid characters"
	}
	return name, ""
}

// ValidateQueryValue rejects oversized query values before they are parsed.
func ValidateQueryValue(key, value string) string {
	if len(value) > MaxQueryValueLen {
		return key + " must be at most 256 bytes"
	}
	return ""
}
