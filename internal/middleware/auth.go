package middleware

import (
	"crypto/subtle"

	"github.com/bilgisen/gamenews/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// AdminKeyHeader carries the admin API key
const AdminKeyHeader = "X-API-Key"

// AdminOnly rejects requests that don't carry adminKey. With an empty
// adminKey every request is rejected.
func AdminOnly(adminKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if adminKey == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access disabled",
			})
		}

		apiKey := c.Get(AdminKeyHeader)
		if apiKey == "" {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Admin access attempt without API key")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "API key is required",
			})
		}

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(adminKey)) != 1 {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Unauthorized admin access attempt")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}

		return c.Next()
	}
}
