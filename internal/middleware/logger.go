package middleware

import (
	"errors"
	"time"

	"github.com/bilgisen/gamenews/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// LoggerConfig defines the config for the logger middleware
type LoggerConfig struct {
	// Next skips logging for requests it returns true for.
	Next func(c *fiber.Ctx) bool

	// Logger receives the request events. Defaults to the global logger.
	Logger *zerolog.Logger
}

// NewLogger creates a request logging middleware. Besides the request line it
// records the search term and page the reader asked for.
func NewLogger(cfg LoggerConfig) fiber.Handler {
	if cfg.Logger == nil {
		cfg.Logger = logger.Get()
	}

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		status := responseStatus(c, err)
		event := cfg.Logger.Info()
		if status >= fiber.StatusInternalServerError {
			event = cfg.Logger.Error()
		}

		event = event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Str("ip", c.IP()).
			Dur("latency", latency)

		if q := c.Query("q"); q != "" {
			event = event.Str("q", q)
		}
		if page := c.Query("page"); page != "" {
			event = event.Str("page", page)
		}
		if err != nil {
			event = event.Err(err)
		}

		event.Msg("request")
		return err
	}
}

// responseStatus is the status the client will see. A returned error has not
// reached the error handler yet, so its code wins over the response's.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var e *fiber.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return fiber.StatusInternalServerError
}

// RequestLogger logs every request except health checks
func RequestLogger() fiber.Handler {
	return NewLogger(LoggerConfig{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	})
}
