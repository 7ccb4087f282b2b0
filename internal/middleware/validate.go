package middleware

import (
	"errors"
	"net/http"

	"github.com/bilgisen/gamenews/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// QueryLocalsKey is where ValidateQuery stores the parsed query struct
const QueryLocalsKey = "queryParams"

var validate = validator.New()

// Defaulter is implemented by query structs that need non-zero defaults for
// parameters the client leaves out.
type Defaulter interface {
	SetDefaults()
}

// ValidateQuery parses the query string into a fresh T on every request,
// validates it and stores a *T in c.Locals(QueryLocalsKey).
func ValidateQuery[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := new(T)
		if d, ok := any(params).(Defaulter); ok {
			d.SetDefaults()
		}
		if err := c.QueryParser(params); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid query parameters",
				"msg":   err.Error(),
			})
		}

		if err := validate.Struct(params); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return err
			}
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Invalid query parameters",
				"fields": fields,
			})
		}

		c.Locals(QueryLocalsKey, params)
		return c.Next()
	}
}

// Query returns the struct stored by ValidateQuery
func Query[T any](c *fiber.Ctx) *T {
	params, _ := c.Locals(QueryLocalsKey).(*T)
	if params == nil {
		params = new(T)
	}
	return params
}

// ErrorHandler handles errors in a consistent way
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	logger.Get().Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	return c.Status(code).JSON(fiber.Map{
		"error": http.StatusText(code),
	})
}
