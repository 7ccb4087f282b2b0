package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listQuery struct {
	Q    string `query:"q" validate:"max=10"`
	Page int    `query:"page" validate:"min=1"`
}

func (q *listQuery) SetDefaults() {
	q.Page = 1
}

func newQueryApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", ValidateQuery[listQuery](), func(c *fiber.Ctx) error {
		return c.JSON(Query[listQuery](c))
	})
	return app
}

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantPage   int
		wantQ      string
	}{
		{name: "defaults", target: "/", wantStatus: http.StatusOK, wantPage: 1},
		{name: "explicit values", target: "/?q=elden&page=3", wantStatus: http.StatusOK, wantPage: 3, wantQ: "elden"},
		{name: "page zero", target: "/?page=0", wantStatus: http.StatusUnprocessableEntity},
		{name: "term too long", target: "/?q=shadowoftheerdtree", wantStatus: http.StatusUnprocessableEntity},
		{name: "page not a number", target: "/?page=two", wantStatus: http.StatusBadRequest},
	}

	app := newQueryApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.target, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var got listQuery
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantQ, got.Q)
		})
	}
}

func TestValidateQueryReportsFields(t *testing.T) {
	resp, err := newQueryApp().Test(httptest.NewRequest(http.MethodGet, "/?page=0", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "min", body.Fields["Page"])
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name       string
		adminKey   string
		header     string
		wantStatus int
	}{
		{name: "valid key", adminKey: "s3cret", header: "s3cret", wantStatus: http.StatusOK},
		{name: "missing key", adminKey: "s3cret", wantStatus: http.StatusUnauthorized},
		{name: "wrong key", adminKey: "s3cret", header: "guess", wantStatus: http.StatusForbidden},
		{name: "admin disabled", adminKey: "", header: "anything", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Post("/admin", AdminOnly(tt.adminKey), func(c *fiber.Ctx) error {
				return c.SendString("ok")
			})

			req := httptest.NewRequest(http.MethodPost, "/admin", nil)
			if tt.header != "" {
				req.Header.Set(AdminKeyHeader, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestErrorHandlerUsesFiberCode(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(RequestLogger())
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return io.ErrUnexpectedEOF
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestRequestLoggerRecordsStatusAndQuery(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(NewLogger(LoggerConfig{
		Logger: &log,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return io.ErrUnexpectedEOF
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	tests := []struct {
		target     string
		wantStatus float64
		wantLevel  string
		wantQ      any
		wantPage   any
	}{
		{target: "/?q=elden&page=2", wantStatus: 200, wantLevel: "info", wantQ: "elden", wantPage: "2"},
		{target: "/missing", wantStatus: 404, wantLevel: "info"},
		{target: "/boom", wantStatus: 500, wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			buf.Reset()
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.target, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantStatus, entry["status"])
			assert.EqualValues(t, resp.StatusCode, entry["status"])
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, tt.wantQ, entry["q"])
			assert.Equal(t, tt.wantPage, entry["page"])
		})
	}

	buf.Reset()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Zero(t, buf.Len(), "skipped paths are not logged")
}
