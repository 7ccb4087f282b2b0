package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bilgisen/gamenews/internal/config"
	"github.com/bilgisen/gamenews/internal/models"
	"github.com/bilgisen/gamenews/internal/presenter"
	"github.com/bilgisen/gamenews/internal/render"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	articles   []models.Article
	refreshErr error
	refreshes  int
}

func (f *fakeSource) Articles(ctx context.Context) []models.Article {
	return f.articles
}

func (f *fakeSource) Refresh(ctx context.Context) (int, error) {
	f.refreshes++
	if f.refreshErr != nil {
		return 0, f.refreshErr
	}
	return len(f.articles), nil
}

func testArticles(n int) []models.Article {
	out := make([]models.Article, n)
	for i := range out {
		out[i] = models.Article{
			Source:      models.Source{Name: "IGN"},
			Author:      fmt.Sprintf("Autor %d", i),
			Title:       fmt.Sprintf("Elden Ring %d", i),
			URL:         fmt.Sprintf("https://example.com/%d", i),
			PublishedAt: time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		}
	}
	return out
}

func testConfig() *config.Config {
	return &config.Config{
		NewsQuery:     "Elden ring",
		ItemsPerPage:  5,
		SearchEnabled: true,
		TimeZone:      "UTC",
		SiteURL:       "http://localhost:8080",
		AdminAPIKey:   "admin-key",
	}
}

func newTestApp(t *testing.T, cfg *config.Config, src ArticleSource) *fiber.App {
	t.Helper()
	renderer, err := render.New(render.Heading("Elden Ring"))
	require.NoError(t, err)

	app := NewApp(fiber.Config{})
	SetupRoutes(app, NewHandlers(cfg, src, renderer))
	return app
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestListArticles(t *testing.T) {
	app := newTestApp(t, testConfig(), &fakeSource{articles: testArticles(12)})

	tests := []struct {
		name      string
		target    string
		wantCount int
		wantPage  int
		wantTotal int
		wantPrev  bool
		wantNext  bool
	}{
		{name: "first page", target: "/api/v1/articles", wantCount: 5, wantPage: 1, wantTotal: 3, wantNext: true},
		{name: "last page", target: "/api/v1/articles?page=3", wantCount: 2, wantPage: 3, wantTotal: 3, wantPrev: true},
		{name: "overshoot is not clamped", target: "/api/v1/articles?page=9", wantCount: 0, wantPage: 9, wantTotal: 3, wantPrev: true},
		{name: "huge page", target: "/api/v1/articles?page=3689348814741910324", wantCount: 0, wantPage: 3689348814741910324, wantTotal: 3, wantPrev: true},
		{name: "search", target: "/api/v1/articles?q=ring%2011", wantCount: 1, wantPage: 1, wantTotal: 1},
		{name: "search without matches", target: "/api/v1/articles?q=malenia", wantCount: 0, wantPage: 1, wantTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, app, tt.target)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var view presenter.View
			require.NoError(t, json.Unmarshal([]byte(body), &view))
			assert.Len(t, view.Items, tt.wantCount)
			assert.Equal(t, tt.wantPage, view.CurrentPage)
			assert.Equal(t, tt.wantTotal, view.TotalPages)
			assert.Equal(t, tt.wantPrev, view.HasPrev)
			assert.Equal(t, tt.wantNext, view.HasNext)
		})
	}
}

func TestListArticlesNewestFirst(t *testing.T) {
	app := newTestApp(t, testConfig(), &fakeSource{articles: testArticles(3)})

	_, body := get(t, app, "/api/v1/articles")

	var view presenter.View
	require.NoError(t, json.Unmarshal([]byte(body), &view))
	require.Len(t, view.Items, 3)
	assert.Equal(t, "Elden Ring 2", view.Items[0].Title)
	assert.Equal(t, "Autor 2", view.Items[0].ResolvedAuthor)
	assert.Equal(t, "03/03/2023", view.Items[0].PublishedDate)
}

func TestListArticlesSearchDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.SearchEnabled = false
	app := newTestApp(t, cfg, &fakeSource{articles: testArticles(12)})

	_, body := get(t, app, "/api/v1/articles?q=malenia")

	var view presenter.View
	require.NoError(t, json.Unmarshal([]byte(body), &view))
	assert.Len(t, view.Items, 5)
	assert.Empty(t, view.SearchTerm)
}

func TestListArticlesRejectsInvalidPage(t *testing.T) {
	app := newTestApp(t, testConfig(), &fakeSource{})

	resp, _ := get(t, app, "/api/v1/articles?page=0")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = get(t, app, "/api/v1/articles?page=-2")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestIndexRendersPage(t *testing.T) {
	app := newTestApp(t, testConfig(), &fakeSource{articles: testArticles(12)})

	resp, body := get(t, app, "/?page=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), "text/html"))

	assert.Contains(t, body, "Notícias de Elden Ring")
	assert.Contains(t, body, "2 de 3")
	assert.Contains(t, body, "Elden Ring 6")
	assert.Contains(t, body, `href="/?page=3"`)
	assert.Contains(t, body, `href="/"`)
}

func TestIndexEmptyCollection(t *testing.T) {
	app := newTestApp(t, testConfig(), &fakeSource{articles: []models.Article{}})

	resp, body := get(t, app, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "0 de 0")
}

func TestArticlesRSS(t *testing.T) {
	app := newTestApp(t, testConfig(), &fakeSource{articles: testArticles(2)})

	resp, body := get(t, app, "/api/v1/articles/rss")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "application/rss+xml")
	assert.Contains(t, body, "<rss")
	assert.Less(t, strings.Index(body, "Elden Ring 1"), strings.Index(body, "Elden Ring 0"))
}

func TestRefresh(t *testing.T) {
	src := &fakeSource{articles: testArticles(4)}
	app := newTestApp(t, testConfig(), src)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/refresh", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, src.refreshes)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/refresh", nil)
	req.Header.Set("X-API-Key", "admin-key")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Articles int `json:"articles"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 4, body.Articles)

	src.refreshErr = errors.New("newsapi down")
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/refresh", nil)
	req.Header.Set("X-API-Key", "admin-key")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHealthAndNotFound(t *testing.T) {
	app := newTestApp(t, testConfig(), &fakeSource{})

	resp, body := get(t, app, "/api/v1/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"ok"`)

	resp, _ = get(t, app, "/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
