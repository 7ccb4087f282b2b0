package api

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/bilgisen/gamenews/internal/config"
	"github.com/bilgisen/gamenews/internal/logger"
	"github.com/bilgisen/gamenews/internal/middleware"
	"github.com/bilgisen/gamenews/internal/models"
	"github.com/bilgisen/gamenews/internal/presenter"
	"github.com/bilgisen/gamenews/internal/render"
	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/feeds"
)

// ArticleSource provides the article collection to the handlers
type ArticleSource interface {
	Articles(ctx context.Context) []models.Article
	Refresh(ctx context.Context) (int, error)
}

// ArticleQuery is the reader's UI state as carried in the query string
type ArticleQuery struct {
	Q    string `query:"q" validate:"max=200"`
	Page int    `query:"page" validate:"min=1"`
}

func (q *ArticleQuery) SetDefaults() {
	q.Page = 1
}

func (q *ArticleQuery) state(searchEnabled bool) presenter.State {
	s := presenter.State{Page: q.Page}
	if searchEnabled {
		s.SearchTerm = strings.TrimSpace(q.Q)
	}
	return s
}

type Handlers struct {
	config   *config.Config
	articles ArticleSource
	renderer *render.Renderer
	location *time.Location
}

func NewHandlers(cfg *config.Config, articles ArticleSource, renderer *render.Renderer) *Handlers {
	return &Handlers{
		config:   cfg,
		articles: articles,
		renderer: renderer,
		location: cfg.Location(),
	}
}

func (h *Handlers) view(ctx context.Context, state presenter.State) presenter.View {
	opts := state.Options(h.config.ItemsPerPage, h.config.SearchEnabled)
	opts.Location = h.location
	return presenter.ComputeView(h.articles.Articles(ctx), opts)
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": "1.0.0",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// Index handles GET / and renders the news page
func (h *Handlers) Index(c *fiber.Ctx) error {
	q := middleware.Query[ArticleQuery](c)
	state := q.state(h.config.SearchEnabled)
	view := h.view(c.UserContext(), state)

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, view, state, render.ServerLinks{Path: c.Path()}, h.config.SearchEnabled); err != nil {
		return err
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// ListArticles handles GET /api/v1/articles
func (h *Handlers) ListArticles(c *fiber.Ctx) error {
	q := middleware.Query[ArticleQuery](c)
	return c.JSON(h.view(c.UserContext(), q.state(h.config.SearchEnabled)))
}

// ArticlesRSS handles GET /api/v1/articles/rss
func (h *Handlers) ArticlesRSS(c *fiber.Ctx) error {
	articles := presenter.SortByPublished(h.articles.Articles(c.UserContext()))

	feed := &feeds.Feed{
		Title:       render.Heading(h.config.NewsQuery),
		Link:        &feeds.Link{Href: h.config.SiteURL},
		Description: "Notícias sobre " + h.config.NewsQuery,
		Created:     time.Now(),
	}
	for _, a := range articles {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          a.URL,
			Title:       a.Title,
			Link:        &feeds.Link{Href: a.URL},
			Description: a.Description,
			Author:      &feeds.Author{Name: a.ResolvedAuthor()},
			Created:     a.PublishedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build feed: "+err.Error())
	}

	c.Set(fiber.HeaderContentType, "application/rss+xml; charset=utf-8")
	return c.SendString(rss)
}

// Refresh handles POST /api/v1/admin/refresh
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	log := logger.Get()
	start := time.Now()

	n, err := h.articles.Refresh(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("Error refreshing articles")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to refresh articles",
		})
	}

	log.Info().
		Int("articles", n).
		Dur("duration", time.Since(start)).
		Msg("Articles refreshed")

	return c.JSON(fiber.Map{
		"status":   "refreshed",
		"articles": n,
	})
}
