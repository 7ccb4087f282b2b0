package api

import (
	"github.com/bilgisen/gamenews/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp creates the Fiber app with the global middleware and error handler
func NewApp(cfg fiber.Config) *fiber.App {
	cfg.ErrorHandler = middleware.ErrorHandler
	app := fiber.New(cfg)

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	return app
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, handlers *Handlers) {
	articleQuery := middleware.ValidateQuery[ArticleQuery]()

	// News page
	app.Get("/", articleQuery, handlers.Index)

	// API group with versioning
	api := app.Group("/api/v1")

	api.Get("/health", handlers.HealthCheck)

	articles := api.Group("/articles")
	{
		articles.Get("", articleQuery, handlers.ListArticles) // Current page of articles
		articles.Get("/rss", handlers.ArticlesRSS)            // Whole collection as RSS
	}

	// Admin endpoints
	admin := api.Group("/admin", middleware.AdminOnly(handlers.config.AdminAPIKey))
	{
		admin.Post("/refresh", handlers.Refresh) // Fetch the collection again
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
