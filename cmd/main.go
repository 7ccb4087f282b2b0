package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bilgisen/gamenews/internal/api"
	"github.com/bilgisen/gamenews/internal/cache"
	"github.com/bilgisen/gamenews/internal/config"
	"github.com/bilgisen/gamenews/internal/logger"
	"github.com/bilgisen/gamenews/internal/news"
	"github.com/bilgisen/gamenews/internal/newsapi"
	"github.com/bilgisen/gamenews/internal/render"
	"github.com/bilgisen/gamenews/internal/utils"
	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: cfg.LogFile,
		Pretty: cfg.LogPretty,
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Str("env", cfg.Env).Str("query", cfg.NewsQuery).Msg("Starting application...")

	if cfg.NewsAPIKey == "" {
		log.Warn().Msg("NEWS_API_KEY is not set, requests to NewsAPI will be rejected")
	}

	articleCache, err := cache.New(context.Background(), cfg.RedisURL, cfg.RedisPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache")
	}
	defer func() {
		log.Info().Msg("Closing cache...")
		if err := articleCache.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing cache")
		}
	}()

	newsCfg := cfg.NewsAPI()
	service := news.NewService(
		newsapi.NewClient(newsCfg),
		articleCache,
		"articles:"+utils.HashParams(newsCfg.Params()),
		cfg.CacheTTL,
	)

	renderer, err := render.New(render.Heading(cfg.NewsQuery))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize renderer")
	}

	// Fetch the collection once up front; failures leave an empty list
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), cfg.NewsHTTPTimeout)
	log.Info().Int("articles", len(service.Articles(warmCtx))).Msg("Article collection loaded")
	cancelWarm()

	app := api.NewApp(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
	})
	api.SetupRoutes(app, api.NewHandlers(cfg, service, renderer))

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
