package main

import (
	"context"
	"flag"
	"time"

	"github.com/bilgisen/gamenews/internal/api"
	"github.com/bilgisen/gamenews/internal/cache"
	"github.com/bilgisen/gamenews/internal/config"
	"github.com/bilgisen/gamenews/internal/export"
	"github.com/bilgisen/gamenews/internal/logger"
	"github.com/bilgisen/gamenews/internal/news"
	"github.com/bilgisen/gamenews/internal/newsapi"
	"github.com/bilgisen/gamenews/internal/render"
	"github.com/bilgisen/gamenews/internal/storage"
	"github.com/bilgisen/gamenews/internal/utils"
	"github.com/gofiber/fiber/v2"
)

func main() {
	serve := flag.Bool("serve", false, "serve the output directory after exporting")
	upload := flag.Bool("upload", true, "upload the export to R2 when credentials are configured")
	flag.Parse()

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

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := storage.NewStorage(cfg.OutputPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize output directory")
	}

	renderer, err := render.New(render.Heading(cfg.NewsQuery))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize renderer")
	}

	newsCfg := cfg.NewsAPI()
	service := news.NewService(
		newsapi.NewClient(newsCfg),
		cache.NewMemoryCache(),
		"articles:"+utils.HashParams(newsCfg.Params()),
		0,
	)

	files, err := export.NewExporter(store, renderer, cfg.ItemsPerPage, cfg.Location()).
		Export(ctx, service.Articles(ctx))
	if err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}
	log.Info().Int("files", len(files)).Str("path", store.Path()).Msg("Export written")

	if *upload && cfg.R2Enabled() {
		r2, err := storage.NewR2Client(ctx, storage.R2Config{
			Endpoint:  cfg.R2EndpointURL(),
			AccessKey: cfg.R2AccessKey,
			SecretKey: cfg.R2SecretKey,
			Bucket:    cfg.R2Bucket,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 client")
		}
		keys, err := storage.Publish(ctx, store, r2, cfg.R2Prefix)
		if err != nil {
			log.Fatal().Err(err).Int("uploaded", len(keys)).Msg("Upload to R2 failed")
		}
		log.Info().Int("objects", len(keys)).Str("bucket", cfg.R2Bucket).Msg("Export uploaded")
	}

	if !*serve {
		return
	}

	app := api.NewApp(fiber.Config{})
	app.Static("/", store.Path())

	log.Info().Str("port", cfg.Port).Msgf("Web server starting on http://localhost:%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
