package main

import (
	"fmt"
	"log"

	"billex/internal/config"
	"billex/internal/extractor"
	extractorGemini "billex/internal/extractor/gemini"
	extractorGroq "billex/internal/extractor/groq"
	"billex/internal/fetch"
	"billex/internal/handler"
	"billex/internal/port"
	"billex/internal/raster"
	"billex/internal/repository/postgres"
	"billex/internal/router"
	"billex/internal/service"

	"github.com/jmoiron/sqlx"
)

// @title Billex API
// @version 1.0
// @description Medical bill line-item extraction service
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Run history is optional; without a database the service is stateless.
	var db *sqlx.DB
	var runRepo port.ExtractionRepository
	if cfg.DB.Enabled() {
		db, err = postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		runRepo = postgres.NewExtractionRunRepo(db)
	}

	// Initialize fetchers
	httpFetcher := fetch.NewHTTPFetcher(&cfg.Fetch)
	var s3Fetcher port.DocumentFetcher
	if cfg.S3.AccessKey != "" || cfg.S3.Endpoint != "" {
		s3Fetcher, err = fetch.NewS3Fetcher(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 fetcher: %w", err)
		}
	}
	fetcher := fetch.NewDispatcher(httpFetcher, s3Fetcher)

	// Initialize the page extractor stack
	extractor.RegisterProvider("groq", func(pc *config.ProviderConfig) (port.PageExtractor, error) {
		return extractorGroq.NewExtractor(pc), nil
	})
	extractor.RegisterProvider("gemini", func(pc *config.ProviderConfig) (port.PageExtractor, error) {
		return extractorGemini.NewExtractor(pc), nil
	})

	pageExtractor, err := extractor.NewExtractor(&cfg.Extractor.Primary)
	if err != nil {
		return fmt.Errorf("failed to initialize extractor: %w", err)
	}
	if secondary := cfg.Extractor.SecondaryConfig(); secondary != nil {
		secondaryExtractor, err := extractor.NewExtractor(secondary)
		if err != nil {
			return fmt.Errorf("failed to initialize secondary extractor: %w", err)
		}
		pageExtractor = extractor.NewFallbackExtractor(
			[]port.PageExtractor{pageExtractor, secondaryExtractor},
			[]string{cfg.Extractor.Primary.Provider, secondary.Provider},
		)
	}

	// Initialize services and handlers
	rasterizer := raster.New(&cfg.Raster)
	extractionSvc := service.NewExtractionService(fetcher, rasterizer, pageExtractor, runRepo, &cfg.Pipeline)

	extractH := handler.NewExtractHandler(extractionSvc)
	runH := handler.NewRunHandler(extractionSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, extractH, runH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
