package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dvloznov/sales-insights/internal/app"
	"github.com/dvloznov/sales-insights/internal/catalog"
	"github.com/dvloznov/sales-insights/internal/config"
	"github.com/dvloznov/sales-insights/internal/logger"
)

// Single-purpose binary: run the full pipeline with the resolved configuration
// and no filters. Use cmd/cli for filtering and diagnostics.
func main() {
	// Initialize structured logger
	log := logger.New()

	configPath := flag.String("config", "", "Path to a YAML config file (optional)")
	flag.Parse()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Unexpected error, run aborted")
			os.Exit(1)
		}
	}()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Loading configuration failed")
	}

	// Create context with timeout so the run doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	cat := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogLimit, time.Duration(cfg.CatalogTimeout), logger.WithComponent(log, "catalog"))

	result, err := app.Run(ctx, cfg, cat, nil, app.Options{})
	if err != nil {
		log.Fatal().Err(err).Msg("Pipeline run failed")
	}

	fmt.Printf("Run %s completed: %d valid transactions, report at %s\n",
		result.RunID, result.ValidCount, result.ReportPath)
}
