// Package app wires the sales pipeline end to end: read, parse, validate,
// analyze, enrich, write outputs. It owns the run lifecycle; the heavy lifting
// lives in the pipeline, catalog, files and report packages.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dvloznov/sales-insights/internal/catalog"
	"github.com/dvloznov/sales-insights/internal/config"
	"github.com/dvloznov/sales-insights/internal/files"
	"github.com/dvloznov/sales-insights/internal/logger"
	"github.com/dvloznov/sales-insights/internal/pipeline"
	"github.com/dvloznov/sales-insights/internal/report"
)

// CatalogService fetches the remote product catalog. Implementations must
// degrade to an empty slice on failure rather than returning an error.
type CatalogService interface {
	FetchAllProducts() []catalog.Product
}

// Publisher copies run artifacts to external storage after a successful run.
type Publisher interface {
	PublishArtifacts(ctx context.Context, bucketName, runID string, filePaths []string) error
}

// Options are per-run knobs on top of the static configuration.
type Options struct {
	Filter    pipeline.FilterOptions
	WriteXLSX bool
}

// Result summarizes one pipeline run.
type Result struct {
	RunID           string
	Summary         pipeline.FilterSummary
	ValidCount      int
	EnrichedMatched int
	EnrichedPath    string
	ReportPath      string
	XLSXPath        string
}

// Run executes the full pipeline once. Only a total inability to write output
// files is fatal; an unreadable input degrades to an empty transaction set and
// a catalog failure degrades to zero enrichment, per the error policy.
func Run(ctx context.Context, cfg config.Config, cat CatalogService, pub Publisher, opts Options) (Result, error) {
	log := logger.FromContext(ctx)
	runID := uuid.NewString()
	log = log.With().Str("run_id", runID).Logger()

	// 1. Read the raw input lines. A missing or undecodable file is reported
	// and the run continues with an empty set, producing a zero-filled report.
	lines, err := files.ReadSalesLines(cfg.InputFile)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.InputFile).Msg("Could not read sales data, continuing with empty set")
		lines = nil
	}
	log.Info().Int("lines", len(lines)).Msg("Read sales data")

	// 2. Parse raw lines into transactions; malformed rows vanish here.
	transactions := pipeline.ParseLines(lines)
	log.Info().Int("parsed", len(transactions)).Msg("Parsed transactions")

	// 3. Validate and apply any operator filters.
	valid, invalidCount, summary := pipeline.ValidateAndFilter(transactions, opts.Filter)
	log.Info().
		Int("valid", len(valid)).
		Int("invalid", invalidCount).
		Int("filtered_by_region", summary.FilteredByRegion).
		Int("filtered_by_amount", summary.FilteredByAmount).
		Msg("Validated transactions")

	// 4. Fetch the product catalog and enrich. Fetch failures have already
	// degraded to an empty catalog inside the client.
	products := cat.FetchAllProducts()
	mapping := catalog.NewMapping(products)
	enriched := pipeline.Enrich(valid, mapping)

	matched := 0
	for _, e := range enriched {
		if e.APIMatch {
			matched++
		}
	}
	log.Info().Int("matched", matched).Int("total", len(enriched)).Msg("Enriched transactions")

	// 5. Write the enriched data file.
	if err := files.WriteEnrichedData(cfg.EnrichedFile, enriched); err != nil {
		return Result{}, fmt.Errorf("Run: %w", err)
	}
	log.Info().Str("path", cfg.EnrichedFile).Msg("Wrote enriched data")

	// 6. Run the analytics and render the report.
	data := report.Build(valid, enriched, cfg.TopProducts, cfg.LowThreshold, runID, time.Now())
	if err := report.Generate(cfg.ReportFile, data); err != nil {
		return Result{}, fmt.Errorf("Run: %w", err)
	}
	log.Info().Str("path", cfg.ReportFile).Msg("Wrote report")

	result := Result{
		RunID:           runID,
		Summary:         summary,
		ValidCount:      len(valid),
		EnrichedMatched: matched,
		EnrichedPath:    cfg.EnrichedFile,
		ReportPath:      cfg.ReportFile,
	}

	// 7. Optional XLSX export of the same figures.
	if opts.WriteXLSX {
		if err := report.WriteXLSX(cfg.XLSXFile, data); err != nil {
			return Result{}, fmt.Errorf("Run: %w", err)
		}
		result.XLSXPath = cfg.XLSXFile
		log.Info().Str("path", cfg.XLSXFile).Msg("Wrote XLSX report")
	}

	// 8. Optional publish of the artifacts to GCS. A failed upload is logged
	// but does not invalidate the local run.
	if pub != nil && cfg.GCSBucket != "" {
		artifacts := []string{result.EnrichedPath, result.ReportPath}
		if result.XLSXPath != "" {
			artifacts = append(artifacts, result.XLSXPath)
		}
		if err := pub.PublishArtifacts(ctx, cfg.GCSBucket, runID, artifacts); err != nil {
			log.Warn().Err(err).Str("bucket", cfg.GCSBucket).Msg("Publishing artifacts failed")
		} else {
			log.Info().Str("bucket", cfg.GCSBucket).Msg("Published artifacts")
		}
	}

	return result, nil
}
