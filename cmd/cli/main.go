package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/sales-insights/internal/app"
	"github.com/dvloznov/sales-insights/internal/catalog"
	"github.com/dvloznov/sales-insights/internal/config"
	"github.com/dvloznov/sales-insights/internal/files"
	"github.com/dvloznov/sales-insights/internal/gcsuploader"
	"github.com/dvloznov/sales-insights/internal/logger"
	"github.com/dvloznov/sales-insights/internal/pipeline"
)

// Version is set at build time using ldflags.
var Version = "dev"

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		runPipeline(log)
	case "fetch-products":
		runFetchProducts(log)
	case "version":
		fmt.Printf("sales-insights %s\n", Version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Sales Insights CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  run             Run the full sales analytics pipeline")
	fmt.Println("  fetch-products  Fetch and print catalog products (diagnostic)")
	fmt.Println("  version         Show the version")
	fmt.Println("  help            Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func runPipeline(log zerolog.Logger) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML config file (optional)")
	inputFile := fs.String("input", "", "Sales data file (overrides config)")
	region := fs.String("region", "", "Keep only transactions from this region")
	minAmount := fs.Float64("min-amount", -1, "Keep only transactions with amount >= this value")
	maxAmount := fs.Float64("max-amount", -1, "Keep only transactions with amount <= this value")
	interactive := fs.Bool("interactive", false, "Ask for filter values on stdin")
	writeXLSX := fs.Bool("xlsx", false, "Also export the report as an XLSX workbook")
	gcsBucket := fs.String("gcs-bucket", "", "Publish output artifacts to this GCS bucket")
	fs.Parse(os.Args[2:])

	// Unexpected faults anywhere below terminate cleanly with a message
	// instead of a stack dump.
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
	if *inputFile != "" {
		cfg.InputFile = *inputFile
	}
	if *gcsBucket != "" {
		cfg.GCSBucket = *gcsBucket
	}

	opts := app.Options{WriteXLSX: *writeXLSX}
	if *region != "" {
		opts.Filter.Region = region
	}
	if *minAmount >= 0 {
		opts.Filter.MinAmount = minAmount
	}
	if *maxAmount >= 0 {
		opts.Filter.MaxAmount = maxAmount
	}

	if *interactive {
		opts.Filter = promptForFilters(cfg, log)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	cat := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogLimit, time.Duration(cfg.CatalogTimeout), logger.WithComponent(log, "catalog"))

	log.Info().Str("input", cfg.InputFile).Msg("Starting pipeline run")

	result, err := app.Run(ctx, cfg, cat, gcsPublisher{}, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Pipeline run failed")
	}

	fmt.Println("\nValidation Summary:")
	fmt.Printf("  total_input:        %d\n", result.Summary.TotalInput)
	fmt.Printf("  invalid:            %d\n", result.Summary.Invalid)
	fmt.Printf("  filtered_by_region: %d\n", result.Summary.FilteredByRegion)
	fmt.Printf("  filtered_by_amount: %d\n", result.Summary.FilteredByAmount)
	fmt.Printf("  final_count:        %d\n", result.Summary.FinalCount)
	fmt.Printf("\nEnriched %d/%d transactions\n", result.EnrichedMatched, result.ValidCount)
	fmt.Printf("Enriched data: %s\n", result.EnrichedPath)
	fmt.Printf("Report:        %s\n", result.ReportPath)
	if result.XLSXPath != "" {
		fmt.Printf("XLSX report:   %s\n", result.XLSXPath)
	}
}

// promptForFilters asks the operator whether to narrow the data set. It reads
// the input file once to show the available regions and the amount range;
// declining leaves all validated transactions in the run.
func promptForFilters(cfg config.Config, log zerolog.Logger) pipeline.FilterOptions {
	var opts pipeline.FilterOptions

	lines, err := files.ReadSalesLines(cfg.InputFile)
	if err != nil {
		log.Warn().Err(err).Msg("Could not read sales data for filter preview")
		return opts
	}
	transactions := pipeline.ParseLines(lines)

	regions := pipeline.AvailableRegions(transactions)
	fmt.Printf("Regions: %s\n", strings.Join(regions, ", "))
	if min, max, ok := pipeline.AmountRange(transactions); ok {
		fmt.Printf("Amount Range: %.2f - %.2f\n", min, max)
	}

	reader := bufio.NewReader(os.Stdin)

	if answer := prompt(reader, "Do you want to filter data? (y/n): "); strings.ToLower(answer) != "y" {
		fmt.Println("No filter applied.")
		return opts
	}

	if value := prompt(reader, "Enter region to filter (or leave blank for all): "); value != "" {
		opts.Region = &value
	}
	if value := prompt(reader, "Enter minimum transaction amount (or leave blank): "); value != "" {
		if min, err := strconv.ParseFloat(value, 64); err == nil {
			opts.MinAmount = &min
		}
	}
	if value := prompt(reader, "Enter maximum transaction amount (or leave blank): "); value != "" {
		if max, err := strconv.ParseFloat(value, 64); err == nil {
			opts.MaxAmount = &max
		}
	}

	return opts
}

func prompt(reader *bufio.Reader, question string) string {
	fmt.Print(question)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(answer)
}

func runFetchProducts(log zerolog.Logger) {
	fs := flag.NewFlagSet("fetch-products", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML config file (optional)")
	limit := fs.Int("limit", 0, "Number of products to fetch (overrides config)")
	show := fs.Int("show", 3, "Number of products to print")
	fs.Parse(os.Args[2:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Loading configuration failed")
	}
	if *limit > 0 {
		cfg.CatalogLimit = *limit
	}

	cat := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogLimit, time.Duration(cfg.CatalogTimeout), logger.WithComponent(log, "catalog"))
	products := cat.FetchAllProducts()

	fmt.Printf("Fetched %d products\n", len(products))
	for i, p := range products {
		if i >= *show {
			break
		}
		fmt.Printf("  %d: %s (category=%s brand=%s rating=%.2f)\n", p.ID, p.Title, p.Category, p.Brand, p.Rating)
	}
}

// gcsPublisher adapts the gcsuploader package to the app.Publisher interface.
type gcsPublisher struct{}

func (gcsPublisher) PublishArtifacts(ctx context.Context, bucketName, runID string, filePaths []string) error {
	return gcsuploader.PublishArtifacts(ctx, bucketName, runID, filePaths)
}
