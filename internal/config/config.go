package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so values like "10s" parse from both YAML and
// environment variables.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler, used by envconfig.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Config holds all settings for a pipeline run. Values are resolved in three
// layers: built-in defaults, an optional YAML file, then SALES_* environment
// variables.
type Config struct {
	// Input and output paths.
	InputFile    string `yaml:"input_file" envconfig:"INPUT_FILE"`
	EnrichedFile string `yaml:"enriched_file" envconfig:"ENRICHED_FILE"`
	ReportFile   string `yaml:"report_file" envconfig:"REPORT_FILE"`
	XLSXFile     string `yaml:"xlsx_file" envconfig:"XLSX_FILE"`

	// Product catalog API.
	CatalogBaseURL string   `yaml:"catalog_base_url" envconfig:"CATALOG_BASE_URL"`
	CatalogLimit   int      `yaml:"catalog_limit" envconfig:"CATALOG_LIMIT"`
	CatalogTimeout Duration `yaml:"catalog_timeout" envconfig:"CATALOG_TIMEOUT"`

	// Analytics tuning.
	TopProducts  int `yaml:"top_products" envconfig:"TOP_PRODUCTS"`
	LowThreshold int `yaml:"low_threshold" envconfig:"LOW_THRESHOLD"`

	// Optional GCS bucket to publish output artifacts to. Empty disables publishing.
	GCSBucket string `yaml:"gcs_bucket" envconfig:"GCS_BUCKET"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InputFile:      "data/sales_data.txt",
		EnrichedFile:   "data/enriched_sales_data.txt",
		ReportFile:     "output/sales_report.txt",
		XLSXFile:       "output/sales_report.xlsx",
		CatalogBaseURL: "https://dummyjson.com",
		CatalogLimit:   100,
		CatalogTimeout: Duration(10 * time.Second),
		TopProducts:    5,
		LowThreshold:   10,
	}
}

// Load resolves the configuration. path may be empty, in which case the YAML
// layer is skipped; a non-empty path that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("Load: reading config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("Load: parsing config file %q: %w", path, err)
		}
	}

	if err := envconfig.Process("sales", &cfg); err != nil {
		return Config{}, fmt.Errorf("Load: processing environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("Load: %w", err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("input_file must not be empty")
	}
	if c.CatalogLimit <= 0 {
		return fmt.Errorf("catalog_limit must be positive, got %d", c.CatalogLimit)
	}
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("catalog_timeout must be positive, got %s", c.CatalogTimeout)
	}
	if c.TopProducts <= 0 {
		return fmt.Errorf("top_products must be positive, got %d", c.TopProducts)
	}
	return nil
}
