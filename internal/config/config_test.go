package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "data/sales_data.txt", cfg.InputFile)
	assert.Equal(t, "data/enriched_sales_data.txt", cfg.EnrichedFile)
	assert.Equal(t, "output/sales_report.txt", cfg.ReportFile)
	assert.Equal(t, "https://dummyjson.com", cfg.CatalogBaseURL)
	assert.Equal(t, 100, cfg.CatalogLimit)
	assert.Equal(t, Duration(10*time.Second), cfg.CatalogTimeout)
	assert.Equal(t, 5, cfg.TopProducts)
	assert.Equal(t, 10, cfg.LowThreshold)
	assert.Empty(t, cfg.GCSBucket)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(
		"input_file: /tmp/sales.txt\n" +
			"catalog_limit: 50\n" +
			"catalog_timeout: 3s\n" +
			"low_threshold: 20\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/sales.txt", cfg.InputFile)
	assert.Equal(t, 50, cfg.CatalogLimit)
	assert.Equal(t, Duration(3*time.Second), cfg.CatalogTimeout)
	assert.Equal(t, 20, cfg.LowThreshold)
	// Untouched keys keep their defaults.
	assert.Equal(t, "output/sales_report.txt", cfg.ReportFile)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog_limit: 50\n"), 0o644))

	t.Setenv("SALES_CATALOG_LIMIT", "25")
	t.Setenv("SALES_GCS_BUCKET", "sales-artifacts")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.CatalogLimit)
	assert.Equal(t, "sales-artifacts", cfg.GCSBucket)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("does/not/exist.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero limit", "catalog_limit: 0\n"},
		{"negative top products", "top_products: -1\n"},
		{"empty input file", "input_file: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
