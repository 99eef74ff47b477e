package files

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dvloznov/sales-insights/internal/pipeline"
)

// enrichedHeader is the fixed column order of the enriched output file.
var enrichedHeader = []string{
	"TransactionID", "Date", "ProductID", "ProductName", "Quantity",
	"UnitPrice", "CustomerID", "Region",
	"API_Category", "API_Brand", "API_Rating", "API_Match",
}

// WriteEnrichedData writes enriched transactions as a pipe-delimited file,
// one row per record in input order. Nil API fields render as empty strings.
func WriteEnrichedData(path string, enriched []pipeline.EnrichedTransaction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("WriteEnrichedData: creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("WriteEnrichedData: creating %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if _, err := w.WriteString(strings.Join(enrichedHeader, "|") + "\n"); err != nil {
		return fmt.Errorf("WriteEnrichedData: writing header: %w", err)
	}

	for _, e := range enriched {
		row := []string{
			e.TransactionID,
			e.Date,
			e.ProductID,
			e.ProductName,
			strconv.Itoa(e.Quantity),
			formatFloat(e.UnitPrice),
			e.CustomerID,
			e.Region,
			stringOrEmpty(e.APICategory),
			stringOrEmpty(e.APIBrand),
			floatOrEmpty(e.APIRating),
			strconv.FormatBool(e.APIMatch),
		}
		if _, err := w.WriteString(strings.Join(row, "|") + "\n"); err != nil {
			return fmt.Errorf("WriteEnrichedData: writing row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("WriteEnrichedData: flushing %q: %w", path, err)
	}

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
