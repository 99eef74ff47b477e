package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dvloznov/sales-insights/internal/pipeline"
)

func tx(id, date, productID, productName string, qty int, price float64, customerID, region string) pipeline.Transaction {
	return pipeline.Transaction{
		TransactionID: id,
		Date:          date,
		ProductID:     productID,
		ProductName:   productName,
		Quantity:      qty,
		UnitPrice:     price,
		CustomerID:    customerID,
		Region:        region,
	}
}

func testData(t *testing.T) Data {
	t.Helper()

	transactions := []pipeline.Transaction{
		tx("T001", "2024-12-01", "P101", "Widget", 5, 100, "C001", "North"),
		tx("T002", "2024-12-01", "P102", "Gadget", 3, 200, "C002", "South"),
		tx("T003", "2024-12-02", "P101", "Widget", 2, 100, "C001", "North"),
	}

	category := "tools"
	enriched := []pipeline.EnrichedTransaction{
		{Transaction: transactions[0], APICategory: &category, APIMatch: true},
		{Transaction: transactions[1]},
		{Transaction: transactions[2], APICategory: &category, APIMatch: true},
	}

	generatedAt := time.Date(2024, 12, 15, 10, 30, 0, 0, time.UTC)
	return Build(transactions, enriched, 5, 10, "run-123", generatedAt)
}

func TestBuild(t *testing.T) {
	data := testData(t)

	assert.Equal(t, 3, data.RecordCount)
	assert.Equal(t, 1300.0, data.TotalRevenue)
	assert.InDelta(t, 433.33, data.AvgOrderValue, 0.01)
	assert.Equal(t, "2024-12-01", data.StartDate)
	assert.Equal(t, "2024-12-02", data.EndDate)

	require.Len(t, data.Regions, 2)
	assert.Equal(t, "North", data.Regions[0].Region)
	assert.Equal(t, 700.0, data.Regions[0].TotalSales)

	require.True(t, data.HasPeakDay)
	assert.Equal(t, "2024-12-01", data.PeakDay.Date)
	assert.Equal(t, 1100.0, data.PeakDay.Revenue)

	assert.Equal(t, 3, data.EnrichedTotal)
	assert.Equal(t, 2, data.EnrichedMatched)
	assert.InDelta(t, 66.67, data.SuccessRate, 0.01)
	assert.Equal(t, []string{"Gadget"}, data.FailedProducts)
}

func TestBuild_EmptyInput(t *testing.T) {
	data := Build(nil, nil, 5, 10, "run-empty", time.Now())

	assert.Equal(t, 0, data.RecordCount)
	assert.Equal(t, 0.0, data.TotalRevenue)
	assert.False(t, data.HasPeakDay)
	assert.Empty(t, data.Regions)
	assert.Empty(t, data.FailedProducts)
	assert.Equal(t, 0.0, data.SuccessRate)
}

func TestRender_Sections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testData(t)))
	out := buf.String()

	sections := []string{
		"SALES ANALYTICS REPORT",
		"OVERALL SUMMARY",
		"REGION-WISE PERFORMANCE",
		"TOP 5 PRODUCTS",
		"TOP 5 CUSTOMERS",
		"DAILY SALES TREND",
		"PRODUCT PERFORMANCE ANALYSIS",
		"API ENRICHMENT SUMMARY",
	}
	for _, section := range sections {
		assert.Contains(t, out, section)
	}

	// Order of sections is fixed.
	last := -1
	for _, section := range sections {
		idx := bytes.Index(buf.Bytes(), []byte(section))
		require.GreaterOrEqual(t, idx, 0, section)
		assert.Greater(t, idx, last, "section %q out of order", section)
		last = idx
	}
}

func TestRender_Figures(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testData(t)))
	out := buf.String()

	assert.Contains(t, out, "Generated: 2024-12-15 10:30:00")
	assert.Contains(t, out, "Run ID: run-123")
	assert.Contains(t, out, "Records Processed: 3")
	assert.Contains(t, out, "Total Revenue:        ₹1,300.00")
	assert.Contains(t, out, "Date Range:           2024-12-01 to 2024-12-02")
	assert.Contains(t, out, "Best Selling Day: 2024-12-01 (₹1,100.00)")
	assert.Contains(t, out, "Total Products Enriched: 2")
	assert.Contains(t, out, "Success Rate: 66.67%")
	assert.Contains(t, out, "- Gadget")
}

func TestRender_EmptyData(t *testing.T) {
	var buf bytes.Buffer
	data := Build(nil, nil, 5, 10, "run-empty", time.Now())

	require.NoError(t, Render(&buf, data))
	out := buf.String()

	assert.Contains(t, out, "Records Processed: 0")
	assert.Contains(t, out, "Best Selling Day: N/A")
	assert.Contains(t, out, "Products Not Enriched: None")
}

func TestGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "sales_report.txt")
	require.NoError(t, Generate(path, testData(t)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "SALES ANALYTICS REPORT")
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "sales_report.xlsx")
	require.NoError(t, WriteXLSX(path, testData(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	for _, want := range []string{"Summary", "Regions", "Products", "Customers", "Daily Trend", "Enrichment"} {
		assert.Contains(t, sheets, want)
	}

	runID, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "run-123", runID)

	region, err := f.GetCellValue("Regions", "A2")
	require.NoError(t, err)
	assert.Equal(t, "North", region)
}
