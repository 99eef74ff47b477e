package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dvloznov/sales-insights/internal/pipeline"
)

const sectionWidth = 44

// Data carries everything the renderers need, precomputed so that text and
// XLSX output agree on every figure.
type Data struct {
	GeneratedAt time.Time
	RunID       string

	RecordCount   int
	TotalRevenue  float64
	AvgOrderValue float64
	StartDate     string
	EndDate       string

	Regions      []pipeline.RegionSales
	TopProducts  []pipeline.ProductSales
	Customers    []pipeline.CustomerStats
	Daily        []pipeline.DaySales
	PeakDay      pipeline.DaySales
	HasPeakDay   bool
	LowProducts  []pipeline.ProductSales
	TopCustomers int // how many customers to show in the ranking tables

	EnrichedTotal   int
	EnrichedMatched int
	SuccessRate     float64  // percentage
	FailedProducts  []string // product names with zero successful enrichment, sorted
}

// Build runs the analytics engine over the validated transactions and derives
// the enrichment summary. topN bounds the product and customer rankings;
// lowThreshold feeds the low-performer analysis.
func Build(transactions []pipeline.Transaction, enriched []pipeline.EnrichedTransaction, topN, lowThreshold int, runID string, generatedAt time.Time) Data {
	data := Data{
		GeneratedAt:  generatedAt,
		RunID:        runID,
		RecordCount:  len(transactions),
		TotalRevenue: pipeline.TotalRevenue(transactions),
		Regions:      pipeline.RegionWiseSales(transactions),
		TopProducts:  pipeline.TopSellingProducts(transactions, topN),
		Customers:    pipeline.CustomerAnalysis(transactions),
		Daily:        pipeline.DailySalesTrend(transactions),
		LowProducts:  pipeline.LowPerformingProducts(transactions, lowThreshold),
		TopCustomers: topN,
	}

	if len(transactions) > 0 {
		data.AvgOrderValue = data.TotalRevenue / float64(data.RecordCount)
		data.StartDate = data.Daily[0].Date
		data.EndDate = data.Daily[len(data.Daily)-1].Date

		peak, err := pipeline.FindPeakSalesDay(transactions)
		if err == nil {
			data.PeakDay = peak
			data.HasPeakDay = true
		}
	}

	data.EnrichedTotal = len(enriched)
	failed := make(map[string]bool)
	for _, e := range enriched {
		if e.APIMatch {
			data.EnrichedMatched++
		} else {
			failed[e.ProductName] = true
		}
	}
	if data.EnrichedTotal > 0 {
		data.SuccessRate = float64(data.EnrichedMatched) / float64(data.EnrichedTotal) * 100
	}
	for name := range failed {
		data.FailedProducts = append(data.FailedProducts, name)
	}
	sort.Strings(data.FailedProducts)

	return data
}

// Render writes the full plain-text report to w.
func Render(w io.Writer, data Data) error {
	var b strings.Builder

	writeBanner(&b, data)
	writeOverallSummary(&b, data)
	writeRegionPerformance(&b, data)
	writeTopProducts(&b, data)
	writeTopCustomers(&b, data)
	writeDailyTrend(&b, data)
	writeProductPerformance(&b, data)
	writeEnrichmentSummary(&b, data)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("Render: %w", err)
	}
	return nil
}

// Generate renders the report into a file, creating the output directory if needed.
func Generate(path string, data Data) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("Generate: creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Generate: creating %q: %w", path, err)
	}
	defer f.Close()

	if err := Render(f, data); err != nil {
		return fmt.Errorf("Generate: %w", err)
	}
	return nil
}

func writeBanner(b *strings.Builder, data Data) {
	rule := strings.Repeat("=", sectionWidth)
	fmt.Fprintf(b, "%s\n", rule)
	fmt.Fprintf(b, "          SALES ANALYTICS REPORT\n")
	fmt.Fprintf(b, "    Generated: %s\n", data.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(b, "    Run ID: %s\n", data.RunID)
	fmt.Fprintf(b, "    Records Processed: %d\n", data.RecordCount)
	fmt.Fprintf(b, "%s\n\n", rule)
}

func writeOverallSummary(b *strings.Builder, data Data) {
	writeSectionHeader(b, "OVERALL SUMMARY")
	fmt.Fprintf(b, "Total Revenue:        %s\n", money(data.TotalRevenue))
	fmt.Fprintf(b, "Total Transactions:   %d\n", data.RecordCount)
	fmt.Fprintf(b, "Average Order Value:  %s\n", money(data.AvgOrderValue))
	fmt.Fprintf(b, "Date Range:           %s to %s\n\n", data.StartDate, data.EndDate)
}

func writeRegionPerformance(b *strings.Builder, data Data) {
	writeSectionHeader(b, "REGION-WISE PERFORMANCE")
	fmt.Fprintf(b, "%-10s%-16s%-12s%s\n", "Region", "Sales", "% of Total", "Transactions")
	for _, r := range data.Regions {
		fmt.Fprintf(b, "%-10s%-16s%-12s%d\n",
			r.Region, money(r.TotalSales), fmt.Sprintf("%.2f%%", r.Percentage), r.TransactionCount)
	}
	b.WriteString("\n")
}

func writeTopProducts(b *strings.Builder, data Data) {
	writeSectionHeader(b, fmt.Sprintf("TOP %d PRODUCTS", data.TopCustomers))
	fmt.Fprintf(b, "%-6s%-25s%-10s%s\n", "Rank", "Product Name", "Qty Sold", "Revenue")
	for i, p := range data.TopProducts {
		fmt.Fprintf(b, "%-6d%-25s%-10d%s\n", i+1, p.ProductName, p.TotalQuantity, money(p.TotalRevenue))
	}
	b.WriteString("\n")
}

func writeTopCustomers(b *strings.Builder, data Data) {
	writeSectionHeader(b, fmt.Sprintf("TOP %d CUSTOMERS", data.TopCustomers))
	fmt.Fprintf(b, "%-6s%-15s%-16s%s\n", "Rank", "Customer ID", "Total Spent", "Orders")
	for i, c := range data.Customers {
		if i >= data.TopCustomers {
			break
		}
		fmt.Fprintf(b, "%-6d%-15s%-16s%d\n", i+1, c.CustomerID, money(c.TotalSpent), c.PurchaseCount)
	}
	b.WriteString("\n")
}

func writeDailyTrend(b *strings.Builder, data Data) {
	writeSectionHeader(b, "DAILY SALES TREND")
	fmt.Fprintf(b, "%-12s%-16s%-15s%s\n", "Date", "Revenue", "Transactions", "Unique Customers")
	for _, d := range data.Daily {
		fmt.Fprintf(b, "%-12s%-16s%-15d%d\n", d.Date, money(d.Revenue), d.TransactionCount, d.UniqueCustomers)
	}
	b.WriteString("\n")
}

func writeProductPerformance(b *strings.Builder, data Data) {
	writeSectionHeader(b, "PRODUCT PERFORMANCE ANALYSIS")

	if data.HasPeakDay {
		fmt.Fprintf(b, "Best Selling Day: %s (%s)\n", data.PeakDay.Date, money(data.PeakDay.Revenue))
	} else {
		b.WriteString("Best Selling Day: N/A\n")
	}

	if len(data.LowProducts) > 0 {
		b.WriteString("\nLow Performing Products:\n")
		for _, p := range data.LowProducts {
			fmt.Fprintf(b, "- %s: Qty=%d, Revenue=%s\n", p.ProductName, p.TotalQuantity, money(p.TotalRevenue))
		}
	} else {
		b.WriteString("\nLow Performing Products: None\n")
	}

	b.WriteString("\nAverage Transaction Value per Region:\n")
	for _, r := range data.Regions {
		avg := r.TotalSales / float64(r.TransactionCount)
		fmt.Fprintf(b, "%s: %s\n", r.Region, money(avg))
	}
}

func writeEnrichmentSummary(b *strings.Builder, data Data) {
	b.WriteString("\n\n")
	writeSectionHeader(b, "API ENRICHMENT SUMMARY")
	fmt.Fprintf(b, "Total Products Enriched: %d\n", data.EnrichedMatched)
	fmt.Fprintf(b, "Success Rate: %.2f%%\n", data.SuccessRate)

	if len(data.FailedProducts) > 0 {
		b.WriteString("Products Not Enriched:\n")
		for _, name := range data.FailedProducts {
			fmt.Fprintf(b, "- %s\n", name)
		}
	} else {
		b.WriteString("Products Not Enriched: None\n")
	}
}

func writeSectionHeader(b *strings.Builder, title string) {
	fmt.Fprintf(b, "%s\n%s\n", title, strings.Repeat("-", sectionWidth))
}
