package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX exports the same figures as the text report into an Excel
// workbook, one sheet per section.
func WriteXLSX(path string, data Data) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("WriteXLSX: creating output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, data); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}
	if err := writeRegionsSheet(f, data); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}
	if err := writeProductsSheet(f, data); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}
	if err := writeCustomersSheet(f, data); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}
	if err := writeDailySheet(f, data); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}
	if err := writeEnrichmentSheet(f, data); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("WriteXLSX: saving %q: %w", path, err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, data Data) error {
	const sheet = "Summary"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Generated", data.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Run ID", data.RunID},
		{"Records Processed", data.RecordCount},
		{"Total Revenue", data.TotalRevenue},
		{"Average Order Value", data.AvgOrderValue},
		{"Date Range", fmt.Sprintf("%s to %s", data.StartDate, data.EndDate)},
	}
	return writeRows(f, sheet, rows)
}

func writeRegionsSheet(f *excelize.File, data Data) error {
	const sheet = "Regions"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{{"Region", "Sales", "% of Total", "Transactions", "Avg Transaction Value"}}
	for _, r := range data.Regions {
		avg := r.TotalSales / float64(r.TransactionCount)
		rows = append(rows, []interface{}{r.Region, r.TotalSales, r.Percentage, r.TransactionCount, avg})
	}
	return writeRows(f, sheet, rows)
}

func writeProductsSheet(f *excelize.File, data Data) error {
	const sheet = "Products"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{{"Rank", "Product Name", "Qty Sold", "Revenue"}}
	for i, p := range data.TopProducts {
		rows = append(rows, []interface{}{i + 1, p.ProductName, p.TotalQuantity, p.TotalRevenue})
	}

	rows = append(rows, []interface{}{}, []interface{}{"Low Performing Products"})
	for _, p := range data.LowProducts {
		rows = append(rows, []interface{}{"", p.ProductName, p.TotalQuantity, p.TotalRevenue})
	}
	return writeRows(f, sheet, rows)
}

func writeCustomersSheet(f *excelize.File, data Data) error {
	const sheet = "Customers"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{{"Rank", "Customer ID", "Total Spent", "Orders", "Avg Order Value", "Products"}}
	for i, c := range data.Customers {
		if i >= data.TopCustomers {
			break
		}
		rows = append(rows, []interface{}{
			i + 1, c.CustomerID, c.TotalSpent, c.PurchaseCount, c.AvgOrderValue,
			strings.Join(c.Products, ", "),
		})
	}
	return writeRows(f, sheet, rows)
}

func writeDailySheet(f *excelize.File, data Data) error {
	const sheet = "Daily Trend"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{{"Date", "Revenue", "Transactions", "Unique Customers"}}
	for _, d := range data.Daily {
		rows = append(rows, []interface{}{d.Date, d.Revenue, d.TransactionCount, d.UniqueCustomers})
	}
	if data.HasPeakDay {
		rows = append(rows, []interface{}{}, []interface{}{"Peak Day", data.PeakDay.Date, data.PeakDay.Revenue, data.PeakDay.TransactionCount})
	}
	return writeRows(f, sheet, rows)
}

func writeEnrichmentSheet(f *excelize.File, data Data) error {
	const sheet = "Enrichment"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Total Records", data.EnrichedTotal},
		{"Successfully Enriched", data.EnrichedMatched},
		{"Success Rate %", data.SuccessRate},
		{},
		{"Products Not Enriched"},
	}
	for _, name := range data.FailedProducts {
		rows = append(rows, []interface{}{name})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
