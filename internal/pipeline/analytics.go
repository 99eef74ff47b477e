package pipeline

import (
	"fmt"
	"math"
	"sort"
)

// RegionSales aggregates one region's share of the total.
type RegionSales struct {
	Region           string
	TotalSales       float64
	TransactionCount int
	Percentage       float64 // share of the grand total, 2 decimals
}

// ProductSales aggregates quantity and revenue per product name.
type ProductSales struct {
	ProductName   string
	TotalQuantity int
	TotalRevenue  float64
}

// CustomerStats aggregates one customer's purchase behaviour.
type CustomerStats struct {
	CustomerID    string
	TotalSpent    float64
	PurchaseCount int
	Products      []string // distinct product names, alphabetical
	AvgOrderValue float64  // TotalSpent / PurchaseCount, 2 decimals
}

// DaySales aggregates one calendar date. Dates are the raw YYYY-MM-DD group keys.
type DaySales struct {
	Date             string
	Revenue          float64
	TransactionCount int
	UniqueCustomers  int
}

// round2 rounds to two decimal places, matching how monetary figures are reported.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TotalRevenue sums the amount over all transactions, rounded to 2 decimals.
// Returns 0 on empty input.
func TotalRevenue(transactions []Transaction) float64 {
	total := 0.0
	for _, t := range transactions {
		total += t.Amount()
	}
	return round2(total)
}

// RegionWiseSales groups revenue by region and computes each region's share of
// the grand total. The result is ordered by TotalSales descending; regions with
// equal sales keep their first-seen relative order.
func RegionWiseSales(transactions []Transaction) []RegionSales {
	totals := make(map[string]*RegionSales)
	order := make([]string, 0)
	grandTotal := 0.0

	for _, t := range transactions {
		revenue := t.Amount()
		grandTotal += revenue

		entry, ok := totals[t.Region]
		if !ok {
			entry = &RegionSales{Region: t.Region}
			totals[t.Region] = entry
			order = append(order, t.Region)
		}
		entry.TotalSales += revenue
		entry.TransactionCount++
	}

	result := make([]RegionSales, 0, len(order))
	for _, region := range order {
		entry := *totals[region]
		entry.Percentage = round2(entry.TotalSales / grandTotal * 100)
		result = append(result, entry)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalSales > result[j].TotalSales
	})

	return result
}

// aggregateProducts folds transactions into per-product quantity and revenue,
// preserving first-seen product order.
func aggregateProducts(transactions []Transaction) []ProductSales {
	totals := make(map[string]*ProductSales)
	order := make([]string, 0)

	for _, t := range transactions {
		entry, ok := totals[t.ProductName]
		if !ok {
			entry = &ProductSales{ProductName: t.ProductName}
			totals[t.ProductName] = entry
			order = append(order, t.ProductName)
		}
		entry.TotalQuantity += t.Quantity
		entry.TotalRevenue += t.Amount()
	}

	result := make([]ProductSales, 0, len(order))
	for _, name := range order {
		result = append(result, *totals[name])
	}
	return result
}

// TopSellingProducts returns at most n products ordered by total quantity sold,
// descending. Ties keep first-seen relative order.
func TopSellingProducts(transactions []Transaction, n int) []ProductSales {
	products := aggregateProducts(transactions)

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].TotalQuantity > products[j].TotalQuantity
	})

	if len(products) > n {
		products = products[:n]
	}
	return products
}

// LowPerformingProducts returns products whose total quantity sold is strictly
// below threshold, ordered by quantity ascending. Revenue is rounded to 2 decimals.
func LowPerformingProducts(transactions []Transaction, threshold int) []ProductSales {
	low := make([]ProductSales, 0)
	for _, p := range aggregateProducts(transactions) {
		if p.TotalQuantity < threshold {
			p.TotalRevenue = round2(p.TotalRevenue)
			low = append(low, p)
		}
	}

	sort.SliceStable(low, func(i, j int) bool {
		return low[i].TotalQuantity < low[j].TotalQuantity
	})

	return low
}

// CustomerAnalysis aggregates spend, order count, distinct products and average
// order value per customer, ordered by TotalSpent descending (stable).
func CustomerAnalysis(transactions []Transaction) []CustomerStats {
	type accumulator struct {
		stats    CustomerStats
		products map[string]bool
	}

	totals := make(map[string]*accumulator)
	order := make([]string, 0)

	for _, t := range transactions {
		acc, ok := totals[t.CustomerID]
		if !ok {
			acc = &accumulator{
				stats:    CustomerStats{CustomerID: t.CustomerID},
				products: make(map[string]bool),
			}
			totals[t.CustomerID] = acc
			order = append(order, t.CustomerID)
		}
		acc.stats.TotalSpent += t.Amount()
		acc.stats.PurchaseCount++
		acc.products[t.ProductName] = true
	}

	result := make([]CustomerStats, 0, len(order))
	for _, id := range order {
		acc := totals[id]
		for name := range acc.products {
			acc.stats.Products = append(acc.stats.Products, name)
		}
		sort.Strings(acc.stats.Products)
		acc.stats.AvgOrderValue = round2(acc.stats.TotalSpent / float64(acc.stats.PurchaseCount))
		result = append(result, acc.stats)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalSpent > result[j].TotalSpent
	})

	return result
}

// DailySalesTrend groups revenue, transaction count and unique customer count
// by date, ordered by date ascending. Dates sort lexicographically, which for
// the YYYY-MM-DD keys is also chronological.
func DailySalesTrend(transactions []Transaction) []DaySales {
	type accumulator struct {
		day       DaySales
		customers map[string]bool
	}

	totals := make(map[string]*accumulator)
	order := make([]string, 0)

	for _, t := range transactions {
		acc, ok := totals[t.Date]
		if !ok {
			acc = &accumulator{
				day:       DaySales{Date: t.Date},
				customers: make(map[string]bool),
			}
			totals[t.Date] = acc
			order = append(order, t.Date)
		}
		acc.day.Revenue += t.Amount()
		acc.day.TransactionCount++
		acc.customers[t.CustomerID] = true
	}

	sort.Strings(order)

	result := make([]DaySales, 0, len(order))
	for _, date := range order {
		acc := totals[date]
		acc.day.UniqueCustomers = len(acc.customers)
		result = append(result, acc.day)
	}

	return result
}

// FindPeakSalesDay returns the day with the highest revenue. Ties resolve to
// the earliest date. The input must be non-empty; an empty input is an error.
func FindPeakSalesDay(transactions []Transaction) (DaySales, error) {
	trend := DailySalesTrend(transactions)
	if len(trend) == 0 {
		return DaySales{}, fmt.Errorf("FindPeakSalesDay: no transactions")
	}

	peak := trend[0]
	for _, day := range trend[1:] {
		if day.Revenue > peak.Revenue {
			peak = day
		}
	}
	return peak, nil
}
