package pipeline

import (
	"strconv"
	"strings"
)

// fieldCount is the exact number of pipe-delimited fields in a well-formed row:
// TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
const fieldCount = 8

// ParseLines converts raw delimited lines (header already stripped) into
// Transaction records. Malformed lines are silently skipped: a wrong field
// count or an unparseable numeric field means the row simply never existed.
// The function is pure and never returns an error.
func ParseLines(lines []string) []Transaction {
	transactions := make([]Transaction, 0, len(lines))

	for _, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) != fieldCount {
			continue
		}

		// Product names sometimes carry stray commas from the export; strip them.
		productName := strings.ReplaceAll(parts[3], ",", "")

		quantity, err := strconv.Atoi(strings.ReplaceAll(parts[4], ",", ""))
		if err != nil {
			continue
		}
		unitPrice, err := strconv.ParseFloat(strings.ReplaceAll(parts[5], ",", ""), 64)
		if err != nil {
			continue
		}

		transactions = append(transactions, Transaction{
			TransactionID: parts[0],
			Date:          parts[1],
			ProductID:     parts[2],
			ProductName:   productName,
			Quantity:      quantity,
			UnitPrice:     unitPrice,
			CustomerID:    parts[6],
			Region:        parts[7],
		})
	}

	return transactions
}
