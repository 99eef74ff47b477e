package pipeline

import "sort"

// isValid applies the business rules a well-formed transaction must satisfy.
func isValid(t Transaction) bool {
	if t.Quantity <= 0 || t.UnitPrice <= 0 {
		return false
	}
	if len(t.TransactionID) == 0 || t.TransactionID[0] != 'T' {
		return false
	}
	if len(t.ProductID) == 0 || t.ProductID[0] != 'P' {
		return false
	}
	if len(t.CustomerID) == 0 || t.CustomerID[0] != 'C' {
		return false
	}
	if t.Region == "" {
		return false
	}
	return true
}

// ValidateAndFilter drops invalid transactions and then applies the optional
// filters in a fixed order: region, minimum amount, maximum amount. It returns
// the surviving transactions, the count of invalid records, and a summary.
// The invariant len(valid) + invalid == len(input) holds before filtering.
func ValidateAndFilter(transactions []Transaction, opts FilterOptions) ([]Transaction, int, FilterSummary) {
	valid := make([]Transaction, 0, len(transactions))
	invalidCount := 0

	for _, t := range transactions {
		if !isValid(t) {
			invalidCount++
			continue
		}
		valid = append(valid, t)
	}

	filtered := valid
	filteredByRegion := 0
	filteredByAmount := 0

	if opts.Region != nil {
		kept := filtered[:0:0]
		for _, t := range filtered {
			if t.Region == *opts.Region {
				kept = append(kept, t)
			} else {
				filteredByRegion++
			}
		}
		filtered = kept
	}

	if opts.MinAmount != nil {
		kept := filtered[:0:0]
		for _, t := range filtered {
			if t.Amount() >= *opts.MinAmount {
				kept = append(kept, t)
			} else {
				filteredByAmount++
			}
		}
		filtered = kept
	}

	if opts.MaxAmount != nil {
		kept := filtered[:0:0]
		for _, t := range filtered {
			if t.Amount() <= *opts.MaxAmount {
				kept = append(kept, t)
			} else {
				filteredByAmount++
			}
		}
		filtered = kept
	}

	summary := FilterSummary{
		TotalInput:       len(transactions),
		Invalid:          invalidCount,
		FilteredByRegion: filteredByRegion,
		FilteredByAmount: filteredByAmount,
		FinalCount:       len(filtered),
	}

	return filtered, invalidCount, summary
}

// AvailableRegions returns the sorted distinct regions present in the input.
// Used by the interactive filter prompt to show the operator what can be chosen.
func AvailableRegions(transactions []Transaction) []string {
	seen := make(map[string]bool)
	regions := make([]string, 0)
	for _, t := range transactions {
		if !seen[t.Region] {
			seen[t.Region] = true
			regions = append(regions, t.Region)
		}
	}
	sort.Strings(regions)
	return regions
}

// AmountRange returns the minimum and maximum transaction amounts in the input.
// ok is false when the input is empty.
func AmountRange(transactions []Transaction) (min, max float64, ok bool) {
	if len(transactions) == 0 {
		return 0, 0, false
	}
	min = transactions[0].Amount()
	max = min
	for _, t := range transactions[1:] {
		amount := t.Amount()
		if amount < min {
			min = amount
		}
		if amount > max {
			max = amount
		}
	}
	return min, max, true
}
