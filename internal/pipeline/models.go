package pipeline

// Transaction represents one parsed sales record. Date is kept as the raw
// YYYY-MM-DD string because it is only ever used as a sort and group key.
type Transaction struct {
	TransactionID string  // must start with "T"
	Date          string  // ISO-like YYYY-MM-DD
	ProductID     string  // must start with "P"
	ProductName   string  // commas stripped at parse time
	Quantity      int     // must be > 0
	UnitPrice     float64 // must be > 0
	CustomerID    string  // must start with "C"
	Region        string  // must be non-empty
}

// Amount is the transaction value, recomputed wherever needed rather than stored.
func (t Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// EnrichedTransaction is a Transaction plus product metadata fetched from the
// catalog API. The API fields are nil when no catalog entry matched.
type EnrichedTransaction struct {
	Transaction

	APICategory *string
	APIBrand    *string
	APIRating   *float64
	APIMatch    bool
}

// FilterOptions narrows the validated transaction set. Nil fields disable the
// corresponding filter. Region matching is exact and case-sensitive; both
// amount bounds are inclusive and compared against Amount().
type FilterOptions struct {
	Region    *string
	MinAmount *float64
	MaxAmount *float64
}

// FilterSummary describes what ValidateAndFilter did to its input.
type FilterSummary struct {
	TotalInput       int
	Invalid          int
	FilteredByRegion int
	FilteredByAmount int
	FinalCount       int
}
