package catalog

// Product is one entry of the remote product catalog.
type Product struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
}

// Mapping indexes catalog products by their integer id for enrichment lookups.
type Mapping map[int]Product

// NewMapping builds a Mapping from a product list. Entries without an id are skipped.
func NewMapping(products []Product) Mapping {
	mapping := make(Mapping, len(products))
	for _, p := range products {
		if p.ID == 0 {
			continue
		}
		mapping[p.ID] = p
	}
	return mapping
}
