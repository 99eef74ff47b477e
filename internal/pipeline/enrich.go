package pipeline

import (
	"strconv"
	"strings"

	"github.com/dvloznov/sales-insights/internal/catalog"
)

// Enrich joins catalog metadata onto each transaction. The product key is the
// numeric suffix of ProductID (leading "P" stripped); an unparseable suffix or
// a miss in the mapping yields APIMatch=false with nil metadata. The input
// transactions are never mutated; each output embeds a fresh copy.
func Enrich(transactions []Transaction, mapping catalog.Mapping) []EnrichedTransaction {
	enriched := make([]EnrichedTransaction, 0, len(transactions))

	for _, t := range transactions {
		e := EnrichedTransaction{Transaction: t}

		if product, ok := lookupProduct(t.ProductID, mapping); ok {
			category := product.Category
			brand := product.Brand
			rating := product.Rating
			e.APICategory = &category
			e.APIBrand = &brand
			e.APIRating = &rating
			e.APIMatch = true
		}

		enriched = append(enriched, e)
	}

	return enriched
}

func lookupProduct(productID string, mapping catalog.Mapping) (catalog.Product, bool) {
	id, err := strconv.Atoi(strings.TrimPrefix(productID, "P"))
	if err != nil {
		return catalog.Product{}, false
	}
	product, ok := mapping[id]
	return product, ok
}
