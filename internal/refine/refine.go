// Package refine applies search, filter and sort over products already
// held in memory, without any network round trip.
package refine

import (
	"sort"
	"strings"

	"github.com/Houeta/catalog-flow/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Apply runs the full refinement pipeline: search-term match, the
// filter dimensions, then a stable sort. The input slice is never
// mutated and the function is idempotent on unchanged inputs.
func Apply(products []models.Product, searchTerm string, filter models.Filter) []models.Product {
	refined := make([]models.Product, 0, len(products))

	term := strings.ToLower(strings.TrimSpace(searchTerm))
	for _, p := range products {
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		if !filter.Matches(p) {
			continue
		}
		refined = append(refined, p)
	}

	sortProducts(refined, filter.SortBy)

	return refined
}

// matchesSearch tests a lowercased term as a substring of any searchable
// field: name, brand, description, category, or any tag.
func matchesSearch(p models.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Brand), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Category), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// sortProducts orders the slice by the active sort mode. The sort is
// stable so equal-key products keep their prior relative order.
func sortProducts(products []models.Product, sortBy models.SortOption) {
	switch sortBy {
	case models.SortByPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case models.SortByPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case models.SortByRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	default:
		// Name ordering is locale-aware and case-insensitive. The
		// collator keeps internal buffers, so one is created per call
		// rather than shared.
		coll := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(products, func(i, j int) bool {
			return coll.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}
