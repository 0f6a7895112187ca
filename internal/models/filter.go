package models

import (
	"net/url"
	"strconv"
	"strings"
)

// SortOption selects the ordering of a product list.
type SortOption string

const (
	SortByName      SortOption = "name"
	SortByPriceAsc  SortOption = "priceAsc"
	SortByPriceDesc SortOption = "priceDesc"
	SortByRating    SortOption = "rating"
)

// APIField maps the sort option to the remote sort field name.
func (s SortOption) APIField() string {
	switch s {
	case SortByPriceAsc, SortByPriceDesc:
		return "price"
	case SortByRating:
		return "rating"
	default:
		return "name"
	}
}

// APIDirection maps the sort option to the remote sort direction.
func (s SortOption) APIDirection() string {
	switch s {
	case SortByPriceDesc, SortByRating:
		return "DESC"
	default:
		return "ASC"
	}
}

// AvailabilityMode restricts a result set by stock state.
type AvailabilityMode string

const (
	ShowAll        AvailabilityMode = "all"
	ShowInStock    AvailabilityMode = "inStock"
	ShowOutOfStock AvailabilityMode = "outOfStock"
)

// Full price range bounds. A filter whose bounds match these sends no
// price parameters remotely and skips the local price step.
const (
	FullPriceMin = 0.0
	FullPriceMax = 100000.0
)

// allCategory is the pseudo-category meaning "no category restriction".
const allCategory = "All"

// Filter describes the active catalog selections. It is passed by value
// and never mutated after being applied; a new value replaces the old.
//
// Categories, Brands and Colors are set-like: order and duplicates are
// irrelevant for equality and matching.
type Filter struct {
	Categories   []string
	Brands       []string
	Colors       []string
	MinPrice     float64
	MaxPrice     float64
	SortBy       SortOption
	Availability AvailabilityMode
}

// DefaultFilter returns the unrestricted filter: full price range,
// name ordering, every availability state.
func DefaultFilter() Filter {
	return Filter{
		MinPrice:     FullPriceMin,
		MaxPrice:     FullPriceMax,
		SortBy:       SortByName,
		Availability: ShowAll,
	}
}

// RemoteQuery produces the canonical query parameter set for one paged
// request. The remote contract accepts at most a single category, brand
// and color, so those are sent only when exactly one non-"All" value is
// selected; multi-value selections stay a local-only refinement.
func (f Filter) RemoteQuery(page, size int, searchTerm string) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	query.Set("sortField", f.SortBy.APIField())
	query.Set("direction", f.SortBy.APIDirection())

	if searchTerm != "" {
		query.Set("filter[name]", searchTerm)
	}

	if category, ok := singleSelection(f.Categories); ok {
		query.Set("category", category)
	}
	if brand, ok := singleSelection(f.Brands); ok {
		query.Set("brand", brand)
	}
	if color, ok := singleSelection(f.Colors); ok {
		query.Set("color", color)
	}

	if f.MinPrice > FullPriceMin {
		query.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice < FullPriceMax {
		query.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}

	switch f.Availability {
	case ShowInStock:
		query.Set("inStock", "true")
	case ShowOutOfStock:
		query.Set("inStock", "false")
	}

	return query
}

// Matches tests every filter dimension against a single product,
// including the ones the remote contract cannot express: the full
// category/brand/color sets, not just their single-value projection.
func (f Filter) Matches(p Product) bool {
	if !matchesSet(f.Categories, p.Category) {
		return false
	}
	if !matchesSet(f.Brands, p.Brand) {
		return false
	}
	if !matchesSet(f.Colors, p.Color) {
		return false
	}
	if p.Price < f.MinPrice || p.Price > f.MaxPrice {
		return false
	}
	switch f.Availability {
	case ShowInStock:
		return p.IsAvailable()
	case ShowOutOfStock:
		return !p.IsAvailable()
	}
	return true
}

// Equal reports structural equality; the set-like fields compare
// regardless of order.
func (f Filter) Equal(other Filter) bool {
	return f.SortBy == other.SortBy &&
		f.Availability == other.Availability &&
		f.MinPrice == other.MinPrice &&
		f.MaxPrice == other.MaxPrice &&
		sameSet(f.Categories, other.Categories) &&
		sameSet(f.Brands, other.Brands) &&
		sameSet(f.Colors, other.Colors)
}

// LocalOnlyChangeFrom reports whether switching from old to f keeps the
// remote query unchanged, meaning the change lives entirely in the
// local-only dimensions and an accumulated set fetched under old is
// still a superset of everything f can show. Anything that alters the
// remote query (sort, price bounds, availability, the single-value
// category/brand/color projection) requires a refetch.
func (f Filter) LocalOnlyChangeFrom(old Filter, searchTerm string) bool {
	return f.RemoteQuery(0, 0, searchTerm).Encode() == old.RemoteQuery(0, 0, searchTerm).Encode()
}

// singleSelection returns the one concrete value of a set-like slice,
// ignoring the "All" pseudo-entry. ok is false for empty or multi-value
// selections.
func singleSelection(values []string) (string, bool) {
	var selected []string
	for _, v := range values {
		if !strings.EqualFold(v, allCategory) {
			selected = append(selected, v)
		}
	}
	if len(selected) == 1 {
		return selected[0], true
	}
	return "", false
}

// matchesSet tests set membership; an empty set or one containing "All"
// places no restriction.
func matchesSet(values []string, candidate string) bool {
	restricted := false
	for _, v := range values {
		if strings.EqualFold(v, allCategory) {
			return true
		}
		restricted = true
		if v == candidate {
			return true
		}
	}
	return !restricted
}

// sameSet compares two set-like slices ignoring order and duplicates.
func sameSet(a, b []string) bool {
	seen := make(map[string]struct{}, len(a))
	for _, v := range a {
		seen[v] = struct{}{}
	}
	other := make(map[string]struct{}, len(b))
	for _, v := range b {
		if _, ok := seen[v]; !ok {
			return false
		}
		other[v] = struct{}{}
	}
	return len(seen) == len(other)
}
