package models

// PageResult is the canonical form of one fetched catalog page,
// whatever payload shape the backend produced. The metadata fields are
// optional because not every backend reports them.
type PageResult struct {
	Products      []Product
	TotalElements *int
	TotalPages    *int
	CurrentPage   *int
	Size          *int
	HasMore       bool
}

// DeriveHasMore implements the paging invariant: when both the total
// page count and the current page are known, there is more data exactly
// while current < total-1. Otherwise fullness of the page relative to
// the requested size is the only signal available.
func DeriveHasMore(totalPages, currentPage *int, returned, requested int) bool {
	if totalPages != nil && currentPage != nil {
		return *currentPage < *totalPages-1
	}
	return requested > 0 && returned >= requested
}
