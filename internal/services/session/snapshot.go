package session

import (
	"fmt"

	"github.com/Houeta/catalog-flow/internal/models"
)

// Snapshot is a read-only copy of the session state published to the
// consuming layer. The UI never mutates session state; it issues
// commands and observes snapshots.
type Snapshot struct {
	Phase         Phase
	Products      []models.Product // displayed list, after local refinement
	CurrentPage   int
	TotalPages    int
	TotalProducts int
	PageSize      int
	HasMore       bool
	Filter        models.Filter
	SearchTerm    string
	ErrorMessage  string
}

// Loading reports whether a fetch is currently in flight.
func (s Snapshot) Loading() bool {
	return s.Phase == PhaseFetching
}

// CanGoPrevious reports whether a previous page exists.
func (s Snapshot) CanGoPrevious() bool {
	return s.CurrentPage > 0
}

// CanGoNext reports whether a following page exists.
func (s Snapshot) CanGoNext() bool {
	return s.CurrentPage < s.TotalPages-1
}

// PaginationInfo renders the position string shown under the product
// list, e.g. "Showing 21-40 of 97 products".
func (s Snapshot) PaginationInfo() string {
	if s.TotalProducts == 0 {
		return "No products found"
	}
	start := s.CurrentPage*s.PageSize + 1
	end := (s.CurrentPage + 1) * s.PageSize
	if end > s.TotalProducts {
		end = s.TotalProducts
	}
	return fmt.Sprintf("Showing %d-%d of %d products", start, end, s.TotalProducts)
}

// Snapshot returns the current state as a detached copy.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, _ := s.snapshotLocked()
	return snap
}

// Subscribe registers fn to be called with a fresh snapshot after every
// state change. The returned function removes the subscription.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.subs != nil {
			delete(s.subs, id)
		}
	}
}

// snapshotLocked builds a detached snapshot and collects the current
// subscriber list. Caller holds mu; the callbacks must be invoked after
// releasing it.
func (s *Session) snapshotLocked() (Snapshot, []func(Snapshot)) {
	products := make([]models.Product, len(s.displayed))
	copy(products, s.displayed)

	snap := Snapshot{
		Phase:         s.phase,
		Products:      products,
		CurrentPage:   s.currentPage,
		TotalPages:    s.totalPages,
		TotalProducts: s.totalProducts,
		PageSize:      s.pageSize,
		HasMore:       s.hasMore,
		Filter:        s.filter,
		SearchTerm:    s.searchTerm,
		ErrorMessage:  s.errMsg,
	}

	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return snap, subs
}

func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
