// Package session owns the catalog browsing state: the accumulated and
// displayed product lists, the pagination cursor, and the decision
// whether a command needs the network or can be satisfied from memory.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Houeta/catalog-flow/internal/fetcher"
	"github.com/Houeta/catalog-flow/internal/models"
	"github.com/Houeta/catalog-flow/internal/refine"
)

// Phase is the session's coarse state machine position.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseFetching Phase = "fetching"
	PhaseError    Phase = "error"
)

// Session is the single owner of catalog browsing state. Commands may
// arrive from any goroutine; state mutation is serialized internally
// and at most one fetch is in flight at a time. A command that would
// start a second fetch is a no-op, not queued.
type Session struct {
	log       *slog.Logger
	fetcher   PageFetcher
	analytics Recorder
	pageSize  int

	mu            sync.Mutex
	phase         Phase
	accumulated   []models.Product
	displayed     []models.Product
	currentPage   int
	totalPages    int
	totalProducts int
	hasMore       bool
	inFlight      bool
	filter        models.Filter
	searchTerm    string
	errMsg        string
	closed        bool

	// gen invalidates in-flight results: bumped on reset and Close so a
	// late completion cannot overwrite newer state.
	gen uint64

	// last issued request, so Retry can repeat it verbatim.
	lastPage    int
	lastReset   bool
	lastReplace bool

	subs    map[uint64]func(Snapshot)
	nextSub uint64
}

// New creates an idle session. recorder may be nil when no analytics
// sink is attached.
func New(log *slog.Logger, pageFetcher PageFetcher, recorder Recorder, pageSize int) *Session {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Session{
		log:       log,
		fetcher:   pageFetcher,
		analytics: recorder,
		pageSize:  pageSize,
		phase:     PhaseIdle,
		filter:    models.DefaultFilter(),
		hasMore:   true,
		subs:      make(map[uint64]func(Snapshot)),
	}
}

// LoadProducts fetches a page for the given filter and search term.
// With refresh, the accumulated list, cursor and totals are reset and
// page zero is fetched; without it the current page is re-requested.
func (s *Session) LoadProducts(ctx context.Context, filter models.Filter, searchTerm string, refresh bool) error {
	if refresh {
		return s.loadPage(ctx, filter, searchTerm, 0, true, true)
	}

	s.mu.Lock()
	page := s.currentPage
	s.mu.Unlock()

	return s.loadPage(ctx, filter, searchTerm, page, false, false)
}

// LoadMore fetches the next page and appends it. It is guarded: nothing
// happens unless there is more data, no fetch is in flight, and the
// filter and search term match the ones the session last loaded under.
func (s *Session) LoadMore(ctx context.Context, filter models.Filter, searchTerm string) error {
	s.mu.Lock()
	if !s.hasMore || s.inFlight || searchTerm != s.searchTerm || !filter.Equal(s.filter) {
		s.mu.Unlock()
		return nil
	}
	nextPage := s.currentPage + 1
	s.mu.Unlock()

	return s.loadPage(ctx, filter, searchTerm, nextPage, false, false)
}

// ApplyFilter installs a new filter. When the change keeps the remote
// query identical (a purely local-only narrowing) and the search term
// is unchanged, the displayed list is re-derived from the accumulated
// set without a network call. Any other change refetches from page
// zero; when in doubt, refetching is the correct choice.
func (s *Session) ApplyFilter(ctx context.Context, filter models.Filter, searchTerm string) error {
	const opn = "session.ApplyFilter"

	s.analytics.RecordEvent(ctx, "filter_applied", map[string]any{
		"categories": filter.Categories,
		"brands":     filter.Brands,
		"sort":       string(filter.SortBy),
	})

	s.mu.Lock()
	if len(s.accumulated) > 0 && !s.inFlight &&
		searchTerm == s.searchTerm && filter.LocalOnlyChangeFrom(s.filter, searchTerm) {
		s.filter = filter
		s.refreshDisplayedLocked()
		s.phase = PhaseIdle
		s.errMsg = ""
		s.log.DebugContext(ctx, "Filter satisfied from accumulated set", "op", opn)
		snap, subs := s.snapshotLocked()
		s.mu.Unlock()
		notify(subs, snap)
		return nil
	}
	s.mu.Unlock()

	return s.loadPage(ctx, filter, searchTerm, 0, true, true)
}

// SearchProducts applies a search term. When products are already
// accumulated and the term changed, the search runs instantly over the
// in-memory set; otherwise a refresh fetch seeded with the term is
// issued.
func (s *Session) SearchProducts(ctx context.Context, searchTerm string, filter models.Filter) error {
	const opn = "session.SearchProducts"

	s.mu.Lock()
	if len(s.accumulated) > 0 && !s.inFlight && searchTerm != s.searchTerm {
		s.searchTerm = searchTerm
		s.filter = filter
		s.refreshDisplayedLocked()
		s.phase = PhaseIdle
		s.errMsg = ""
		s.log.DebugContext(ctx, "Search satisfied from accumulated set", "op", opn, "term", searchTerm)
		resultCount := len(s.displayed)
		snap, subs := s.snapshotLocked()
		s.mu.Unlock()
		if searchTerm != "" {
			s.analytics.RecordSearch(ctx, searchTerm, resultCount)
		}
		notify(subs, snap)
		return nil
	}
	s.mu.Unlock()

	return s.loadPage(ctx, filter, searchTerm, 0, true, true)
}

// ClearSearch drops the active search term and reloads from page zero.
func (s *Session) ClearSearch(ctx context.Context, filter models.Filter) error {
	return s.loadPage(ctx, filter, "", 0, true, true)
}

// Refresh discards accumulated state and reloads page zero.
func (s *Session) Refresh(ctx context.Context, filter models.Filter, searchTerm string) error {
	return s.loadPage(ctx, filter, searchTerm, 0, true, true)
}

// GoToPage jumps to an exact page. The page replaces the displayed set
// verbatim. Out-of-range targets are a no-op.
func (s *Session) GoToPage(ctx context.Context, page int, filter models.Filter, searchTerm string) error {
	s.mu.Lock()
	if page < 0 || page >= s.totalPages {
		s.mu.Unlock()
		return nil
	}
	from := s.currentPage
	s.mu.Unlock()

	s.analytics.RecordEvent(ctx, "catalog_page_changed", map[string]any{
		"from_page": from,
		"to_page":   page,
	})

	return s.loadPage(ctx, filter, searchTerm, page, false, true)
}

// Retry repeats the exact request that failed. It is a no-op unless the
// session is in the error state.
func (s *Session) Retry(ctx context.Context) error {
	s.mu.Lock()
	if s.phase != PhaseError || s.inFlight {
		s.mu.Unlock()
		return nil
	}
	filter, term := s.filter, s.searchTerm
	page, reset, replace := s.lastPage, s.lastReset, s.lastReplace
	s.mu.Unlock()

	return s.loadPage(ctx, filter, term, page, reset, replace)
}

// Close tears the session down: any in-flight result is discarded and
// subscribers are detached.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.gen++
	s.subs = nil
}

// loadPage is the single fetch path. reset clears accumulated state and
// counters before the request; replace installs the fetched page
// verbatim instead of appending and re-refining.
func (s *Session) loadPage(
	ctx context.Context,
	filter models.Filter,
	searchTerm string,
	page int,
	reset, replace bool,
) error {
	const opn = "session.loadPage"
	log := s.log.With("op", opn)

	s.mu.Lock()
	if s.closed || s.inFlight {
		s.mu.Unlock()
		log.DebugContext(ctx, "Fetch skipped", "inFlight", s.inFlight)
		return nil
	}

	if reset {
		s.accumulated = nil
		s.displayed = nil
		s.currentPage = 0
		s.totalPages = 0
		s.totalProducts = 0
		s.hasMore = true
		s.gen++
	}

	s.inFlight = true
	s.phase = PhaseFetching
	s.errMsg = ""
	s.filter = filter
	s.searchTerm = searchTerm
	s.lastPage, s.lastReset, s.lastReplace = page, reset, replace
	gen := s.gen
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()
	notify(subs, snap)

	result, err := s.fetcher.FetchPage(ctx, filter, searchTerm, page, s.pageSize)

	s.mu.Lock()
	if s.closed || s.gen != gen {
		// The session was reset or torn down while the request was in
		// flight; the late result must not overwrite newer state.
		s.mu.Unlock()
		log.DebugContext(ctx, "Discarding stale fetch result", "page", page)
		return nil
	}
	s.inFlight = false

	if err != nil {
		s.phase = PhaseError
		s.errMsg = humanMessage(err)
		snap, subs = s.snapshotLocked()
		s.mu.Unlock()
		log.ErrorContext(ctx, "Catalog fetch failed", "page", page, "error", err)
		notify(subs, snap)
		return fmt.Errorf("%s: %w", opn, err)
	}

	s.phase = PhaseIdle
	s.totalPages = valueOr(result.TotalPages, 1)
	s.totalProducts = valueOr(result.TotalElements, len(result.Products))
	s.currentPage = valueOr(result.CurrentPage, page)
	s.hasMore = result.HasMore

	if replace {
		s.accumulated = result.Products
		s.displayed = result.Products
	} else {
		s.accumulated = append(s.accumulated, result.Products...)
		s.refreshDisplayedLocked()
	}

	resultCount := len(s.displayed)
	snap, subs = s.snapshotLocked()
	s.mu.Unlock()

	log.InfoContext(ctx, "Catalog page loaded",
		"page", snap.CurrentPage, "fetched", len(result.Products),
		"displayed", resultCount, "hasMore", snap.HasMore)

	if searchTerm != "" {
		s.analytics.RecordSearch(ctx, searchTerm, resultCount)
		if resultCount == 0 {
			s.analytics.RecordEvent(ctx, "empty_search_results", map[string]any{"term": searchTerm})
		}
	}
	s.analytics.RecordEvent(ctx, "catalog_page_loaded", map[string]any{
		"page":        snap.CurrentPage,
		"total_pages": snap.TotalPages,
		"count":       len(result.Products),
	})

	notify(subs, snap)
	return nil
}

// refreshDisplayedLocked re-derives the displayed list from the
// accumulated set under the active term and filter. Caller holds mu.
func (s *Session) refreshDisplayedLocked() {
	s.displayed = refine.Apply(s.accumulated, s.searchTerm, s.filter)
}

func valueOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

// humanMessage extracts the user-facing message from a fetch error.
func humanMessage(err error) string {
	var fe *fetcher.Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return err.Error()
}
