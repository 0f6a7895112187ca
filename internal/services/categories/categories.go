// Package categories maintains the category list feeding the filter
// sheet: the remote names with "All" always first and duplicates
// collapsed case-insensitively.
package categories

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// allCategory is always the first entry of the published list.
const allCategory = "All"

// Fetcher retrieves the raw category names from the backend.
type Fetcher interface {
	FetchCategories(ctx context.Context) ([]string, error)
}

// Service loads and normalizes the category list.
type Service struct {
	log     *slog.Logger
	fetcher Fetcher
}

// New creates a category service.
func New(log *slog.Logger, fetcher Fetcher) *Service {
	return &Service{log: log, fetcher: fetcher}
}

// Load fetches the category names and returns them with "All"
// prepended. Remote duplicates and remote "all" entries are dropped,
// comparing case-insensitively; the first-seen casing wins.
func (s *Service) Load(ctx context.Context) ([]string, error) {
	const opn = "categories.Load"

	names, err := s.fetcher.FetchCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to fetch categories: %w", opn, err)
	}

	result := []string{allCategory}
	seen := map[string]struct{}{strings.ToLower(allCategory): {}}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, strings.TrimSpace(name))
	}

	s.log.DebugContext(ctx, "Categories loaded", "op", opn, "count", len(result)-1)

	return result, nil
}
