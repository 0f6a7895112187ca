package session

import (
	"context"

	"github.com/Houeta/catalog-flow/internal/models"
)

// PageFetcher performs one remote paged catalog fetch. Implemented by
// fetcher.Client; substituted with a fake in tests.
type PageFetcher interface {
	FetchPage(ctx context.Context, filter models.Filter, searchTerm string, page, size int) (*models.PageResult, error)
}

// Recorder is the fire-and-forget analytics sink. Implementations must
// never fail the caller; errors are swallowed and logged internally.
type Recorder interface {
	RecordSearch(ctx context.Context, term string, resultCount int)
	RecordEvent(ctx context.Context, name string, attrs map[string]any)
}

type nopRecorder struct{}

func (nopRecorder) RecordSearch(context.Context, string, int)           {}
func (nopRecorder) RecordEvent(context.Context, string, map[string]any) {}
