// Package mocks contains testify mocks for the session's ports.
package mocks

import (
	"context"

	"github.com/Houeta/catalog-flow/internal/models"
	"github.com/stretchr/testify/mock"
)

// PageFetcher is a mock of session.PageFetcher.
type PageFetcher struct {
	mock.Mock
}

func (m *PageFetcher) FetchPage(
	ctx context.Context,
	filter models.Filter,
	searchTerm string,
	page, size int,
) (*models.PageResult, error) {
	args := m.Called(ctx, filter, searchTerm, page, size)

	var result *models.PageResult
	if args.Get(0) != nil {
		result = args.Get(0).(*models.PageResult)
	}
	return result, args.Error(1)
}

// Recorder is a mock of session.Recorder.
type Recorder struct {
	mock.Mock
}

func (m *Recorder) RecordSearch(ctx context.Context, term string, resultCount int) {
	m.Called(ctx, term, resultCount)
}

func (m *Recorder) RecordEvent(ctx context.Context, name string, attrs map[string]any) {
	m.Called(ctx, name, attrs)
}

// CategoryFetcher is a mock of categories.Fetcher.
type CategoryFetcher struct {
	mock.Mock
}

func (m *CategoryFetcher) FetchCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)

	var names []string
	if args.Get(0) != nil {
		names = args.Get(0).([]string)
	}
	return names, args.Error(1)
}
