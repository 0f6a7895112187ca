package categories_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Houeta/catalog-flow/internal/services/categories"
	"github.com/Houeta/catalog-flow/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*categories.Service, *mocks.CategoryFetcher) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := new(mocks.CategoryFetcher)

	return categories.New(logger, fetcher), fetcher
}

func TestService_Load(t *testing.T) {
	testCases := []struct {
		name     string
		remote   []string
		expected []string
	}{
		{
			name:     "all is prepended",
			remote:   []string{"Electronics", "Computers"},
			expected: []string{"All", "Electronics", "Computers"},
		},
		{
			name:     "remote all entry is dropped",
			remote:   []string{"all", "Electronics", "ALL"},
			expected: []string{"All", "Electronics"},
		},
		{
			name:     "duplicates collapse case-insensitively, first casing wins",
			remote:   []string{"Electronics", "electronics", "ELECTRONICS", "Books"},
			expected: []string{"All", "Electronics", "Books"},
		},
		{
			name:     "blank names are skipped and whitespace trimmed",
			remote:   []string{"", "  ", " Books ", "books"},
			expected: []string{"All", "Books"},
		},
		{
			name:     "empty remote list still yields all",
			remote:   []string{},
			expected: []string{"All"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, fetcher := newTestService(t)
			fetcher.On("FetchCategories", mock.Anything).Return(tc.remote, nil).Once()

			got, err := svc.Load(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
			fetcher.AssertExpectations(t)
		})
	}
}

func TestService_Load_FetchError(t *testing.T) {
	svc, fetcher := newTestService(t)
	fetcher.On("FetchCategories", mock.Anything).Return(nil, assert.AnError).Once()

	_, err := svc.Load(context.Background())

	require.Error(t, err)
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to fetch categories")
	fetcher.AssertExpectations(t)
}
