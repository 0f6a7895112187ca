package models_test

import (
	"testing"

	"github.com/Houeta/catalog-flow/internal/models"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestDeriveHasMore(t *testing.T) {
	testCases := []struct {
		name       string
		totalPages *int
		current    *int
		returned   int
		requested  int
		expected   bool
	}{
		{"middle page of five", intPtr(5), intPtr(2), 20, 20, true},
		{"last page of five", intPtr(5), intPtr(4), 7, 20, false},
		{"single page", intPtr(1), intPtr(0), 3, 20, false},
		{"no metadata, full page", nil, nil, 20, 20, true},
		{"no metadata, short page", nil, nil, 11, 20, false},
		{"no metadata, empty page", nil, nil, 0, 20, false},
		{"only total pages known falls back to fullness", intPtr(5), nil, 20, 20, true},
		{"zero requested size never has more", nil, nil, 5, 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := models.DeriveHasMore(tc.totalPages, tc.current, tc.returned, tc.requested)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestProduct_Helpers(t *testing.T) {
	t.Run("main image falls back to placeholder", func(t *testing.T) {
		assert.Equal(t, "photo", models.Product{}.MainImage())
		assert.Equal(t, "a.png", models.Product{Images: []string{"a.png", "b.png"}}.MainImage())
	})

	t.Run("equality is by id only", func(t *testing.T) {
		left := models.Product{ID: "1", Name: "iPhone"}
		right := models.Product{ID: "1", Name: "iPhone 15 Pro", Price: 999}

		assert.True(t, left.Equal(right))
		assert.False(t, left.Equal(models.Product{ID: "2", Name: "iPhone"}))
	})
}
