package models_test

import (
	"testing"

	"github.com/Houeta/catalog-flow/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFilter_RemoteQuery(t *testing.T) {
	t.Run("default filter sends only paging and sort", func(t *testing.T) {
		query := models.DefaultFilter().RemoteQuery(0, 20, "")

		assert.Equal(t, "0", query.Get("page"))
		assert.Equal(t, "20", query.Get("size"))
		assert.Equal(t, "name", query.Get("sortField"))
		assert.Equal(t, "ASC", query.Get("direction"))

		for _, absent := range []string{"filter[name]", "category", "brand", "color", "minPrice", "maxPrice", "inStock"} {
			assert.NotContains(t, query, absent)
		}
	})

	t.Run("search term included only when non-empty", func(t *testing.T) {
		filter := models.DefaultFilter()

		assert.NotContains(t, filter.RemoteQuery(0, 20, ""), "filter[name]")
		assert.Equal(t, "phone", filter.RemoteQuery(0, 20, "phone").Get("filter[name]"))
	})

	t.Run("sort mode mapping", func(t *testing.T) {
		testCases := []struct {
			sortBy    models.SortOption
			field     string
			direction string
		}{
			{models.SortByName, "name", "ASC"},
			{models.SortByPriceAsc, "price", "ASC"},
			{models.SortByPriceDesc, "price", "DESC"},
			{models.SortByRating, "rating", "DESC"},
		}

		for _, tc := range testCases {
			filter := models.DefaultFilter()
			filter.SortBy = tc.sortBy
			query := filter.RemoteQuery(0, 20, "")

			assert.Equal(t, tc.field, query.Get("sortField"), "sortBy=%s", tc.sortBy)
			assert.Equal(t, tc.direction, query.Get("direction"), "sortBy=%s", tc.sortBy)
		}
	})

	t.Run("single category is sent, multi-category stays local", func(t *testing.T) {
		filter := models.DefaultFilter()

		filter.Categories = []string{"Electronics"}
		assert.Equal(t, "Electronics", filter.RemoteQuery(0, 20, "").Get("category"))

		filter.Categories = []string{"Electronics", "Computers"}
		assert.NotContains(t, filter.RemoteQuery(0, 20, ""), "category")
	})

	t.Run("All pseudo-category places no restriction", func(t *testing.T) {
		filter := models.DefaultFilter()

		filter.Categories = []string{"All"}
		assert.NotContains(t, filter.RemoteQuery(0, 20, ""), "category")

		// "All" plus one concrete category still projects to the single value.
		filter.Categories = []string{"All", "Electronics"}
		assert.Equal(t, "Electronics", filter.RemoteQuery(0, 20, "").Get("category"))
	})

	t.Run("brand and color follow the single-value contract", func(t *testing.T) {
		filter := models.DefaultFilter()
		filter.Brands = []string{"Apple"}
		filter.Colors = []string{"Black", "White"}

		query := filter.RemoteQuery(0, 20, "")
		assert.Equal(t, "Apple", query.Get("brand"))
		assert.NotContains(t, query, "color")
	})

	t.Run("price bounds sent only when diverging from full range", func(t *testing.T) {
		filter := models.DefaultFilter()
		assert.NotContains(t, filter.RemoteQuery(0, 20, ""), "minPrice")
		assert.NotContains(t, filter.RemoteQuery(0, 20, ""), "maxPrice")

		filter.MinPrice = 100
		filter.MaxPrice = 5000
		query := filter.RemoteQuery(0, 20, "")
		assert.Equal(t, "100", query.Get("minPrice"))
		assert.Equal(t, "5000", query.Get("maxPrice"))
	})

	t.Run("availability maps to the inStock flag", func(t *testing.T) {
		filter := models.DefaultFilter()
		assert.NotContains(t, filter.RemoteQuery(0, 20, ""), "inStock")

		filter.Availability = models.ShowInStock
		assert.Equal(t, "true", filter.RemoteQuery(0, 20, "").Get("inStock"))

		filter.Availability = models.ShowOutOfStock
		assert.Equal(t, "false", filter.RemoteQuery(0, 20, "").Get("inStock"))
	})
}

func TestFilter_Matches(t *testing.T) {
	product := models.Product{
		ID:           "1",
		Name:         "iPhone 15 Pro",
		Price:        999,
		Availability: models.InStock,
		Category:     "Electronics",
		Brand:        "Apple",
		Color:        "Titanium",
	}

	testCases := []struct {
		name    string
		mutate  func(*models.Filter)
		matches bool
	}{
		{"default filter matches everything", func(_ *models.Filter) {}, true},
		{"full category set is honored, not just the first", func(f *models.Filter) {
			f.Categories = []string{"Computers", "Electronics", "Accessories"}
		}, true},
		{"category mismatch", func(f *models.Filter) {
			f.Categories = []string{"Computers"}
		}, false},
		{"All category matches everything", func(f *models.Filter) {
			f.Categories = []string{"All"}
		}, true},
		{"brand membership", func(f *models.Filter) {
			f.Brands = []string{"Samsung", "Apple"}
		}, true},
		{"brand mismatch", func(f *models.Filter) {
			f.Brands = []string{"Samsung"}
		}, false},
		{"color mismatch", func(f *models.Filter) {
			f.Colors = []string{"Black"}
		}, false},
		{"price interval is inclusive", func(f *models.Filter) {
			f.MinPrice = 999
			f.MaxPrice = 999
		}, true},
		{"price below range", func(f *models.Filter) {
			f.MinPrice = 1000
		}, false},
		{"in-stock only matches available product", func(f *models.Filter) {
			f.Availability = models.ShowInStock
		}, true},
		{"out-of-stock only rejects available product", func(f *models.Filter) {
			f.Availability = models.ShowOutOfStock
		}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filter := models.DefaultFilter()
			tc.mutate(&filter)
			assert.Equal(t, tc.matches, filter.Matches(product))
		})
	}
}

func TestFilter_Equal(t *testing.T) {
	base := models.DefaultFilter()
	base.Categories = []string{"Electronics", "Computers"}
	base.Brands = []string{"Apple"}

	t.Run("set order is irrelevant", func(t *testing.T) {
		other := base
		other.Categories = []string{"Computers", "Electronics"}
		assert.True(t, base.Equal(other))
	})

	t.Run("different sort breaks equality", func(t *testing.T) {
		other := base
		other.SortBy = models.SortByRating
		assert.False(t, base.Equal(other))
	})

	t.Run("different set breaks equality", func(t *testing.T) {
		other := base
		other.Brands = []string{"Samsung"}
		assert.False(t, base.Equal(other))
	})
}

func TestFilter_LocalOnlyChangeFrom(t *testing.T) {
	t.Run("adding a category to a multi-selection is local-only", func(t *testing.T) {
		old := models.DefaultFilter()
		old.Categories = []string{"Electronics", "Computers"}

		next := old
		next.Categories = []string{"Electronics", "Computers", "Accessories"}

		assert.True(t, next.LocalOnlyChangeFrom(old, ""))
	})

	t.Run("changing sort requires a refetch", func(t *testing.T) {
		old := models.DefaultFilter()
		next := old
		next.SortBy = models.SortByPriceDesc

		assert.False(t, next.LocalOnlyChangeFrom(old, ""))
	})

	t.Run("changing price bounds requires a refetch", func(t *testing.T) {
		old := models.DefaultFilter()
		next := old
		next.MaxPrice = 500

		assert.False(t, next.LocalOnlyChangeFrom(old, ""))
	})

	t.Run("changing the single-category projection requires a refetch", func(t *testing.T) {
		old := models.DefaultFilter()
		old.Categories = []string{"Electronics"}

		next := old
		next.Categories = []string{"Electronics", "Computers"}

		// old sent category=Electronics remotely; the widened selection
		// cannot be served from a set fetched under that restriction.
		assert.False(t, next.LocalOnlyChangeFrom(old, ""))
	})
}
