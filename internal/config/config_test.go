package config_test

import (
	"testing"
	"time"

	"github.com/Houeta/catalog-flow/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestMustLoad(t *testing.T) {
	t.Run("error - empty required env variable", func(t *testing.T) {
		t.Setenv("CATALOG_API_URL", "")

		assert.PanicsWithError(t, config.ErrEmptyAPIURL.Error(), func() {
			config.MustLoad()
		})
	})

	t.Run("success with defaults", func(t *testing.T) {
		t.Setenv("CATALOG_API_URL", "https://example.com")

		cfg := config.MustLoad()

		assert.Equal(t, "https://example.com", cfg.API.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.API.Timeout)
		assert.Equal(t, 20, cfg.API.PageSize)
		assert.Equal(t, "history.db", cfg.HistoryPath)
	})

	t.Run("success with overrides", func(t *testing.T) {
		t.Setenv("CATALOG_ENV", "local")
		t.Setenv("CATALOG_API_URL", "https://example.com")
		t.Setenv("CATALOG_API_TIMEOUT", "5s")
		t.Setenv("CATALOG_PAGE_SIZE", "50")
		t.Setenv("CATALOG_HISTORY_PATH", "some/path/to/db")

		cfg := config.MustLoad()

		assert.Equal(t, "local", cfg.Env)
		assert.Equal(t, 5*time.Second, cfg.API.Timeout)
		assert.Equal(t, 50, cfg.API.PageSize)
		assert.Equal(t, "some/path/to/db", cfg.HistoryPath)
	})
}
