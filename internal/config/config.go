package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

var ErrEmptyAPIURL = errors.New(
	"error getting CATALOG_API_URL: variable not specified or contains an empty string")

type Config struct {
	Env         string // Env is the current environment: local, dev, prod.
	HistoryPath string // HistoryPath is the sqlite file for the analytics history.
	API         API
}

type API struct {
	BaseURL  string        // BaseURL is the catalog API root.
	Timeout  time.Duration // Timeout bounds every single remote request.
	PageSize int           // PageSize is the number of products requested per page.
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("CATALOG")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("PAGE_SIZE", 20)
	viper.SetDefault("HISTORY_PATH", "history.db")

	if viper.GetString("API_URL") == "" {
		panic(ErrEmptyAPIURL)
	}

	return &Config{
		Env:         viper.GetString("ENV"),
		HistoryPath: viper.GetString("HISTORY_PATH"),
		API: API{
			BaseURL:  viper.GetString("API_URL"),
			Timeout:  viper.GetDuration("API_TIMEOUT"),
			PageSize: viper.GetInt("PAGE_SIZE"),
		},
	}
}
