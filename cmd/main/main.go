package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Houeta/catalog-flow/internal/analytics"
	"github.com/Houeta/catalog-flow/internal/config"
	"github.com/Houeta/catalog-flow/internal/fetcher"
	"github.com/Houeta/catalog-flow/internal/models"
	"github.com/Houeta/catalog-flow/internal/services/categories"
	"github.com/Houeta/catalog-flow/internal/services/session"
	"github.com/spf13/pflag"

	_ "github.com/mattn/go-sqlite3"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application: a command-line browse
// over the configured catalog API, driving the same session engine the
// UI layer consumes.
func main() {
	searchTerm := pflag.String("search", "", "search term to apply")
	category := pflag.String("category", "", "restrict to a single category")
	pages := pflag.Int("pages", 1, "number of pages to load")
	pflag.Parse()

	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	history, err := analytics.NewHistory(ctx, logger, cfg.HistoryPath)
	if err != nil {
		log.Fatalf("Failed to init analytics history: %v", err)
	}
	defer history.Close()

	client := fetcher.NewClient(logger, cfg.API.BaseURL, cfg.API.Timeout)

	catalog := session.New(logger, client, history, cfg.API.PageSize)
	defer catalog.Close()

	unsubscribe := catalog.Subscribe(func(snap session.Snapshot) {
		if snap.Phase == session.PhaseIdle {
			logger.InfoContext(ctx, "Catalog state", "info", snap.PaginationInfo(), "shown", len(snap.Products))
		}
	})
	defer unsubscribe()

	logger.InfoContext(ctx, "Application started.")

	categoryList, err := categories.New(logger, client).Load(ctx)
	if err != nil {
		logger.WarnContext(ctx, "Failed to load categories", "error", err)
	} else {
		logger.InfoContext(ctx, "Categories available", "categories", categoryList)
	}

	filter := models.DefaultFilter()
	if *category != "" {
		filter.Categories = []string{*category}
	}

	if err = catalog.LoadProducts(ctx, filter, *searchTerm, true); err != nil {
		logger.ErrorContext(ctx, "Initial load failed", "error", err)
	}

	for page := 1; page < *pages && catalog.Snapshot().HasMore; page++ {
		if err = catalog.LoadMore(ctx, filter, *searchTerm); err != nil {
			logger.ErrorContext(ctx, "Load more failed", "error", err)
			break
		}
	}

	for _, product := range catalog.Snapshot().Products {
		logger.InfoContext(ctx, "Product",
			"id", product.ID, "name", product.Name, "price", product.Price,
			"available", product.IsAvailable())
	}

	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envLocal:
		logger = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelWarn,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelError,
			}),
		)

		logger.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return logger
}
