package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Houeta/catalog-flow/internal/models"
)

// History is a sqlite-backed recorder that additionally keeps the
// recorded searches and events queryable. It satisfies the same
// interface as LogRecorder.
type History struct {
	db  *sql.DB
	log *slog.Logger
}

// NewHistory opens (or creates) the history database at storagePath and
// prepares its schema.
func NewHistory(ctx context.Context, log *slog.Logger, storagePath string) (*History, error) {
	dtb, err := sql.Open("sqlite3", fmt.Sprintf("%s?_pragma=foreign_keys(1)", storagePath))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err = dtb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("unable to establish connection to database: %w", err)
	}

	if err = initSchema(ctx, dtb); err != nil {
		return nil, fmt.Errorf("DB schema initialization error: %w", err)
	}

	return &History{db: dtb, log: log}, nil
}

// NewHistoryForTest wraps an existing database handle; used by tests
// with a mocked connection.
func NewHistoryForTest(db *sql.DB) *History {
	return &History{db: db, log: slog.Default()}
}

// initSchema creates the history tables if they don't already exist.
func initSchema(ctx context.Context, dtb *sql.DB) error {
	const migrationQuery = `
	CREATE TABLE IF NOT EXISTS search_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		term TEXT NOT NULL,
		result_count INTEGER NOT NULL,
		recorded_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		attrs TEXT,
		recorded_at TIMESTAMP NOT NULL
	);
	`
	_, err := dtb.ExecContext(ctx, migrationQuery)
	if err != nil {
		return fmt.Errorf("failed to execute migration query: %w", err)
	}

	return nil
}

// RecordSearch stores one executed search. Storage failures are logged,
// never surfaced: analytics must not break the catalog flow.
func (h *History) RecordSearch(ctx context.Context, term string, resultCount int) {
	const opn = "analytics.History.RecordSearch"

	_, err := h.db.ExecContext(ctx,
		"INSERT INTO search_history (term, result_count, recorded_at) VALUES (?, ?, ?)",
		term, resultCount, time.Now().UTC(),
	)
	if err != nil {
		h.log.ErrorContext(ctx, "failed to record search", "op", opn, "term", term, "error", err)
	}
}

// RecordEvent stores one named event with its attributes as JSON.
func (h *History) RecordEvent(ctx context.Context, name string, attrs map[string]any) {
	const opn = "analytics.History.RecordEvent"

	encoded, err := json.Marshal(attrs)
	if err != nil {
		h.log.ErrorContext(ctx, "failed to encode event attrs", "op", opn, "event", name, "error", err)
		encoded = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx,
		"INSERT INTO events (name, attrs, recorded_at) VALUES (?, ?, ?)",
		name, string(encoded), time.Now().UTC(),
	)
	if err != nil {
		h.log.ErrorContext(ctx, "failed to record event", "op", opn, "event", name, "error", err)
	}
}

// RecentSearches returns up to limit searches, newest first.
func (h *History) RecentSearches(ctx context.Context, limit int) ([]models.SearchRecord, error) {
	const opn = "analytics.History.RecentSearches"

	rows, err := h.db.QueryContext(ctx,
		"SELECT term, result_count, recorded_at FROM search_history ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	defer rows.Close()

	var records []models.SearchRecord
	for rows.Next() {
		var rec models.SearchRecord
		if err = rows.Scan(&rec.Term, &rec.ResultCount, &rec.RecordedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan search record: %w", opn, err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return records, nil
}

// Close closes the connection to the database.
func (h *History) Close() error {
	if err := h.db.Close(); err != nil {
		h.log.Error("failed to close the database", "op", "analytics.History.Close", "error", err)
		return fmt.Errorf("failed to close the database: %w", err)
	}

	return nil
}

// DB is a getter for the database handle.
func (h *History) DB() *sql.DB {
	return h.db
}
