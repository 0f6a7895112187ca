// Package analytics is the fire-and-forget event sink the session
// reports into. Recording never fails the caller: failures are logged
// and swallowed.
package analytics

import (
	"context"
	"log/slog"
)

// LogRecorder writes search and custom events to the structured log
// only. It is the zero-infrastructure recorder.
type LogRecorder struct {
	log *slog.Logger
}

// NewLogRecorder creates a log-backed recorder.
func NewLogRecorder(log *slog.Logger) *LogRecorder {
	return &LogRecorder{log: log}
}

// RecordSearch logs one executed search with its result count.
func (r *LogRecorder) RecordSearch(ctx context.Context, term string, resultCount int) {
	r.log.InfoContext(ctx, "Search executed", "term", term, "results", resultCount)
}

// RecordEvent logs one named event with its attributes.
func (r *LogRecorder) RecordEvent(ctx context.Context, name string, attrs map[string]any) {
	args := make([]any, 0, len(attrs)*2+2)
	args = append(args, "event", name)
	for key, value := range attrs {
		args = append(args, key, value)
	}
	r.log.InfoContext(ctx, "Analytics event", args...)
}
