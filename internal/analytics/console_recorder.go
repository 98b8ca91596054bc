package analytics

import (
	"context"
	"io"
	"log/slog"
)

// ConsoleRecorder writes entries to the structured log. It is the
// fallback sink when no database is configured.
type ConsoleRecorder struct {
	logger *slog.Logger
}

var _ Recorder = (*ConsoleRecorder)(nil)

// NewConsoleRecorder creates a recorder that logs entries at Info.
func NewConsoleRecorder(logger *slog.Logger) *ConsoleRecorder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ConsoleRecorder{logger: logger.With("component", "analytics")}
}

// Record logs the entry. It never fails.
func (r *ConsoleRecorder) Record(_ context.Context, entry Entry) error {
	r.logger.Info("interaction step",
		"user_id", entry.UserID,
		"session_id", entry.SessionID,
		"seed_id", entry.SeedID,
		"step", entry.Step,
		"type", entry.Type,
		"content", entry.Content)
	return nil
}
