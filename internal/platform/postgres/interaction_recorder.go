// Package postgres holds the PostgreSQL-backed storage
// implementations. The service runs fine without a database; this
// package is only wired when PROMETHEUS_DATABASE_URL is set.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/semiverso/prometheus-api/internal/analytics"
	"github.com/semiverso/prometheus-api/internal/store"
)

const pgUniqueViolationCode = "23505"

// InteractionRecorder persists analytics entries to the
// interaction_logs table.
type InteractionRecorder struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ analytics.Recorder = (*InteractionRecorder)(nil)

// NewInteractionRecorder creates a recorder over the given connection.
// If logger is nil the default logger is used.
func NewInteractionRecorder(db store.DBTX, logger *slog.Logger) *InteractionRecorder {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InteractionRecorder{
		db:     db,
		logger: logger.With(slog.String("component", "interaction_recorder")),
	}
}

// Record inserts one step row. Duplicate (session_id, step) pairs are
// dropped silently: they mean the same event was delivered twice, and
// the first copy already holds the data.
func (r *InteractionRecorder) Record(ctx context.Context, entry analytics.Entry) error {
	query := `
		INSERT INTO interaction_logs (user_id, session_id, seed_id, step, step_type, content, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(
		ctx,
		query,
		entry.UserID,
		entry.SessionID,
		entry.SeedID,
		entry.Step,
		string(entry.Type),
		entry.Content,
		entry.OccurredAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			r.logger.Debug("duplicate interaction step ignored",
				slog.String("session_id", entry.SessionID),
				slog.Int("step", entry.Step))
			return nil
		}
		r.logger.Error("failed to insert interaction step",
			slog.String("session_id", entry.SessionID),
			slog.Int("step", entry.Step),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to insert interaction step: %w", err)
	}
	return nil
}
