package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiverso/prometheus-api/internal/analytics"
	"github.com/semiverso/prometheus-api/internal/events"
	"github.com/semiverso/prometheus-api/internal/platform/postgres"
)

// fakeDB records ExecContext calls and returns a canned error.
type fakeDB struct {
	query string
	args  []any
	err   error
}

func (f *fakeDB) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	f.query = query
	f.args = args
	return nil, f.err
}

func (f *fakeDB) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRowContext(context.Context, string, ...any) *sql.Row {
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEntry() analytics.Entry {
	return analytics.Entry{
		UserID:     "u1",
		SessionID:  "s1",
		SeedID:     "sem_01",
		Step:       1,
		Type:       events.StepUserInput,
		Content:    "una riflessione",
		OccurredAt: time.Now().UTC(),
	}
}

func TestRecordInsertsAllFields(t *testing.T) {
	t.Parallel()

	db := &fakeDB{}
	recorder := postgres.NewInteractionRecorder(db, discardLogger())

	require.NoError(t, recorder.Record(context.Background(), sampleEntry()))

	assert.Contains(t, db.query, "INSERT INTO interaction_logs")
	require.Len(t, db.args, 7)
	assert.Equal(t, "u1", db.args[0])
	assert.Equal(t, "s1", db.args[1])
	assert.Equal(t, "sem_01", db.args[2])
	assert.Equal(t, 1, db.args[3])
	assert.Equal(t, "input_received", db.args[4])
}

func TestRecordSwallowsDuplicateSteps(t *testing.T) {
	t.Parallel()

	db := &fakeDB{err: &pgconn.PgError{Code: "23505"}}
	recorder := postgres.NewInteractionRecorder(db, discardLogger())

	assert.NoError(t, recorder.Record(context.Background(), sampleEntry()))
}

func TestRecordReturnsOtherFailures(t *testing.T) {
	t.Parallel()

	db := &fakeDB{err: errors.New("connection closed")}
	recorder := postgres.NewInteractionRecorder(db, discardLogger())

	err := recorder.Record(context.Background(), sampleEntry())
	assert.Error(t, err)
}

func TestNewInteractionRecorderRequiresDB(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		postgres.NewInteractionRecorder(nil, discardLogger())
	})
}
