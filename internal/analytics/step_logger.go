package analytics

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/semiverso/prometheus-api/internal/events"
)

// StepLogger subscribes to step events, numbers them per session and
// forwards them to a Recorder. Step numbers start at 1 and increase
// monotonically for the lifetime of the process; sessions are not
// expired, which is acceptable for the session volumes this service
// handles.
type StepLogger struct {
	mu       sync.Mutex
	counters map[string]int

	recorder Recorder
	logger   *slog.Logger
}

var _ events.EventHandler = (*StepLogger)(nil)

// NewStepLogger creates a handler that records numbered steps through
// recorder.
func NewStepLogger(recorder Recorder, logger *slog.Logger) *StepLogger {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &StepLogger{
		counters: make(map[string]int),
		recorder: recorder,
		logger:   logger.With("component", "step_logger"),
	}
}

// HandleEvent numbers the event within its session and hands it to the
// recorder. Recorder failures are reported to the emitter but carry no
// other consequence.
func (s *StepLogger) HandleEvent(ctx context.Context, event *events.StepEvent) error {
	s.mu.Lock()
	s.counters[event.SessionID]++
	step := s.counters[event.SessionID]
	s.mu.Unlock()

	entry := Entry{
		UserID:     event.UserID,
		SessionID:  event.SessionID,
		SeedID:     event.SeedID,
		Step:       step,
		Type:       event.Type,
		Content:    event.Content,
		OccurredAt: event.OccurredAt,
	}
	if err := s.recorder.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record step",
			"session_id", event.SessionID,
			"step", step,
			"error", err)
		return err
	}
	return nil
}
