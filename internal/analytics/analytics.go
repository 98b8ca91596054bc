// Package analytics records the step-by-step trace of each turn for
// later inspection. Recording is strictly fire and forget: a failing
// recorder is logged and never interferes with the turn that produced
// the entry.
package analytics

import (
	"context"
	"time"

	"github.com/semiverso/prometheus-api/internal/events"
)

// Entry is one recorded step of a session, already numbered.
type Entry struct {
	UserID     string
	SessionID  string
	SeedID     string
	Step       int
	Type       events.StepType
	Content    string
	OccurredAt time.Time
}

// Recorder persists analytics entries.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}
