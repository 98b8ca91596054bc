// Package events decouples the turn pipeline from the analytics sink.
// The orchestrator emits one step event per significant moment of a
// turn (input received, prompt sent, response received) without knowing
// which handlers consume them; handler failures never propagate back
// into the turn.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StepType identifies the moment of the turn a step event records.
type StepType string

// Step event types, one per analytics-significant moment.
const (
	StepUserInput     StepType = "input_received"
	StepPromptSent    StepType = "prompt_sent"
	StepModelResponse StepType = "response_received"
)

// StepEvent records one logged moment of a turn, keyed by user, session
// and seed. The per-session step counter is assigned by the recorder
// that owns it, not here.
type StepEvent struct {
	ID         uuid.UUID
	Type       StepType
	UserID     string
	SessionID  string
	SeedID     string
	Content    string
	OccurredAt time.Time
}

// NewStepEvent creates a step event stamped with a fresh id and the
// current time.
func NewStepEvent(stepType StepType, userID, sessionID, seedID, content string) *StepEvent {
	return &StepEvent{
		ID:         uuid.New(),
		Type:       stepType,
		UserID:     userID,
		SessionID:  sessionID,
		SeedID:     seedID,
		Content:    content,
		OccurredAt: time.Now().UTC(),
	}
}

// EventHandler consumes step events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *StepEvent) error
}

// EventEmitter publishes step events to registered handlers.
type EventEmitter interface {
	RegisterHandler(handler EventHandler)
	EmitEvent(ctx context.Context, event *StepEvent) error
}
