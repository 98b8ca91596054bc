package task

import (
	"context"

	"github.com/google/uuid"
)

// Task type identifiers.
const (
	TaskTypeTurn = "turn"
)

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier. It is the same id the
	// client polls with.
	ID() uuid.UUID

	// Type returns the task type identifier.
	Type() string

	// Execute runs the task logic. Implementations must leave their
	// result record in a terminal state on every return path.
	Execute(ctx context.Context) error
}
