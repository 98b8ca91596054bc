// Package store defines the storage interfaces shared across the
// service, plus the sentinel errors API handlers map onto status codes.
package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/semiverso/prometheus-api/internal/domain"
)

// Common store errors.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrTaskNotFound indicates the task id is unknown: it never
	// existed, or its terminal result was already consumed.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)
)

// TaskStatus represents the current state of a background turn task.
type TaskStatus string

// Possible task status values. A task transitions
// processing -> {completed|failed} exactly once.
const (
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// TaskError is the failure payload attached to a failed task: a short
// human-readable message plus the status-code category the poll endpoint
// should relay (client error vs upstream/service error).
type TaskError struct {
	Message    string `json:"error"`
	StatusCode int    `json:"status_code"`
}

// TaskResult is the polled state of a task. Response is set only when
// Status is completed; Err only when Status is failed.
type TaskResult struct {
	ID       uuid.UUID
	Status   TaskStatus
	Response *domain.TurnResponse
	Err      *TaskError
}

// TaskResultStore owns task records for the dispatch/poll protocol.
// Operations are non-blocking in-memory map accesses but must be safe
// under concurrent use by the background worker (writer) and the polling
// handler (reader).
type TaskResultStore interface {
	// Create allocates a fresh task id in the processing state.
	Create() uuid.UUID

	// Complete terminally marks the task completed with its response.
	// Ignored if the task is absent or already terminal.
	Complete(id uuid.UUID, response *domain.TurnResponse)

	// Fail terminally marks the task failed.
	// Ignored if the task is absent or already terminal.
	Fail(id uuid.UUID, taskErr TaskError)

	// Read returns the task's current state. Reading a terminal state
	// atomically removes the entry before returning it, so a second
	// read of the same id reports ErrTaskNotFound.
	Read(id uuid.UUID) (TaskResult, error)

	// Delete removes the record outright. Used by the dispatch side
	// when a submit is rejected before the id ever reaches the client;
	// such a record has no reader and would otherwise never be evicted.
	Delete(id uuid.UUID)
}
