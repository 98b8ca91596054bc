package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/semiverso/prometheus-api/internal/domain"
	"github.com/semiverso/prometheus-api/internal/store"
	"github.com/semiverso/prometheus-api/internal/task"
)

// TaskRunner defines the interface for submitting background tasks.
type TaskRunner interface {
	// Submit adds a task to the processing queue.
	Submit(ctx context.Context, t task.Task) error
}

// TurnTaskFactory creates turn tasks bound to a result record.
type TurnTaskFactory interface {
	NewTurnTask(id uuid.UUID, request domain.TurnRequest) (*task.TurnTask, error)
}

// TurnServiceError wraps errors from the turn service with context.
type TurnServiceError struct {
	// Operation is the operation that failed (e.g. "submit_turn").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for TurnServiceError.
func (e *TurnServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("turn service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("turn service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TurnServiceError) Unwrap() error {
	return e.Err
}

// newTurnServiceError creates a TurnServiceError with the given details.
func newTurnServiceError(operation, message string, err error) *TurnServiceError {
	return &TurnServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// TurnService accepts conversation turns, hands them to the background
// pipeline and exposes the single-read result lookup.
type TurnService struct {
	results store.TaskResultStore
	factory TurnTaskFactory
	runner  TaskRunner
	logger  *slog.Logger
}

// NewTurnService creates a TurnService over the given collaborators.
func NewTurnService(
	results store.TaskResultStore,
	factory TurnTaskFactory,
	runner TaskRunner,
	logger *slog.Logger,
) *TurnService {
	return &TurnService{
		results: results,
		factory: factory,
		runner:  runner,
		logger:  logger.With("component", "turn_service"),
	}
}

// SubmitTurn creates the result record and enqueues the pipeline task.
// The returned id is what the client polls with. Request validation
// (including seed resolution) belongs to the task itself, so even an
// unknown seed is reported through the poll protocol rather than here.
func (s *TurnService) SubmitTurn(ctx context.Context, request domain.TurnRequest) (uuid.UUID, error) {
	id := s.results.Create()

	t, err := s.factory.NewTurnTask(id, request)
	if err != nil {
		// The caller never receives this id, so the record has no
		// reader and must be removed rather than failed.
		s.results.Delete(id)
		return uuid.Nil, newTurnServiceError("submit_turn", "failed to create task", err)
	}

	if err := s.runner.Submit(ctx, t); err != nil {
		s.results.Delete(id)
		return uuid.Nil, newTurnServiceError("submit_turn", "failed to enqueue task", err)
	}

	s.logger.Debug("turn submitted",
		"task_id", id,
		"session_id", request.SessionID,
		"seed_id", request.SeedID)
	return id, nil
}

// Result returns the current state of a task. Terminal results are
// consumed by the read: polling the same id again returns not found.
func (s *TurnService) Result(_ context.Context, id uuid.UUID) (store.TaskResult, error) {
	result, err := s.results.Read(id)
	if err != nil {
		return store.TaskResult{}, newTurnServiceError("get_result", "task lookup failed", err)
	}
	return result, nil
}
