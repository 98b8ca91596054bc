// Package memstore provides the in-memory implementation of the task
// result store. Results deliberately do not survive a process restart;
// the poll protocol's single-read eviction keeps the map from growing
// under sustained load.
package memstore

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/semiverso/prometheus-api/internal/domain"
	"github.com/semiverso/prometheus-api/internal/store"
)

// TaskResultStore is a mutex-guarded map from task id to task state.
type TaskResultStore struct {
	mu     sync.Mutex
	tasks  map[uuid.UUID]store.TaskResult
	logger *slog.Logger
}

// NewTaskResultStore creates an empty store.
// If logger is nil, a default logger will be used.
func NewTaskResultStore(logger *slog.Logger) *TaskResultStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskResultStore{
		tasks:  make(map[uuid.UUID]store.TaskResult),
		logger: logger.With(slog.String("component", "task_result_store")),
	}
}

var _ store.TaskResultStore = (*TaskResultStore)(nil)

// Create allocates a fresh globally-unique task id in the processing state.
func (s *TaskResultStore) Create() uuid.UUID {
	id := uuid.New()

	s.mu.Lock()
	s.tasks[id] = store.TaskResult{ID: id, Status: store.TaskStatusProcessing}
	s.mu.Unlock()

	s.logger.Debug("task record created", "task_id", id)
	return id
}

// Complete writes the terminal completed state. At most one terminal
// write wins; later writes for the same id are ignored.
func (s *TaskResultStore) Complete(id uuid.UUID, response *domain.TurnResponse) {
	s.terminal(id, store.TaskResult{
		ID:       id,
		Status:   store.TaskStatusCompleted,
		Response: response,
	})
}

// Fail writes the terminal failed state. At most one terminal write
// wins; later writes for the same id are ignored.
func (s *TaskResultStore) Fail(id uuid.UUID, taskErr store.TaskError) {
	s.terminal(id, store.TaskResult{
		ID:     id,
		Status: store.TaskStatusFailed,
		Err:    &taskErr,
	})
}

func (s *TaskResultStore) terminal(id uuid.UUID, result store.TaskResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tasks[id]
	if !ok {
		s.logger.Warn("terminal write for unknown task ignored",
			"task_id", id, "status", result.Status)
		return
	}
	if current.Status != store.TaskStatusProcessing {
		s.logger.Warn("terminal write for already-terminal task ignored",
			"task_id", id, "current_status", current.Status, "status", result.Status)
		return
	}
	s.tasks[id] = result
}

// Read returns the task state, evicting terminal entries so the second
// poll for the same id reports not found.
func (s *TaskResultStore) Read(id uuid.UUID) (store.TaskResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, ok := s.tasks[id]
	if !ok {
		return store.TaskResult{}, store.ErrTaskNotFound
	}
	if result.Status != store.TaskStatusProcessing {
		delete(s.tasks, id)
	}
	return result, nil
}

// Delete removes the record without requiring a read. Deleting an
// absent id is a no-op.
func (s *TaskResultStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.tasks, id)
	s.mu.Unlock()

	s.logger.Debug("task record deleted", "task_id", id)
}

// Len returns the number of live task records.
func (s *TaskResultStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
