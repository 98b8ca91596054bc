package task

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/semiverso/prometheus-api/internal/domain"
	"github.com/semiverso/prometheus-api/internal/events"
	"github.com/semiverso/prometheus-api/internal/generation"
	"github.com/semiverso/prometheus-api/internal/seed"
	"github.com/semiverso/prometheus-api/internal/store"
)

// TurnTaskFactory builds TurnTasks with their shared dependencies
// pre-bound, so the service layer only supplies the per-request data.
type TurnTaskFactory struct {
	seeds   *seed.Registry
	gateway generation.Gateway
	results store.TaskResultStore
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewTurnTaskFactory creates a factory over the given dependencies.
func NewTurnTaskFactory(
	seeds *seed.Registry,
	gateway generation.Gateway,
	results store.TaskResultStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) *TurnTaskFactory {
	return &TurnTaskFactory{
		seeds:   seeds,
		gateway: gateway,
		results: results,
		emitter: emitter,
		logger:  logger,
	}
}

// NewTurnTask creates a task for one turn, bound to the result record
// identified by id.
func (f *TurnTaskFactory) NewTurnTask(id uuid.UUID, request domain.TurnRequest) (*TurnTask, error) {
	return NewTurnTask(id, request, f.seeds, f.gateway, f.results, f.emitter, f.logger)
}
