package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/semiverso/prometheus-api/internal/store"
)

// ErrQueueFull is returned by Submit when the in-memory queue has no
// room left; the caller should report back-pressure to the client.
var ErrQueueFull = errors.New("task queue is full")

// TaskRunnerConfig holds configuration for the task runner.
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks.
	WorkerCount int

	// QueueSize determines the buffer size of the in-memory task queue.
	QueueSize int
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable
// defaults.
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: 4,
		QueueSize:   100,
	}
}

// TaskRunner manages background task processing over a fixed pool of
// workers. Results live in the TaskResultStore; the runner's only
// store responsibility is the safety net that marks a task failed when
// its Execute panics.
type TaskRunner struct {
	results    store.TaskResultStore
	taskChan   chan Task
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     TaskRunnerConfig
	logger     *slog.Logger
}

// NewTaskRunner creates a new TaskRunner. Call Start to launch the
// workers.
func NewTaskRunner(results store.TaskResultStore, config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultTaskRunnerConfig().WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultTaskRunnerConfig().QueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &TaskRunner{
		results:    results,
		taskChan:   make(chan Task, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With("component", "task_runner"),
	}
}

// Submit adds a task to the queue without blocking. Returns
// ErrQueueFull when the queue is saturated.
func (r *TaskRunner) Submit(_ context.Context, t Task) error {
	select {
	case r.taskChan <- t:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start launches the worker pool.
func (r *TaskRunner) Start() error {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
	return nil
}

// Stop cancels the workers and waits for in-flight tasks to finish.
// The channel is left open so a Submit racing past shutdown degrades
// to a queued-and-dropped task instead of a panic.
func (r *TaskRunner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
}

func (r *TaskRunner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case t := <-r.taskChan:
			r.processTask(t, id)
		}
	}
}

// processTask executes a single task. A panic inside Execute must not
// take the worker down, and must not leave a poller stuck on a task
// that will never finish.
func (r *TaskRunner) processTask(t Task, workerID int) {
	log := r.logger.With(
		"task_id", t.ID(),
		"task_type", t.Type(),
		"worker_id", workerID,
	)

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("task panicked", "panic", fmt.Sprintf("%v", rec))
			r.results.Fail(t.ID(), store.TaskError{
				Message:    "internal error while processing the request",
				StatusCode: 500,
			})
		}
	}()

	log.Info("processing task")

	if err := t.Execute(r.ctx); err != nil {
		log.Error("task execution failed", "error", err)
		return
	}

	log.Info("task completed successfully")
}
