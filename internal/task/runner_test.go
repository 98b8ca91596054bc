package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiverso/prometheus-api/internal/platform/memstore"
	"github.com/semiverso/prometheus-api/internal/store"
	"github.com/semiverso/prometheus-api/internal/task"
)

// stubTask runs a function and signals completion on a channel.
type stubTask struct {
	id   uuid.UUID
	run  func(ctx context.Context) error
	done chan struct{}
}

func newStubTask(run func(ctx context.Context) error) *stubTask {
	return &stubTask{
		id:   uuid.New(),
		run:  run,
		done: make(chan struct{}),
	}
}

func (s *stubTask) ID() uuid.UUID { return s.id }
func (s *stubTask) Type() string  { return "stub" }

func (s *stubTask) Execute(ctx context.Context) error {
	defer close(s.done)
	return s.run(ctx)
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for task execution")
	}
}

func TestRunnerExecutesSubmittedTask(t *testing.T) {
	t.Parallel()

	results := memstore.NewTaskResultStore(discardLogger())
	runner := task.NewTaskRunner(results, task.TaskRunnerConfig{WorkerCount: 1, QueueSize: 4}, discardLogger())
	require.NoError(t, runner.Start())
	defer runner.Stop()

	executed := false
	st := newStubTask(func(context.Context) error {
		executed = true
		return nil
	})

	require.NoError(t, runner.Submit(context.Background(), st))
	waitFor(t, st.done)
	assert.True(t, executed)
}

func TestRunnerQueueFull(t *testing.T) {
	t.Parallel()

	results := memstore.NewTaskResultStore(discardLogger())
	// Runner not started, so the single-slot queue fills immediately.
	runner := task.NewTaskRunner(results, task.TaskRunnerConfig{WorkerCount: 1, QueueSize: 1}, discardLogger())

	blocked := newStubTask(func(context.Context) error { return nil })
	require.NoError(t, runner.Submit(context.Background(), blocked))

	err := runner.Submit(context.Background(), newStubTask(func(context.Context) error { return nil }))
	assert.ErrorIs(t, err, task.ErrQueueFull)
}

func TestRunnerSubmitAfterStopDoesNotPanic(t *testing.T) {
	t.Parallel()

	results := memstore.NewTaskResultStore(discardLogger())
	runner := task.NewTaskRunner(results, task.TaskRunnerConfig{WorkerCount: 1, QueueSize: 2}, discardLogger())
	require.NoError(t, runner.Start())
	runner.Stop()

	// A submit racing past shutdown is queued and dropped, never a
	// send on a closed channel.
	assert.NotPanics(t, func() {
		_ = runner.Submit(context.Background(), newStubTask(func(context.Context) error { return nil }))
	})
}

func TestRunnerSurvivesPanickingTask(t *testing.T) {
	t.Parallel()

	results := memstore.NewTaskResultStore(discardLogger())
	runner := task.NewTaskRunner(results, task.TaskRunnerConfig{WorkerCount: 1, QueueSize: 4}, discardLogger())
	require.NoError(t, runner.Start())
	defer runner.Stop()

	id := results.Create()
	panicking := &stubTask{id: id, done: make(chan struct{})}
	panicking.run = func(context.Context) error {
		panic("boom")
	}

	require.NoError(t, runner.Submit(context.Background(), panicking))

	// The panic safety net must mark the record failed so a poller is
	// never stuck, and the worker must keep serving the queue.
	require.Eventually(t, func() bool {
		result, err := results.Read(id)
		if err != nil {
			return false
		}
		return result.Status == store.TaskStatusFailed
	}, 2*time.Second, 10*time.Millisecond)

	next := newStubTask(func(context.Context) error { return nil })
	require.NoError(t, runner.Submit(context.Background(), next))
	waitFor(t, next.done)
}
