package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/semiverso/prometheus-api/internal/domain"
	"github.com/semiverso/prometheus-api/internal/events"
	"github.com/semiverso/prometheus-api/internal/extract"
	"github.com/semiverso/prometheus-api/internal/generation"
	"github.com/semiverso/prometheus-api/internal/prompt"
	"github.com/semiverso/prometheus-api/internal/seed"
	"github.com/semiverso/prometheus-api/internal/store"
)

// Construction errors.
var (
	ErrNilRegistry    = errors.New("seed registry cannot be nil")
	ErrNilGateway     = errors.New("gateway cannot be nil")
	ErrNilResultStore = errors.New("result store cannot be nil")
	ErrNilLogger      = errors.New("logger cannot be nil")
)

// TurnTask carries one conversation turn through the full pipeline:
// resolve the seed, render the phase prompt, call the model, extract
// the structured reply and assemble the response. Whatever happens,
// the task leaves its result record in a terminal state so a poller is
// never stuck on it.
type TurnTask struct {
	id      uuid.UUID
	request domain.TurnRequest
	seeds   *seed.Registry
	gateway generation.Gateway
	results store.TaskResultStore
	emitter events.EventEmitter
	logger  *slog.Logger
}

var _ Task = (*TurnTask)(nil)

// NewTurnTask creates a turn task bound to an existing result record.
// The emitter may be nil when no analytics sink is wired.
func NewTurnTask(
	id uuid.UUID,
	request domain.TurnRequest,
	seeds *seed.Registry,
	gateway generation.Gateway,
	results store.TaskResultStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (*TurnTask, error) {
	if seeds == nil {
		return nil, ErrNilRegistry
	}
	if gateway == nil {
		return nil, ErrNilGateway
	}
	if results == nil {
		return nil, ErrNilResultStore
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &TurnTask{
		id:      id,
		request: request,
		seeds:   seeds,
		gateway: gateway,
		results: results,
		emitter: emitter,
		logger: logger.With(
			"component", "turn_task",
			"task_id", id,
			"session_id", request.SessionID,
		),
	}, nil
}

// ID implements Task.ID.
func (t *TurnTask) ID() uuid.UUID {
	return t.id
}

// Type implements Task.Type.
func (t *TurnTask) Type() string {
	return TaskTypeTurn
}

// Execute implements Task.Execute.
func (t *TurnTask) Execute(ctx context.Context) error {
	t.emit(ctx, events.StepUserInput, t.request.UserInput)

	sd, err := t.seeds.Get(t.request.SeedID)
	if err != nil {
		t.fail(store.TaskError{
			Message:    fmt.Sprintf("Seme con ID '%s' non trovato.", t.request.SeedID),
			StatusCode: 400,
		})
		return fmt.Errorf("failed to resolve seed: %w", err)
	}

	phase := t.request.Phase()
	rendered, err := prompt.Render(phase, prompt.Context{
		Seed:              sd,
		UserInput:         t.request.UserInput,
		PreviousUserInput: t.request.LastUserContent(),
		PreviousQuestion:  t.request.LastAssistantQuestion,
		PreviousAssistant: t.request.FirstAssistantContent(),
	})
	if err != nil {
		t.fail(store.TaskError{
			Message:    "Un errore imprevisto è avvenuto nel cuore di Prometheus.",
			StatusCode: 500,
		})
		return fmt.Errorf("failed to render prompt: %w", err)
	}
	t.emit(ctx, events.StepPromptSent, rendered)

	opts := generation.TurnOptions()
	if phase == domain.PhaseEcho {
		opts = generation.EchoOptions()
	}

	raw, err := t.gateway.Complete(ctx, rendered, opts)
	if err != nil {
		t.fail(classifyGenerationError(err))
		return fmt.Errorf("model call failed: %w", err)
	}
	t.emit(ctx, events.StepModelResponse, raw)

	res := extract.Extract(raw)
	t.results.Complete(t.id, assembleResponse(phase, sd, res))

	t.logger.Debug("turn completed", "phase", phase)
	return nil
}

// assembleResponse turns the extraction result into the response for
// this phase. Seals are reserved for closing and echo turns; when the
// model's seal is missing or incomplete, the seed's own seal steps in.
func assembleResponse(phase domain.Phase, sd domain.Seed, res extract.Result) *domain.TurnResponse {
	resp := &domain.TurnResponse{
		Output:      res.Output,
		Eco:         res.Eco,
		FraseFinale: res.FraseFinale,
	}
	if resp.Eco == nil {
		resp.Eco = []string{}
	}

	switch phase {
	case domain.PhaseEcho:
		// The echo reply is seal and echo only; any output text the
		// model produced is noise.
		resp.Output = domain.TextOutput("")
		if resp.FraseFinale == "" {
			resp.FraseFinale = sd.FraseFinale
		}
		resp.Sigillo = sealOrDefault(res.Sigillo, sd)
	case domain.PhaseClosing:
		resp.Sigillo = sealOrDefault(res.Sigillo, sd)
	}

	return resp
}

func sealOrDefault(s *domain.Seal, sd domain.Seed) *domain.Seal {
	if s != nil && s.Validate() == nil {
		return s
	}
	fallback := sd.Sigillo
	return &fallback
}

// classifyGenerationError maps gateway failures to the error payload a
// poller receives.
func classifyGenerationError(err error) store.TaskError {
	switch {
	case errors.Is(err, generation.ErrTimeout):
		return store.TaskError{
			Message:    "La risposta di Prometheus ha impiegato troppo tempo.",
			StatusCode: 504,
		}
	case errors.Is(err, generation.ErrContentBlocked):
		return store.TaskError{
			Message:    "Prometheus non ha potuto rispondere a questo contenuto.",
			StatusCode: 502,
		}
	case errors.Is(err, generation.ErrMalformedResponse):
		return store.TaskError{
			Message:    "Risposta API incompleta o malformata da Gemini.",
			StatusCode: 500,
		}
	case errors.Is(err, generation.ErrUpstream):
		return store.TaskError{
			Message:    "Errore di comunicazione con Prometheus.",
			StatusCode: 502,
		}
	default:
		return store.TaskError{
			Message:    "Un errore imprevisto è avvenuto nel cuore di Prometheus.",
			StatusCode: 500,
		}
	}
}

func (t *TurnTask) fail(taskErr store.TaskError) {
	t.results.Fail(t.id, taskErr)
}

// emit publishes a step event; analytics failures never disturb the
// turn.
func (t *TurnTask) emit(ctx context.Context, stepType events.StepType, content string) {
	if t.emitter == nil {
		return
	}
	//nolint:errcheck // fire and forget, the emitter logs failures
	_ = t.emitter.EmitEvent(ctx, events.NewStepEvent(
		stepType,
		t.request.UserID,
		t.request.SessionID,
		t.request.SeedID,
		content,
	))
}
