package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiverso/prometheus-api/internal/api"
	"github.com/semiverso/prometheus-api/internal/domain"
	"github.com/semiverso/prometheus-api/internal/store"
	"github.com/semiverso/prometheus-api/internal/task"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTurnService satisfies the handler's service surface with canned
// results.
type fakeTurnService struct {
	submitID  uuid.UUID
	submitErr error
	result    store.TaskResult
	resultErr error

	lastRequest domain.TurnRequest
}

func (f *fakeTurnService) SubmitTurn(_ context.Context, req domain.TurnRequest) (uuid.UUID, error) {
	f.lastRequest = req
	return f.submitID, f.submitErr
}

func (f *fakeTurnService) Result(_ context.Context, _ uuid.UUID) (store.TaskResult, error) {
	return f.result, f.resultErr
}

func newRouter(svc *fakeTurnService) http.Handler {
	handler := api.NewTurnHandler(svc, discardLogger())
	r := chi.NewRouter()
	r.Post("/api/chat", handler.SubmitTurn)
	r.Get("/api/chat/task/{taskID}", handler.GetTaskStatus)
	return r
}

func TestSubmitTurnAccepted(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := &fakeTurnService{submitID: id}
	router := newRouter(svc)

	body := `{
		"user_id": "u1",
		"session_id": "s1",
		"seme_id": "sem_01",
		"interaction_number": 0,
		"user_input": "una riflessione"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp api.SubmitTurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, id.String(), resp.TaskID)
	assert.NotEmpty(t, resp.Message)

	assert.Equal(t, "sem_01", svc.lastRequest.SeedID)
	assert.Equal(t, "una riflessione", svc.lastRequest.UserInput)
}

func TestSubmitTurnRejectsBadPayloads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed JSON", body: `{broken`},
		{name: "missing required fields", body: `{"user_id": "u1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			router := newRouter(&fakeTurnService{})
			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSubmitTurnMapsQueueFull(t *testing.T) {
	t.Parallel()

	svc := &fakeTurnService{submitErr: task.ErrQueueFull}
	router := newRouter(svc)

	body := `{"user_id": "u1", "session_id": "s1", "seme_id": "sem_01", "user_input": "x"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "sovraccarico")
}

func TestGetTaskStatusProcessing(t *testing.T) {
	t.Parallel()

	svc := &fakeTurnService{result: store.TaskResult{Status: store.TaskStatusProcessing}}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/task/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.TaskStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "processing", resp.Status)
	assert.Nil(t, resp.Result)
	assert.Empty(t, resp.Error)
}

func TestGetTaskStatusCompleted(t *testing.T) {
	t.Parallel()

	svc := &fakeTurnService{result: store.TaskResult{
		Status: store.TaskStatusCompleted,
		Response: &domain.TurnResponse{
			Output:      domain.TextOutput("un'immagine"),
			Eco:         []string{"eco"},
			FraseFinale: "domanda?",
		},
	}}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/task/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.TaskStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "un'immagine", resp.Result.Output.Text())
	assert.Equal(t, []string{"eco"}, resp.Result.Eco)
}

func TestGetTaskStatusFailed(t *testing.T) {
	t.Parallel()

	svc := &fakeTurnService{result: store.TaskResult{
		Status: store.TaskStatusFailed,
		Err:    &store.TaskError{Message: "La risposta ha impiegato troppo tempo.", StatusCode: 504},
	}}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/task/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.TaskStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed", resp.Status)
	assert.Equal(t, 504, resp.ErrorCode)
	assert.NotEmpty(t, resp.Error)
}

func TestGetTaskStatusUnknownID(t *testing.T) {
	t.Parallel()

	svc := &fakeTurnService{resultErr: store.ErrTaskNotFound}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/task/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTaskStatusInvalidID(t *testing.T) {
	t.Parallel()

	router := newRouter(&fakeTurnService{})
	req := httptest.NewRequest(http.MethodGet, "/api/chat/task/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
