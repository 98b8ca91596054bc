package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/semiverso/prometheus-api/internal/api/shared"
	"github.com/semiverso/prometheus-api/internal/domain"
	"github.com/semiverso/prometheus-api/internal/store"
)

// SubmitTurnResponse is the payload returned when a turn is accepted.
type SubmitTurnResponse struct {
	TaskID  string `json:"task_id"`
	Message string `json:"message"`
}

// submitAcceptedMessage is the acknowledgement sent with the task id.
const submitAcceptedMessage = "Elaborazione avviata."

// TaskStatusResponse is the payload returned by the poll endpoint.
// Result is present only for completed tasks; Error and ErrorCode only
// for failed ones.
type TaskStatusResponse struct {
	Status    string               `json:"status"`
	Result    *domain.TurnResponse `json:"data,omitempty"`
	Error     string               `json:"error,omitempty"`
	ErrorCode int                  `json:"status_code,omitempty"`
}

// TurnHandler exposes the conversation endpoints.
type TurnHandler struct {
	service TurnService
	logger  *slog.Logger
}

// TurnService is the service surface the handler needs.
type TurnService interface {
	SubmitTurn(ctx context.Context, request domain.TurnRequest) (uuid.UUID, error)
	Result(ctx context.Context, id uuid.UUID) (store.TaskResult, error)
}

// NewTurnHandler creates a TurnHandler.
func NewTurnHandler(service TurnService, logger *slog.Logger) *TurnHandler {
	return &TurnHandler{
		service: service,
		logger:  logger.With("component", "turn_handler"),
	}
}

// SubmitTurn handles POST /api/chat. The turn is processed in the
// background; the client polls GetTaskStatus with the returned id.
func (h *TurnHandler) SubmitTurn(w http.ResponseWriter, r *http.Request) {
	var req domain.TurnRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	id, err := h.service.SubmitTurn(r.Context(), req)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, SubmitTurnResponse{
		TaskID:  id.String(),
		Message: submitAcceptedMessage,
	})
}

// GetTaskStatus handles GET /api/chat/task/{taskID}. Terminal results
// are consumed by the read: a second poll of the same id returns 404.
func (h *TurnHandler) GetTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	result, err := h.service.Result(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := TaskStatusResponse{Status: string(result.Status)}
	switch result.Status {
	case store.TaskStatusCompleted:
		resp.Result = result.Response
	case store.TaskStatusFailed:
		resp.Error = result.Err.Message
		resp.ErrorCode = result.Err.StatusCode
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
