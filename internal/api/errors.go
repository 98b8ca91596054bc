package api

import (
	"errors"
	"net/http"

	"github.com/semiverso/prometheus-api/internal/generation"
	"github.com/semiverso/prometheus-api/internal/seed"
	"github.com/semiverso/prometheus-api/internal/service"
	"github.com/semiverso/prometheus-api/internal/store"
	"github.com/semiverso/prometheus-api/internal/task"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so
// handlers never leak internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, seed.ErrSeedNotFound):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	case errors.Is(err, task.ErrQueueFull):
		return http.StatusServiceUnavailable

	case errors.Is(err, generation.ErrTimeout):
		return http.StatusGatewayTimeout

	case errors.Is(err, generation.ErrUpstream),
		errors.Is(err, generation.ErrContentBlocked):
		return http.StatusBadGateway

	case errors.Is(err, generation.ErrMalformedResponse),
		errors.Is(err, service.ErrInvalidImageData):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Raw error strings stay in the logs.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "Un errore imprevisto è avvenuto nel cuore di Prometheus."
	}

	switch {
	case errors.Is(err, seed.ErrSeedNotFound):
		return "Seme non trovato."

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task non trovato."

	case errors.Is(err, task.ErrQueueFull):
		return "Il servizio è momentaneamente sovraccarico. Riprova tra poco."

	case errors.Is(err, generation.ErrTimeout):
		return "La risposta di Prometheus ha impiegato troppo tempo."

	case errors.Is(err, generation.ErrContentBlocked):
		return "Prometheus non ha potuto rispondere a questo contenuto."

	case errors.Is(err, generation.ErrMalformedResponse):
		return "Risposta API incompleta o malformata da Gemini."

	case errors.Is(err, generation.ErrUpstream):
		return "Errore di comunicazione con Prometheus."

	case errors.Is(err, service.ErrInvalidImageData):
		return "Errore nell'elaborazione dell'immagine."

	default:
		return "Un errore imprevisto è avvenuto nel cuore di Prometheus."
	}
}
