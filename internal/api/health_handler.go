package api

import (
	"net/http"

	"github.com/semiverso/prometheus-api/internal/api/shared"
)

// Version is the API version reported by the health and root
// endpoints.
const Version = "3.5"

// HealthHandler exposes the liveness endpoints.
type HealthHandler struct{}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": Version,
	})
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"message": "Prometheus API - Versione " + Version,
	})
}
