package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/semiverso/prometheus-api/internal/api/shared"
	"github.com/semiverso/prometheus-api/internal/service"
)

// ImageGenerationResponse carries the generated images as base64
// payloads.
type ImageGenerationResponse struct {
	Images []string `json:"images"`
}

// ImageGenerator is the service surface the handler needs.
type ImageGenerator interface {
	Generate(ctx context.Context, request service.ImageRequest) (string, error)
}

// ImageHandler exposes the cover image endpoint.
type ImageHandler struct {
	service ImageGenerator
	logger  *slog.Logger
}

// NewImageHandler creates an ImageHandler.
func NewImageHandler(svc ImageGenerator, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{
		service: svc,
		logger:  logger.With("component", "image_handler"),
	}
}

// GenerateImage handles POST /api/generate_image. Unlike turns, image
// generation runs synchronously.
func (h *ImageHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req service.ImageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	image, err := h.service.Generate(r.Context(), req)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ImageGenerationResponse{
		Images: []string{image},
	})
}
