package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/semiverso/prometheus-api/internal/generation"
)

// ErrInvalidImageData indicates the model reply was not a data-URL
// encoded image.
var ErrInvalidImageData = errors.New("invalid image data in model reply")

// ImageRequest describes one cover image to generate.
type ImageRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Titolo string `json:"titolo,omitempty"`
	Autore string `json:"autore,omitempty"`
}

// ImageService generates cover images through the model gateway. The
// reply is expected to be a base64 data URL; the service returns the
// bare base64 payload.
type ImageService struct {
	gateway generation.Gateway
	logger  *slog.Logger
}

// NewImageService creates an ImageService over the given gateway.
func NewImageService(gateway generation.Gateway, logger *slog.Logger) *ImageService {
	return &ImageService{
		gateway: gateway,
		logger:  logger.With("component", "image_service"),
	}
}

// Generate produces one cover image and returns its base64 payload.
// This call is synchronous; image generation has no task lifecycle.
func (s *ImageService) Generate(ctx context.Context, request ImageRequest) (string, error) {
	var b strings.Builder
	b.WriteString("Create a book cover image for: ")
	b.WriteString(request.Prompt)
	if request.Titolo != "" {
		b.WriteString("\nTitle: ")
		b.WriteString(request.Titolo)
	}
	if request.Autore != "" {
		b.WriteString("\nAuthor: ")
		b.WriteString(request.Autore)
	}

	reply, err := s.gateway.Complete(ctx, b.String(), generation.ImageOptions())
	if err != nil {
		return "", newTurnServiceError("generate_image", "model call failed", err)
	}

	data := strings.TrimSpace(reply)
	if !strings.HasPrefix(data, "data:image") {
		s.logger.Warn("model reply is not a data URL image")
		return "", ErrInvalidImageData
	}
	_, base64Part, found := strings.Cut(data, ",")
	if !found || base64Part == "" {
		return "", ErrInvalidImageData
	}
	return base64Part, nil
}
