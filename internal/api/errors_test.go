package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/semiverso/prometheus-api/internal/api"
	"github.com/semiverso/prometheus-api/internal/generation"
	"github.com/semiverso/prometheus-api/internal/seed"
	"github.com/semiverso/prometheus-api/internal/store"
	"github.com/semiverso/prometheus-api/internal/task"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "seed not found", err: seed.ErrSeedNotFound, expected: http.StatusBadRequest},
		{name: "task not found", err: store.ErrTaskNotFound, expected: http.StatusNotFound},
		{name: "queue full", err: task.ErrQueueFull, expected: http.StatusServiceUnavailable},
		{name: "timeout", err: generation.ErrTimeout, expected: http.StatusGatewayTimeout},
		{name: "upstream", err: generation.ErrUpstream, expected: http.StatusBadGateway},
		{name: "blocked", err: generation.ErrContentBlocked, expected: http.StatusBadGateway},
		{name: "malformed", err: generation.ErrMalformedResponse, expected: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boh"), expected: http.StatusInternalServerError},
		{
			name:     "wrapped errors unwrap",
			err:      fmt.Errorf("outer: %w", seed.ErrSeedNotFound),
			expected: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, api.MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessageNeverLeaksDetails(t *testing.T) {
	t.Parallel()

	internal := fmt.Errorf("%w: dial tcp 10.0.0.5: connection refused", generation.ErrUpstream)
	msg := api.GetSafeErrorMessage(internal)
	assert.NotContains(t, msg, "10.0.0.5")
	assert.NotEmpty(t, msg)

	assert.NotEmpty(t, api.GetSafeErrorMessage(nil))
}
