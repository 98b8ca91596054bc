package shared_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiverso/prometheus-api/internal/api/shared"
)

type samplePayload struct {
	Name string `json:"name" validate:"required"`
}

type selfValidating struct {
	fail bool
}

func (s selfValidating) Validate() error {
	if s.fail {
		return errors.New("invalid")
	}
	return nil
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "eco"}`))

	var payload samplePayload
	require.NoError(t, shared.DecodeJSON(req, &payload))
	assert.Equal(t, "eco", payload.Name)

	bad := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{broken`))
	assert.Error(t, shared.DecodeJSON(bad, &payload))
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, shared.ValidateRequest(samplePayload{Name: "x"}))
	assert.Error(t, shared.ValidateRequest(samplePayload{}))

	// A type with its own Validate method bypasses the struct tags.
	assert.NoError(t, shared.ValidateRequest(selfValidating{}))
	assert.Error(t, shared.ValidateRequest(selfValidating{fail: true}))
}
