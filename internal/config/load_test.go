package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiverso/prometheus-api/internal/config"
)

// setRequiredEnv sets the variables without which Load fails outright.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PROMETHEUS_LLM_GEMINI_API_KEY", "test-key")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.ModelName)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
	assert.Equal(t, 45, cfg.LLM.RequestTimeoutSeconds)
	assert.Equal(t, "semi_data.json", cfg.Seeds.Path)
	assert.Equal(t, 4, cfg.Task.WorkerCount)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoadReadsEnvironmentOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PROMETHEUS_SERVER_PORT", "9090")
	t.Setenv("PROMETHEUS_SERVER_LOG_LEVEL", "debug")
	t.Setenv("PROMETHEUS_LLM_MODEL_NAME", "gemini-2.5-pro")
	t.Setenv("PROMETHEUS_SEEDS_PATH", "/etc/prometheus/semi.json")
	t.Setenv("PROMETHEUS_TASK_WORKER_COUNT", "8")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.ModelName)
	assert.Equal(t, "/etc/prometheus/semi.json", cfg.Seeds.Path)
	assert.Equal(t, 8, cfg.Task.WorkerCount)
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("PROMETHEUS_LLM_GEMINI_API_KEY", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port out of range", key: "PROMETHEUS_SERVER_PORT", value: "70000"},
		{name: "unknown log level", key: "PROMETHEUS_SERVER_LOG_LEVEL", value: "verbose"},
		{name: "malformed database url", key: "PROMETHEUS_DATABASE_URL", value: "::not-a-url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
