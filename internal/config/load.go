package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "PROMETHEUS"

// Load reads configuration from environment variables with the
// PROMETHEUS_ prefix, applies defaults, and validates the result.
// Nested keys use underscores: PROMETHEUS_SERVER_PORT,
// PROMETHEUS_LLM_GEMINI_API_KEY, and so on.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not populate Unmarshal for keys that
	// were never set; binding each known key explicitly makes env-only
	// configuration work.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"database.url",
		"llm.gemini_api_key",
		"llm.model_name",
		"llm.max_retries",
		"llm.retry_delay_seconds",
		"llm.request_timeout_seconds",
		"seeds.path",
		"task.worker_count",
		"task.queue_size",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 1)
	v.SetDefault("llm.request_timeout_seconds", 45)
	v.SetDefault("seeds.path", "semi_data.json")
	v.SetDefault("task.worker_count", 4)
	v.SetDefault("task.queue_size", 100)
}
