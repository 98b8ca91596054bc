package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	Seeds    SeedsConfig    `mapstructure:"seeds"    validate:"required"`
	Task     TaskConfig     `mapstructure:"task"     validate:"required"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the analytics database settings. The URL is
// optional: when empty, interaction steps are logged to the console
// instead of Postgres.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// LLMConfig contains the Gemini integration settings.
type LLMConfig struct {
	GeminiAPIKey          string `mapstructure:"gemini_api_key"          validate:"required"`
	ModelName             string `mapstructure:"model_name"              validate:"required"`
	MaxRetries            int    `mapstructure:"max_retries"             validate:"gte=0,lte=10"`
	RetryDelaySeconds     int    `mapstructure:"retry_delay_seconds"     validate:"gte=0,lte=30"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"required,gt=0,lte=300"`
}

// SeedsConfig locates the seed catalog on disk.
type SeedsConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// TaskConfig contains the background worker settings.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0,lte=64"`
	QueueSize   int `mapstructure:"queue_size"   validate:"required,gt=0,lte=10000"`
}
