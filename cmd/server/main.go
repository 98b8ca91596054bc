// Package main implements the entry point for the Prometheus API
// server, which turns user reflections into poetic templated responses
// through an LLM-backed background pipeline.
package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/semiverso/prometheus-api/internal/config"
	"github.com/semiverso/prometheus-api/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging and wires the
// application components.
func initializeApp() (*application, error) {
	// A local .env file is a development convenience; its absence is
	// not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName,
		"database_configured", cfg.Database.URL != "")

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to build application: %w", err)
	}
	return app, nil
}
