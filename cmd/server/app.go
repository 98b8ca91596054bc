package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/semiverso/prometheus-api/internal/analytics"
	"github.com/semiverso/prometheus-api/internal/config"
	"github.com/semiverso/prometheus-api/internal/events"
	"github.com/semiverso/prometheus-api/internal/platform/gemini"
	"github.com/semiverso/prometheus-api/internal/platform/memstore"
	"github.com/semiverso/prometheus-api/internal/platform/postgres"
	"github.com/semiverso/prometheus-api/internal/seed"
	"github.com/semiverso/prometheus-api/internal/service"
	"github.com/semiverso/prometheus-api/internal/task"
)

// application holds the wired components of the service.
type application struct {
	config *config.Config
	logger *slog.Logger

	seeds        *seed.Registry
	results      *memstore.TaskResultStore
	runner       *task.TaskRunner
	turnService  *service.TurnService
	imageService *service.ImageService

	db *sql.DB
}

// newApplication wires every component and starts the worker pool.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	seeds := seed.Load(cfg.Seeds.Path, logger)
	results := memstore.NewTaskResultStore(logger)

	gateway, err := gemini.NewGateway(context.Background(), logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create model gateway: %w", err)
	}

	emitter := events.NewInMemoryEventEmitter(logger)

	var db *sql.DB
	var recorder analytics.Recorder
	if cfg.Database.URL != "" {
		db, err = openDatabase(cfg.Database.URL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open analytics database: %w", err)
		}
		recorder = postgres.NewInteractionRecorder(db, logger)
	} else {
		logger.Info("no database configured, logging interaction steps to console")
		recorder = analytics.NewConsoleRecorder(logger)
	}
	emitter.RegisterHandler(analytics.NewStepLogger(recorder, logger))

	factory := task.NewTurnTaskFactory(seeds, gateway, results, emitter, logger)
	runner := task.NewTaskRunner(results, task.TaskRunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)
	if err := runner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	return &application{
		config:       cfg,
		logger:       logger,
		seeds:        seeds,
		results:      results,
		runner:       runner,
		turnService:  service.NewTurnService(results, factory, runner, logger),
		imageService: service.NewImageService(gateway, logger),
		db:           db,
	}, nil
}

// cleanup releases the application's resources in reverse wiring
// order.
func (app *application) cleanup() {
	if app.runner != nil {
		app.runner.Stop()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
