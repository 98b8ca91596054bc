package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/semiverso/prometheus-api/internal/api"
	apiMiddleware "github.com/semiverso/prometheus-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	turnHandler := api.NewTurnHandler(app.turnService, app.logger)
	imageHandler := api.NewImageHandler(app.imageService, app.logger)
	healthHandler := api.NewHealthHandler()

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", turnHandler.SubmitTurn)
		r.Get("/chat/task/{taskID}", turnHandler.GetTaskStatus)
		r.Post("/generate_image", imageHandler.GenerateImage)
	})

	r.Get("/health", healthHandler.Health)
	r.Get("/", healthHandler.Root)

	return r
}
