package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/resumake/resumake-api/internal/api"
	apiMiddleware "github.com/resumake/resumake-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	resumeHandler := api.NewResumeHandler(app.service, app.runner, app.jobStore, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/resumes", resumeHandler.SubmitResume)
		r.Post("/resumes/generate", resumeHandler.GenerateResume)
		r.Get("/resumes/{id}", resumeHandler.GetResumeJob)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
