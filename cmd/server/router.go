package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ecomstack/account-api/internal/api"
	apiMiddleware "github.com/ecomstack/account-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	accountHandler := api.NewAccountHandler(app.accountService, app.logger)

	// Register routes
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", accountHandler.Register)
		r.Get("/active", accountHandler.ListActive)
		r.Get("/stats/total", accountHandler.CountActive)
		r.Get("/username/{username}", accountHandler.GetByUsername)
		r.Get("/{id}", accountHandler.GetByID)
		r.Put("/{id}", accountHandler.Update)
		r.Delete("/{id}", accountHandler.Deactivate)
	})

	// Liveness probe, independent of the account service
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("Account service is running")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
