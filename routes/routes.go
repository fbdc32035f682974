package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/upb/forum-api/app"
	"github.com/upb/forum-api/handlers"
	"github.com/upb/forum-api/internal/observability"
	"github.com/upb/forum-api/middleware"
	"github.com/upb/forum-api/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()
	cfg := deps.Config

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	if cfg.Server.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))
	}
	r.Use(observability.MetricsMiddleware)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check endpoints
	r.Get("/healthz", deps.HealthHandler.HandleHealth)
	r.Get("/readyz", deps.HealthHandler.HandleReadiness)

	if cfg.Observability.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	logger := deps.Logger

	// Public routes
	r.With(middleware.ValidateJSON[handlers.CreateAccountRequest](logger)).
		Post("/accounts", deps.AccountHandler.HandleCreate)
	r.With(middleware.ValidateJSON[handlers.CreateSessionRequest](logger)).
		Post("/sessions", deps.SessionHandler.HandleCreate)

	// Questions (require authentication); validation runs before the guard
	r.Route("/questions", func(r chi.Router) {
		r.With(
			middleware.ValidateJSON[handlers.CreateQuestionRequest](logger),
			deps.AuthMiddleware.RequireAuth,
		).Post("/", deps.QuestionHandler.HandleCreate)

		r.With(
			middleware.ValidateQuery[handlers.ListQuestionsQuery](logger),
			deps.AuthMiddleware.RequireAuth,
		).Get("/", deps.QuestionHandler.HandleList)
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "endpoint not found")
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	return r
}
