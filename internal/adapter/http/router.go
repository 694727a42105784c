package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/fondocore/fondo/internal/adapter/http/handler"
	"github.com/fondocore/fondo/internal/adapter/http/middleware"
	"github.com/fondocore/fondo/internal/infrastructure/auth"
	"github.com/fondocore/fondo/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	MovementHandler     *handler.MovementHandler
	MovementTypeHandler *handler.MovementTypeHandler
	ClosingHandler      *handler.ClosingHandler
	SummaryHandler      *handler.SummaryHandler
	LedgerHandler       *handler.LedgerHandler
	HealthHandler       *handler.HealthHandler

	Logger           zerolog.Logger
	IdempotencyStore usecase.IdempotencyStore
	JWTManager       *auth.JWTManager
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Movement types
		r.Route("/movement-types", func(r chi.Router) {
			r.Post("/", cfg.MovementTypeHandler.Create)
			r.Get("/", cfg.MovementTypeHandler.List)
			r.Post("/{id}/reorder", cfg.MovementTypeHandler.Reorder)
			r.Delete("/{id}", cfg.MovementTypeHandler.Delete)
		})

		// Movements
		r.Route("/movements", func(r chi.Router) {
			r.Post("/", cfg.MovementHandler.Create)
			r.Get("/", cfg.MovementHandler.List)
			r.Get("/{id}", cfg.MovementHandler.Get)
			r.Put("/{id}/amount", cfg.MovementHandler.EditAmount)
			r.Delete("/{id}", cfg.MovementHandler.Delete)
		})

		// Daily closings
		r.Route("/closings", func(r chi.Router) {
			r.Post("/", cfg.ClosingHandler.Create)
			r.Get("/", cfg.ClosingHandler.List)
			r.Get("/{id}", cfg.ClosingHandler.Get)
			r.Get("/{id}/status", cfg.ClosingHandler.Status)
			r.Get("/{id}/adjustments", cfg.ClosingHandler.Adjustments)
			r.Put("/{id}/adjustments/{entryID}", cfg.ClosingHandler.EditAdjustment)
			r.Delete("/{id}/adjustments", cfg.ClosingHandler.RemoveAdjustments)
			r.Post("/{id}/adjustments/repair", cfg.ClosingHandler.RepairAdjustments)
		})

		// Summary
		r.Get("/summary", cfg.SummaryHandler.Get)

		// Ledger
		r.Route("/ledger", func(r chi.Router) {
			r.Get("/balance", cfg.LedgerHandler.Balance)
			r.Get("/consistency", cfg.LedgerHandler.ConsistencyCheck)
			r.Post("/consistency/repair", cfg.LedgerHandler.ConsistencyRepair)
		})
	})

	return r
}
