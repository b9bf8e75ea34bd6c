package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/dentora/clinicledger/internal/adapter/http/handler"
	"github.com/dentora/clinicledger/internal/adapter/http/middleware"
	"github.com/dentora/clinicledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	BalanceHandler   *handler.BalanceHandler
	PaymentHandler   *handler.PaymentHandler
	AuditHandler     *handler.AuditHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// API v1, tenant scoped
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Tenant)

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Patients
		r.Route("/patients/{patientID}", func(r chi.Router) {
			r.Get("/balance", cfg.BalanceHandler.GetBalance)
			r.Get("/statement", cfg.BalanceHandler.GetStatement)
			r.Post("/recalculate", cfg.BalanceHandler.Recalculate)
			r.Get("/payments", cfg.PaymentHandler.List)
			r.Post("/payments", cfg.PaymentHandler.Create)
		})

		// Payments
		r.Route("/payments", func(r chi.Router) {
			r.Delete("/{paymentID}", cfg.PaymentHandler.Void)
		})

		// Audit trail
		r.Get("/audit", cfg.AuditHandler.List)
	})

	return r
}
