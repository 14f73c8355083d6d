package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/trxrecords/internal/adapter/http/dto"
	"github.com/iho/trxrecords/internal/adapter/http/handler"
	"github.com/iho/trxrecords/internal/adapter/http/middleware"
	"github.com/iho/trxrecords/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	RecordHandler *handler.RecordHandler
	HealthHandler *handler.HealthHandler
	Logger        zerolog.Logger

	// Optional
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	MetricsHandler   http.Handler
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

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteError(w, req, http.StatusNotFound, "no route for "+req.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteError(w, req, http.StatusMethodNotAllowed, req.Method+" not allowed on "+req.URL.Path)
	})

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/transactions", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}

		r.Get("/", cfg.RecordHandler.Search)
		r.Get("/{id}", cfg.RecordHandler.Get)
		r.Put("/{id}", cfg.RecordHandler.UpdateDescription)
	})

	return r
}
