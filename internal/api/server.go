package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/NIRMITI18/health-care-agent/internal/api/health"
	"github.com/NIRMITI18/health-care-agent/internal/api/middleware"
	"github.com/NIRMITI18/health-care-agent/internal/api/plans"
	"github.com/NIRMITI18/health-care-agent/internal/metrics"
	"github.com/NIRMITI18/health-care-agent/pkg/errors"
	"github.com/NIRMITI18/health-care-agent/pkg/logger"
)

// WelcomeMessage is returned by the root endpoint
const WelcomeMessage = "Welcome to AI Health & Fitness Planner API 💪"

// ServerConfig contains configuration for HTTP server
type ServerConfig struct {
	Port         int
	ServiceName  string
	Version      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Inbound requests allowed per minute on each plan route; zero disables limiting
	RateLimitPerMinute int
}

// Server wraps HTTP server with lifecycle management
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer creates and configures HTTP server with all routes
func NewServer(cfg ServerConfig, healthHandler *health.Handler, plansHandler *plans.Handler, log *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port(cfg.Port)),
			Handler:      NewRouter(cfg, healthHandler, plansHandler, log),
			ReadTimeout:  durationOr(cfg.ReadTimeout, 10*time.Second),
			WriteTimeout: durationOr(cfg.WriteTimeout, 4*time.Minute),
			IdleTimeout:  durationOr(cfg.IdleTimeout, 60*time.Second),
		},
		log: log,
	}
}

// NewRouter builds the route table. Exposed for tests.
func NewRouter(cfg ServerConfig, healthHandler *health.Handler, plansHandler *plans.Handler, log *logger.Logger) http.Handler {
	mux := http.NewServeMux()
	limiters := middleware.NewRouteLimiters(cfg.RateLimitPerMinute)

	// Health check endpoints (Kubernetes probes)
	mux.HandleFunc("/health", healthHandler.HandleHealth)
	mux.HandleFunc("/ready", healthHandler.HandleReadiness)
	mux.HandleFunc("/live", healthHandler.HandleLiveness)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", metrics.Handler())

	planRoutes := map[string]http.HandlerFunc{
		"/meal-plan":        plansHandler.HandleMealPlan,
		"/fitness-plan":     plansHandler.HandleFitnessPlan,
		"/full-health-plan": plansHandler.HandleFullPlan,
	}
	for route, h := range planRoutes {
		mux.Handle(route, middleware.Instrument(route, log, limiters.Limit(route, h)))
	}

	// Root endpoint (service info)
	mux.Handle("/", middleware.Instrument("/", log, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": WelcomeMessage,
			"service": cfg.ServiceName,
			"version": cfg.Version,
		})
	})))

	return mux
}

// Start begins listening for HTTP requests
// Blocks until server is stopped or encounters an error
func (s *Server) Start() error {
	s.log.Infof("Starting HTTP server on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server failed")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server
// Waits for active connections to complete within timeout
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Stopping HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "http server shutdown failed")
	}

	s.log.Info("✓ HTTP server stopped")
	return nil
}

func port(p int) int {
	if p > 0 {
		return p
	}
	return 8080
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
