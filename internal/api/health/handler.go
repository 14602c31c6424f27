package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/redis/go-redis/v9"

	"github.com/NIRMITI18/health-care-agent/internal/adapters/ai"
	"github.com/NIRMITI18/health-care-agent/pkg/logger"
)

// CostReporter exposes accumulated model spend
type CostReporter interface {
	TotalCost() float64
}

// Handler provides health check endpoints
type Handler struct {
	log         *logger.Logger
	generator   ai.Generator
	redis       *redis.Client // nil when Redis is not configured
	costs       CostReporter  // optional
	startTime   time.Time
	serviceName string
	version     string
}

// New creates a new health check handler
func New(
	log *logger.Logger,
	generator ai.Generator,
	redis *redis.Client,
	costs CostReporter,
	serviceName string,
	version string,
) *Handler {
	return &Handler{
		log:         log,
		generator:   generator,
		redis:       redis,
		costs:       costs,
		startTime:   time.Now(),
		serviceName: serviceName,
		version:     version,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status      string                     `json:"status"` // "healthy", "degraded", "unhealthy"
	Service     string                     `json:"service"`
	Version     string                     `json:"version"`
	Uptime      string                     `json:"uptime"`
	StartedAt   string                     `json:"started_at"`
	Timestamp   string                     `json:"timestamp"`
	Model       *ModelStatus               `json:"model,omitempty"`
	SpentUSD    string                     `json:"spent_usd,omitempty"`
	Checks      map[string]ComponentHealth `json:"checks"`
	ErrorDetail string                     `json:"error_detail,omitempty"`
}

// ModelStatus describes the configured generation backend
type ModelStatus struct {
	Provider       string `json:"provider"`
	Name           string `json:"name"`
	SupportsSearch bool   `json:"supports_search"`
}

// ComponentHealth represents health of a single component
type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

// HandleLiveness returns 200 OK if service is running
// Used by Kubernetes liveness probe
func (h *Handler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "alive",
	})
}

// HandleReadiness checks if service is ready to accept traffic
// Used by Kubernetes readiness probe
func (h *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := h.runChecks(ctx)
	allHealthy := true
	for _, c := range checks {
		if c.Status != "healthy" {
			allHealthy = false
		}
	}

	status := h.baseStatus(checks)

	statusCode := http.StatusOK
	if !allHealthy {
		status.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
		h.log.Warnw("Readiness check failed", "checks", checks)
	}

	writeJSON(w, statusCode, status)
}

// HandleHealth returns detailed health status (includes all checks)
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	checks := h.runChecks(ctx)
	healthyCount := 0
	for _, c := range checks {
		if c.Status == "healthy" {
			healthyCount++
		}
	}

	status := h.baseStatus(checks)
	if h.generator != nil {
		model := h.generator.Model()
		status.Model = &ModelStatus{
			Provider:       string(h.generator.Name()),
			Name:           model.Name,
			SupportsSearch: model.SupportsSearch,
		}
	}
	if h.costs != nil {
		status.SpentUSD = humanize.CommafWithDigits(h.costs.TotalCost(), 4)
	}

	statusCode := http.StatusOK

	if healthyCount == 0 {
		status.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	} else if healthyCount < len(checks) {
		status.Status = "degraded"
		statusCode = http.StatusOK // Still return 200 for degraded
	}

	writeJSON(w, statusCode, status)
}

func (h *Handler) runChecks(ctx context.Context) map[string]ComponentHealth {
	checks := map[string]ComponentHealth{
		"generator": h.checkGenerator(),
	}
	if h.redis != nil {
		checks["redis"] = h.checkRedis(ctx)
	}
	return checks
}

func (h *Handler) baseStatus(checks map[string]ComponentHealth) HealthStatus {
	return HealthStatus{
		Status:    "healthy",
		Service:   h.serviceName,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		StartedAt: humanize.Time(h.startTime),
		Timestamp: time.Now().Format(time.RFC3339),
		Checks:    checks,
	}
}

// checkGenerator only confirms a backend is wired; calling the model would cost money
func (h *Handler) checkGenerator() ComponentHealth {
	if h.generator == nil {
		return ComponentHealth{Status: "unhealthy", Error: "no generator configured"}
	}
	return ComponentHealth{Status: "healthy"}
}

// checkRedis verifies Redis connectivity
func (h *Handler) checkRedis(ctx context.Context) ComponentHealth {
	start := time.Now()
	err := h.redis.Ping(ctx).Err()
	elapsed := time.Since(start)

	if err != nil {
		h.log.Errorw("Redis health check failed", "error", err, "elapsed", elapsed)
		return ComponentHealth{
			Status:       "unhealthy",
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}
	}

	return ComponentHealth{
		Status:       "healthy",
		ResponseTime: elapsed.String(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
