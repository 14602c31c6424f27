package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "health"

var (
	// Agent metrics
	AgentCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agent_calls_total",
			Help:      "Total number of agent generation calls",
		},
		[]string{"role", "model", "status"}, // status: success|error|timeout|rate_limited
	)

	AgentLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "agent_latency_seconds",
			Help:      "Agent generation latency in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"role", "model"},
	)

	AgentTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agent_tokens_total",
			Help:      "Total tokens used by agents",
		},
		[]string{"role", "model", "type"}, // type: input|output
	)

	AgentCost = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agent_cost_usd",
			Help:      "Estimated AI cost in USD",
		},
		[]string{"role", "model"},
	)

	// Pipeline metrics
	PipelineRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Full health plan runs by terminal state",
		},
		[]string{"state", "stage"}, // state: done|failed
	)

	PipelineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Full health plan duration in seconds",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 120, 180},
		},
		[]string{"state"},
	)

	// HTTP metrics
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"route", "status"},
	)

	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"route"},
	)
)

var registerOnce sync.Once

// Init registers all metrics with Prometheus. Safe to call more than once.
func Init(collectors ...prometheus.Collector) {
	registerOnce.Do(func() {
		// Agent metrics
		prometheus.MustRegister(AgentCalls)
		prometheus.MustRegister(AgentLatency)
		prometheus.MustRegister(AgentTokens)
		prometheus.MustRegister(AgentCost)

		// Pipeline metrics
		prometheus.MustRegister(PipelineRuns)
		prometheus.MustRegister(PipelineDuration)

		// HTTP metrics
		prometheus.MustRegister(HTTPRequests)
		prometheus.MustRegister(HTTPLatency)

		for _, c := range collectors {
			prometheus.MustRegister(c)
		}
	})
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAgentCall records an agent invocation
func RecordAgentCall(role, model, status string, latency time.Duration, inputTokens, outputTokens int, cost float64) {
	AgentCalls.WithLabelValues(role, model, status).Inc()
	AgentLatency.WithLabelValues(role, model).Observe(latency.Seconds())

	if inputTokens > 0 {
		AgentTokens.WithLabelValues(role, model, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		AgentTokens.WithLabelValues(role, model, "output").Add(float64(outputTokens))
	}
	if cost > 0 {
		AgentCost.WithLabelValues(role, model).Add(cost)
	}
}

// RecordPipelineRun records the terminal state of a full plan run.
// stage is empty for successful runs.
func RecordPipelineRun(state, stage string, duration time.Duration) {
	PipelineRuns.WithLabelValues(state, stage).Inc()
	PipelineDuration.WithLabelValues(state).Observe(duration.Seconds())
}

// RecordHTTPRequest records a served HTTP request
func RecordHTTPRequest(route string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(route, statusLabel(status)).Inc()
	HTTPLatency.WithLabelValues(route).Observe(duration.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
