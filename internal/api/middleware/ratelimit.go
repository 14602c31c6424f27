package middleware

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles inbound requests for a single route.
type Limiter struct {
	limiter *rate.Limiter
	name    string
}

// NewLimiter creates a new rate limiter
// requestsPerMinute: maximum number of requests allowed per minute
func NewLimiter(name string, requestsPerMinute int) *Limiter {
	rps := float64(requestsPerMinute) / 60.0

	// Allow burst of 10% of per-minute limit
	burst := requestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}

	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    name,
	}
}

// Allow checks if a request is allowed without blocking
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// retryAfter estimates how long until the next token is available.
func (l *Limiter) retryAfter() time.Duration {
	r := l.limiter.Reserve()
	defer r.Cancel()
	return r.Delay()
}

// RouteLimiters manages one limiter per route
type RouteLimiters struct {
	limiters          map[string]*Limiter
	requestsPerMinute int
	mu                sync.Mutex
}

// NewRouteLimiters creates per-route limiters. A non-positive limit disables limiting.
func NewRouteLimiters(requestsPerMinute int) *RouteLimiters {
	return &RouteLimiters{
		limiters:          make(map[string]*Limiter),
		requestsPerMinute: requestsPerMinute,
	}
}

func (m *RouteLimiters) get(route string) *Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.limiters[route]
	if !ok {
		l = NewLimiter(route, m.requestsPerMinute)
		m.limiters[route] = l
	}
	return l
}

// Limit rejects requests over the route's budget with 429.
func (m *RouteLimiters) Limit(route string, next http.Handler) http.Handler {
	if m == nil || m.requestsPerMinute <= 0 {
		return next
	}

	limiter := m.get(route)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			wait := limiter.retryAfter()
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "rate limit exceeded, retry later"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
