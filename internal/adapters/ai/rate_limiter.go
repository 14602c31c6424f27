package ai

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NIRMITI18/health-care-agent/pkg/errors"
)

// RateLimiter throttles outbound model calls.
type RateLimiter interface {
	// Wait blocks until request can proceed or context is cancelled.
	Wait(ctx context.Context) error

	// Allow checks if request can proceed without blocking.
	Allow() bool

	// Limit returns current rate limit (requests per minute).
	Limit() float64
}

// TokenBucketLimiter implements token bucket rate limiting in process memory.
type TokenBucketLimiter struct {
	rate       float64 // Requests per second
	burst      int
	tokens     float64
	lastUpdate time.Time
	mu         sync.Mutex
	provider   ProviderName
}

// NewTokenBucketLimiter creates a new token bucket rate limiter.
// burst defaults to 10% of reqPerMinute when not positive.
func NewTokenBucketLimiter(provider ProviderName, reqPerMinute float64, burst int) *TokenBucketLimiter {
	burst = defaultBurst(reqPerMinute, burst)

	return &TokenBucketLimiter{
		rate:       reqPerMinute / 60.0,
		burst:      burst,
		tokens:     float64(burst), // Start with full bucket
		lastUpdate: time.Now(),
		provider:   provider,
	}
}

// Wait blocks until a token is available or context is cancelled.
func (l *TokenBucketLimiter) Wait(ctx context.Context) error {
	for {
		if l.Allow() {
			return nil
		}

		waitTime := time.Duration(float64(time.Second) / l.rate)

		select {
		case <-ctx.Done():
			return &RateLimitError{
				Provider: l.provider,
				Limit:    l.Limit(),
				Err:      ctx.Err(),
			}
		case <-time.After(waitTime):
		}
	}
}

// Allow checks if a request can proceed and consumes a token if available.
func (l *TokenBucketLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.tokens += now.Sub(l.lastUpdate).Seconds() * l.rate
	if l.tokens > float64(l.burst) {
		l.tokens = float64(l.burst)
	}
	l.lastUpdate = now

	if l.tokens >= 1.0 {
		l.tokens -= 1.0
		return true
	}

	return false
}

// Limit returns the current rate limit in requests per minute.
func (l *TokenBucketLimiter) Limit() float64 {
	return l.rate * 60.0
}

// NoOpLimiter never blocks. Used when rate limiting is disabled.
type NoOpLimiter struct{}

// NewNoOpLimiter creates a no-op rate limiter.
func NewNoOpLimiter() *NoOpLimiter {
	return &NoOpLimiter{}
}

func (l *NoOpLimiter) Wait(context.Context) error { return nil }
func (l *NoOpLimiter) Allow() bool                { return true }

// Limit returns -1 to indicate unlimited.
func (l *NoOpLimiter) Limit() float64 { return -1 }

// RateLimitConfig contains rate limit configuration for a provider.
type RateLimitConfig struct {
	Enabled      bool
	ReqPerMinute float64
	Burst        int
}

// DefaultRateLimits returns conservative free-tier limits per provider.
func DefaultRateLimits() map[ProviderName]RateLimitConfig {
	return map[ProviderName]RateLimitConfig{
		ProviderNameGoogle: {
			Enabled:      true,
			ReqPerMinute: 15, // Gemini flash free tier
			Burst:        5,
		},
		ProviderNameOpenAI: {
			Enabled:      true,
			ReqPerMinute: 500, // OpenAI Tier 1
			Burst:        50,
		},
	}
}

// RateLimiterFactory creates rate limiters with optional Redis support.
// Without Redis every replica gets its own in-memory bucket.
type RateLimiterFactory struct {
	redisClient *redis.Client
}

// NewRateLimiterFactory creates a factory for rate limiters. redisClient may be nil.
func NewRateLimiterFactory(redisClient *redis.Client) *RateLimiterFactory {
	return &RateLimiterFactory{redisClient: redisClient}
}

// Create creates a rate limiter for the specified provider.
func (f *RateLimiterFactory) Create(provider ProviderName, config RateLimitConfig) RateLimiter {
	if !config.Enabled || config.ReqPerMinute <= 0 {
		return NewNoOpLimiter()
	}

	if f.redisClient != nil {
		return NewRedisRateLimiter(f.redisClient, provider, config.ReqPerMinute, config.Burst)
	}

	return NewTokenBucketLimiter(provider, config.ReqPerMinute, config.Burst)
}

// RateLimitError wraps rate limit related errors with provider context.
type RateLimitError struct {
	Provider ProviderName
	Limit    float64
	Err      error
}

// Error implements error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit error for provider %s (limit: %.0f req/min): %v", e.Provider, e.Limit, e.Err)
}

// Unwrap returns the underlying error.
func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// Is lets callers match any limiter failure against ErrRateLimitExceeded.
func (e *RateLimitError) Is(target error) bool {
	return target == errors.ErrRateLimitExceeded
}

func defaultBurst(reqPerMinute float64, burst int) int {
	if burst > 0 {
		return burst
	}
	burst = int(reqPerMinute / 10)
	if burst < 1 {
		burst = 1
	}
	return burst
}
