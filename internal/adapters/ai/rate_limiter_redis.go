package ai

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NIRMITI18/health-care-agent/pkg/errors"
)

// RedisRateLimiter implements distributed token bucket rate limiting via Redis,
// shared by every replica talking to the same provider.
type RedisRateLimiter struct {
	client      *redis.Client
	provider    ProviderName
	rate        float64 // Requests per second
	burst       int
	key         string
	tokenScript *redis.Script
}

// KEYS[1] = token bucket key
// ARGV[1] = rate (tokens per second)
// ARGV[2] = burst (max tokens)
// ARGV[3] = current timestamp
// Returns 1 if allowed, 0 if denied
const luaTokenBucketScript = `
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local data = redis.call('HMGET', key, 'tokens', 'last_update')
local tokens = tonumber(data[1])
local last_update = tonumber(data[2])

if not tokens then
    tokens = burst
    last_update = now
end

local elapsed = math.max(0, now - last_update)
tokens = math.min(burst, tokens + elapsed * rate)

local allowed = 0
if tokens >= 1.0 then
    tokens = tokens - 1.0
    allowed = 1
end

redis.call('HSET', key, 'tokens', tokens, 'last_update', now)
redis.call('EXPIRE', key, 3600)

return allowed
`

// NewRedisRateLimiter creates a new Redis-based rate limiter.
func NewRedisRateLimiter(client *redis.Client, provider ProviderName, reqPerMinute float64, burst int) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:      client,
		provider:    provider,
		rate:        reqPerMinute / 60.0,
		burst:       defaultBurst(reqPerMinute, burst),
		key:         fmt.Sprintf("rate_limit:llm:%s", provider),
		tokenScript: redis.NewScript(luaTokenBucketScript),
	}
}

// Wait blocks until a token is available or context is cancelled.
func (l *RedisRateLimiter) Wait(ctx context.Context) error {
	for {
		allowed, err := l.tryAcquire(ctx)
		if err != nil {
			return &RateLimitError{Provider: l.provider, Limit: l.Limit(), Err: err}
		}
		if allowed {
			return nil
		}

		waitTime := time.Duration(float64(time.Second) / l.rate)

		select {
		case <-ctx.Done():
			return &RateLimitError{
				Provider: l.provider,
				Limit:    l.Limit(),
				Err:      errors.Wrap(ctx.Err(), "rate limiter wait cancelled"),
			}
		case <-time.After(waitTime):
		}
	}
}

// Allow checks if a request can proceed without blocking.
// Redis errors deny the request.
func (l *RedisRateLimiter) Allow() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	allowed, err := l.tryAcquire(ctx)
	if err != nil {
		return false
	}

	return allowed
}

// Limit returns the current rate limit in requests per minute.
func (l *RedisRateLimiter) Limit() float64 {
	return l.rate * 60.0
}

func (l *RedisRateLimiter) tryAcquire(ctx context.Context) (bool, error) {
	now := float64(time.Now().UnixNano()) / float64(time.Second)

	result, err := l.tokenScript.Run(
		ctx,
		l.client,
		[]string{l.key},
		strconv.FormatFloat(l.rate, 'f', -1, 64),
		l.burst,
		strconv.FormatFloat(now, 'f', 6, 64),
	).Int()
	if err != nil {
		return false, errors.Wrap(err, "failed to execute token bucket script")
	}

	return result == 1, nil
}

// Reset clears the rate limiter state (useful for testing).
func (l *RedisRateLimiter) Reset(ctx context.Context) error {
	return l.client.Del(ctx, l.key).Err()
}
