package ai

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/NIRMITI18/health-care-agent/internal/adapters/config"
	"github.com/NIRMITI18/health-care-agent/pkg/errors"
)

// BuildGenerator initializes the configured provider's Generator wrapped in a rate limiter.
// redisClient is optional - if provided, distributed rate limiting will be used (required for multi-pod deployment).
// If nil, local in-memory rate limiting will be used.
func BuildGenerator(ctx context.Context, cfg config.AIConfig, redisClient *redis.Client) (Generator, error) {
	provider := NormalizeProviderName(cfg.Provider)
	if !provider.IsValid() {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unsupported AI provider %q", cfg.Provider)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel(provider)
	}

	var (
		gen Generator
		err error
	)
	switch provider {
	case ProviderNameOpenAI:
		gen, err = NewOpenAIGenerator(cfg.OpenAIKey, model)
	default:
		gen, err = NewGeminiGenerator(ctx, cfg.GeminiKey, model)
	}
	if err != nil {
		return nil, err
	}

	limiter := NewRateLimiterFactory(redisClient).Create(provider, rateLimitConfig(provider, cfg))

	return WithRateLimit(gen, limiter), nil
}

// rateLimitConfig falls back to provider defaults when no explicit rate was configured.
func rateLimitConfig(provider ProviderName, cfg config.AIConfig) RateLimitConfig {
	if cfg.RateLimitReqPerMinute > 0 {
		return RateLimitConfig{
			Enabled:      cfg.RateLimitEnabled,
			ReqPerMinute: cfg.RateLimitReqPerMinute,
			Burst:        cfg.RateLimitBurst,
		}
	}

	def := DefaultRateLimits()[provider]
	def.Enabled = def.Enabled && cfg.RateLimitEnabled
	return def
}
