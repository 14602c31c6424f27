package ai

import "context"

// RateLimitedGenerator waits on a RateLimiter before every delegated call.
type RateLimitedGenerator struct {
	Generator
	limiter RateLimiter
}

// WithRateLimit decorates g with limiter. A nil limiter returns g unchanged.
func WithRateLimit(g Generator, limiter RateLimiter) Generator {
	if limiter == nil {
		return g
	}
	return &RateLimitedGenerator{Generator: g, limiter: limiter}
}

// Generate waits for a token, then delegates.
func (g *RateLimitedGenerator) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return g.Generator.Generate(ctx, req)
}
