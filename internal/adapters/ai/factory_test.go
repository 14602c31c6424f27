package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NIRMITI18/health-care-agent/internal/adapters/config"
	"github.com/NIRMITI18/health-care-agent/pkg/errors"
)

func TestBuildGeneratorRejectsUnknownProvider(t *testing.T) {
	_, err := BuildGenerator(context.Background(), config.AIConfig{Provider: "claude", GeminiKey: "k"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestBuildGeneratorRequiresKey(t *testing.T) {
	_, err := BuildGenerator(context.Background(), config.AIConfig{Provider: "openai"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestBuildGeneratorOpenAI(t *testing.T) {
	gen, err := BuildGenerator(context.Background(), config.AIConfig{
		Provider:              " OpenAI ",
		OpenAIKey:             "sk-test",
		RateLimitEnabled:      true,
		RateLimitReqPerMinute: 120,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, ProviderNameOpenAI, gen.Name())
	assert.Equal(t, ModelGPT4oMini, gen.Model().Name)

	limited, ok := gen.(*RateLimitedGenerator)
	require.True(t, ok, "expected rate limited generator")
	assert.Equal(t, 120.0, limited.limiter.Limit())
}

func TestBuildGeneratorWithoutRateLimit(t *testing.T) {
	gen, err := BuildGenerator(context.Background(), config.AIConfig{
		Provider:  "openai",
		Model:     ModelGPT41,
		OpenAIKey: "sk-test",
	}, nil)
	require.NoError(t, err)

	limited, ok := gen.(*RateLimitedGenerator)
	require.True(t, ok)
	assert.IsType(t, &NoOpLimiter{}, limited.limiter)
	assert.Equal(t, ModelGPT41, gen.Model().Name)
}

func TestRateLimitConfigFallsBackToProviderDefaults(t *testing.T) {
	got := rateLimitConfig(ProviderNameGoogle, config.AIConfig{RateLimitEnabled: true})
	assert.Equal(t, DefaultRateLimits()[ProviderNameGoogle], got)

	got = rateLimitConfig(ProviderNameGoogle, config.AIConfig{})
	assert.False(t, got.Enabled)
}

func TestRateLimitConfigFromLoadedDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	cfg, err := config.Load()
	require.NoError(t, err)

	got := rateLimitConfig(ProviderNameGoogle, cfg.AI)
	assert.True(t, got.Enabled)
	assert.Equal(t, 15.0, got.ReqPerMinute)

	t.Setenv("AI_RATE_LIMIT_REQ_PER_MINUTE", "90")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, 90.0, rateLimitConfig(ProviderNameGoogle, cfg.AI).ReqPerMinute)
}

func TestNormalizeProviderName(t *testing.T) {
	assert.Equal(t, ProviderNameOpenAI, NormalizeProviderName("  OpenAI "))
	assert.True(t, NormalizeProviderName("GEMINI").IsValid())
	assert.False(t, NormalizeProviderName("deepseek").IsValid())
}
