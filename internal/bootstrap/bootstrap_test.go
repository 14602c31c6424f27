package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NIRMITI18/health-care-agent/internal/adapters/ai"
	"github.com/NIRMITI18/health-care-agent/internal/adapters/config"
	errnoop "github.com/NIRMITI18/health-care-agent/internal/adapters/errors/noop"
	"github.com/NIRMITI18/health-care-agent/internal/agents"
	"github.com/NIRMITI18/health-care-agent/internal/domain/profile"
	"github.com/NIRMITI18/health-care-agent/pkg/logger"
	"github.com/NIRMITI18/health-care-agent/pkg/templates"
)

type echoGenerator struct{}

func (echoGenerator) Name() ai.ProviderName { return ai.ProviderNameGoogle }
func (echoGenerator) Model() ai.ModelInfo {
	return ai.ResolveModel(ai.ProviderNameGoogle, ai.ModelGemini20Flash)
}
func (echoGenerator) Generate(_ context.Context, req ai.GenerateRequest) (*ai.GenerateResponse, error) {
	return &ai.GenerateResponse{Text: req.Role + " plan", Model: ai.ModelGemini20Flash, InputTokens: 10, OutputTokens: 20}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Name: "health-planner", Env: "test", Version: "0.0.1"},
		HTTP: config.HTTPConfig{Port: 18080, RateLimitPerMinute: 60},
		AI:   config.AIConfig{Provider: "gemini", GeminiKey: "k", EnableSearch: true},
	}
}

func TestProvideErrorTracker_Disabled(t *testing.T) {
	cfg := testConfig()
	tracker := provideErrorTracker(cfg, logger.NewNop())
	assert.IsType(t, &errnoop.Tracker{}, tracker)
}

func TestProvideAgents(t *testing.T) {
	b := &Business{}
	err := provideAgents(testConfig().AI, echoGenerator{}, b, logger.NewNop())
	require.NoError(t, err)

	require.NotNil(t, b.Orchestrator)
	assert.Len(t, b.AgentRegistry.List(), len(agents.Roles()))
	assert.Same(t, b.CostTracker, b.Orchestrator.Costs())

	plan, err := b.Orchestrator.ComputeFullPlan(context.Background(), profile.HealthProfile{
		Name: "Sam", Age: 41, Weight: 82.5, Height: 180, ActivityLevel: "Beginner",
		DietaryPreference: "Vegetarian", FitnessGoal: "Weight Loss",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, plan.Content)
	assert.Positive(t, b.CostTracker.TotalCost())
}

func TestContainer_InitApplicationAndShutdown(t *testing.T) {
	logger.SetGlobal(logger.NewNop())

	c := NewContainer()
	c.Config = testConfig()
	c.Log = logger.NewNop()
	c.ErrorTracker = errnoop.New()

	c.Business.Generator = echoGenerator{}
	require.NoError(t, provideAgents(c.Config.AI, c.Business.Generator, c.Business, c.Log))

	c.MustInitApplication()
	require.NotNil(t, c.Application.HTTPServer)
	assert.Equal(t, 3, c.GetMetrics()["agents"])

	require.NoError(t, c.Start())

	done := make(chan struct{})
	go func() {
		c.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("shutdown did not complete")
	}
	assert.Error(t, c.Context.Err())
}

func TestProvidePrompts_FromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "prompts"), 0o755))
	for _, name := range []string{"meal", "fitness", "holistic"} {
		src, err := templates.Get().GetTemplate("prompts/" + name)
		require.NoError(t, err)
		body := "Custom " + name + " prompt\n" + src.Content
		require.NoError(t, os.WriteFile(filepath.Join(dir, "prompts", name+".tmpl"), []byte(body), 0o644))
	}

	prompts, err := providePrompts(dir, logger.NewNop())
	require.NoError(t, err)

	text := prompts.BuildMealPrompt(profile.HealthProfile{
		Name: "Ana", Age: 30, Weight: 60, Height: 165,
		ActivityLevel: "Beginner", DietaryPreference: "Vegan", FitnessGoal: "Endurance",
	})
	assert.True(t, strings.HasPrefix(text, "Custom meal prompt\n"))
}

func TestProvidePrompts_MissingTemplates(t *testing.T) {
	_, err := providePrompts(t.TempDir(), logger.NewNop())
	assert.Error(t, err)

	prompts, err := providePrompts("", logger.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, prompts)
}

func TestResolveWriteTimeout(t *testing.T) {
	cfg := testConfig()

	derived, err := resolveWriteTimeout(cfg, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, agents.FullPlanBudget(agents.RoleConfigOptions{})+config.WriteMargin, derived)
	assert.Greater(t, derived, 90*time.Second+2*time.Minute, "must outlast slowest prerequisite plus lead")

	cfg.HTTP.WriteTimeout = 3 * time.Minute
	_, err = resolveWriteTimeout(cfg, logger.NewNop())
	assert.Error(t, err, "default role timeouts need 3m30s")

	cfg.AI.CallTimeout = 30 * time.Second
	got, err := resolveWriteTimeout(cfg, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3*time.Minute, got)
}

func TestLifecycle_SetDrainTimeout(t *testing.T) {
	l := NewLifecycle()
	l.SetDrainTimeout(10 * time.Minute)
	assert.Equal(t, 10*time.Minute, l.httpTimeout)
	assert.GreaterOrEqual(t, l.shutdownTimeout, 11*time.Minute)

	l.SetDrainTimeout(0)
	assert.Equal(t, 10*time.Minute, l.httpTimeout)
}

func TestContainer_StartRequiresInit(t *testing.T) {
	c := NewContainer()
	c.Log = logger.NewNop()
	assert.Error(t, c.Start())
}

func TestLifecycle_ShutdownToleratesMissingComponents(t *testing.T) {
	l := NewLifecycle()
	assert.NotPanics(t, func() {
		l.Shutdown(&sync.WaitGroup{}, nil, nil, nil, logger.NewNop())
	})
}
