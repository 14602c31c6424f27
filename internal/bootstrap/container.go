package bootstrap

import (
	"context"
	"sync"

	"github.com/NIRMITI18/health-care-agent/internal/adapters/ai"
	"github.com/NIRMITI18/health-care-agent/internal/adapters/config"
	redisclient "github.com/NIRMITI18/health-care-agent/internal/adapters/redis"
	"github.com/NIRMITI18/health-care-agent/internal/agents"
	"github.com/NIRMITI18/health-care-agent/internal/api"
	"github.com/NIRMITI18/health-care-agent/internal/api/health"
	"github.com/NIRMITI18/health-care-agent/internal/api/plans"
	"github.com/NIRMITI18/health-care-agent/pkg/errors"
	"github.com/NIRMITI18/health-care-agent/pkg/logger"
)

// Container holds all application dependencies and their lifecycle
// Components are organized in initialization order
type Container struct {
	// Core configuration & logging
	Config       *config.Config
	Log          *logger.Logger
	ErrorTracker errors.Tracker

	// Infrastructure (optional, nil when REDIS_HOST is empty)
	Redis *redisclient.Client

	// Business Logic
	Business *Business

	// Application Layer
	Application *Application

	// Lifecycle management
	Lifecycle *Lifecycle
	WG        *sync.WaitGroup
	Context   context.Context
	Cancel    context.CancelFunc
}

// Business groups the planning pipeline components
type Business struct {
	Generator     ai.Generator
	CostTracker   *agents.CostTracker
	AgentFactory  *agents.Factory
	AgentRegistry *agents.Registry
	Prompts       *agents.PromptBuilder
	Orchestrator  *agents.Orchestrator
}

// Application groups application layer components
type Application struct {
	HTTPServer    *api.Server
	HealthHandler *health.Handler
	PlansHandler  *plans.Handler
}

// NewContainer creates a new dependency container
func NewContainer() *Container {
	ctx, cancel := context.WithCancel(context.Background())

	return &Container{
		Business:    &Business{},
		Application: &Application{},
		Lifecycle:   NewLifecycle(),
		WG:          &sync.WaitGroup{},
		Context:     ctx,
		Cancel:      cancel,
	}
}

// MustInit initializes all components in the correct order
// Panics on any initialization error (fail-fast at startup)
func (c *Container) MustInit() {
	c.MustInitConfig()
	c.MustInitInfrastructure()
	c.MustInitBusiness()
	c.MustInitApplication()
}

// Start starts the HTTP server in the background
func (c *Container) Start() error {
	if c.Application.HTTPServer == nil {
		return errors.Wrap(errors.ErrInternal, "container not initialized")
	}

	c.Log.Info("Starting all systems...")

	c.WG.Add(1)
	go func() {
		defer c.WG.Done()
		if err := c.Application.HTTPServer.Start(); err != nil {
			c.Log.Errorf("HTTP server failed: %v", err)
			c.Cancel() // Trigger shutdown on fatal HTTP error
		}
	}()

	c.Log.Info("✓ All systems operational")
	return nil
}

// Shutdown performs graceful shutdown in the correct order
func (c *Container) Shutdown() {
	c.Log.Info("Initiating graceful shutdown...")

	// Cancel application context to signal all components to stop
	c.Cancel()

	c.Lifecycle.Shutdown(
		c.WG,
		c.Application.HTTPServer,
		c.ErrorTracker,
		c.Redis,
		c.Log,
	)
}

// GetMetrics returns metrics for observability
func (c *Container) GetMetrics() map[string]interface{} {
	out := map[string]interface{}{
		"agents": 0,
	}
	if c.Business.AgentRegistry != nil {
		out["agents"] = len(c.Business.AgentRegistry.List())
	}
	if c.Business.CostTracker != nil {
		out["total_cost_usd"] = c.Business.CostTracker.TotalCost()
	}
	return out
}
