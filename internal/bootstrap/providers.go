package bootstrap

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NIRMITI18/health-care-agent/internal/adapters/ai"
	"github.com/NIRMITI18/health-care-agent/internal/adapters/config"
	errnoop "github.com/NIRMITI18/health-care-agent/internal/adapters/errors/noop"
	"github.com/NIRMITI18/health-care-agent/internal/adapters/errors/sentry"
	redisclient "github.com/NIRMITI18/health-care-agent/internal/adapters/redis"
	"github.com/NIRMITI18/health-care-agent/internal/agents"
	"github.com/NIRMITI18/health-care-agent/internal/api"
	"github.com/NIRMITI18/health-care-agent/internal/api/health"
	"github.com/NIRMITI18/health-care-agent/internal/api/plans"
	"github.com/NIRMITI18/health-care-agent/internal/metrics"
	"github.com/NIRMITI18/health-care-agent/pkg/errors"
	"github.com/NIRMITI18/health-care-agent/pkg/logger"
	"github.com/NIRMITI18/health-care-agent/pkg/templates"
)

// ========================================
// Phase 1: Configuration & Logging
// ========================================

// MustInitConfig loads configuration and initializes logger
func (c *Container) MustInitConfig() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	c.Config = cfg

	// Initialize logger
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}

	c.Log = logger.Get()
	c.Log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	c.ErrorTracker = provideErrorTracker(cfg, c.Log)
	logger.SetErrorTracker(c.ErrorTracker)
}

// ========================================
// Phase 2: Infrastructure Layer
// ========================================

// MustInitInfrastructure connects to Redis when configured
func (c *Container) MustInitInfrastructure() {
	if !c.Config.Redis.Enabled() {
		c.Log.Info("Redis not configured, using in-process rate limiting")
		return
	}

	c.Log.Info("Connecting to Redis...")
	client, err := redisclient.NewClient(c.Context, c.Config.Redis)
	if err != nil {
		c.Log.Fatalf("failed to connect redis: %v", err)
	}
	c.Redis = client
	c.Log.Info("✓ Redis connected")
}

// ========================================
// Phase 3: Business Logic
// ========================================

// MustInitBusiness builds the generator, agents and orchestrator
func (c *Container) MustInitBusiness() {
	gen, err := ai.BuildGenerator(c.Context, c.Config.AI, c.redisClient())
	if err != nil {
		c.Log.Fatalf("failed to build generator: %v", err)
	}
	c.Business.Generator = gen
	c.Log.Infof("✓ Generator initialized: provider=%s model=%s", gen.Name(), gen.Model().Name)

	if err := provideAgents(c.Config.AI, gen, c.Business, c.Log); err != nil {
		c.Log.Fatalf("failed to initialize agents: %v", err)
	}
}

// ========================================
// Phase 4: Application Layer
// ========================================

// MustInitApplication initializes application layer (HTTP, metrics)
func (c *Container) MustInitApplication() {
	c.Application.HealthHandler = health.New(
		c.Log,
		c.Business.Generator,
		c.redisClient(),
		c.Business.CostTracker,
		c.Config.App.Name,
		c.Config.App.Version,
	)

	c.Application.PlansHandler = plans.NewHandler(c.Business.Orchestrator)

	writeTimeout, err := resolveWriteTimeout(c.Config, c.Log)
	if err != nil {
		c.Log.Fatalf("invalid HTTP configuration: %v", err)
	}
	c.Lifecycle.SetDrainTimeout(writeTimeout)

	c.Application.HTTPServer = provideHTTPServer(
		c.Config,
		writeTimeout,
		c.Application.HealthHandler,
		c.Application.PlansHandler,
		c.Log,
	)

	// Initialize metrics
	metrics.Init(metrics.NewCustomCollector(c.Business.CostTracker, c.redisClient()))
	c.Log.Info("✓ Metrics initialized")

	c.Log.Info("✓ Application layer initialized")
}

// redisClient unwraps the optional Redis connection
func (c *Container) redisClient() *redis.Client {
	if c.Redis == nil {
		return nil
	}
	return c.Redis.Client()
}

// ========================================
// Helper Provider Functions
// ========================================

func provideErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return errnoop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment, cfg.App.Version)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return errnoop.New()
	}

	log.Info("✓ Error tracking initialized (Sentry)")
	return tracker
}

// provideAgents fills the business layer from an already-built generator
// providePrompts loads prompt templates from disk when a directory is
// configured and from the embedded assets otherwise.
func providePrompts(dir string, log *logger.Logger) (*agents.PromptBuilder, error) {
	if dir == "" {
		return agents.NewPromptBuilder(templates.Get())
	}

	registry, err := templates.NewRegistry(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read prompts from %s", dir)
	}
	log.Infow("Prompt templates loaded from disk", "dir", dir, "templates", registry.List())
	return agents.NewPromptBuilder(registry)
}

func provideAgents(cfg config.AIConfig, gen ai.Generator, b *Business, log *logger.Logger) error {
	log.Info("Initializing agents...")

	costs := agents.NewCostTracker()

	factory, err := agents.NewFactory(agents.FactoryDeps{
		Generator:   gen,
		CostTracker: costs,
		Options: agents.RoleConfigOptions{
			CallTimeout:  cfg.CallTimeout,
			EnableSearch: cfg.EnableSearch,
		},
	})
	if err != nil {
		return errors.Wrap(err, "create agent factory")
	}

	registry, err := factory.CreateRegistry()
	if err != nil {
		return errors.Wrap(err, "create agent registry")
	}

	prompts, err := providePrompts(cfg.PromptsDir, log)
	if err != nil {
		return errors.Wrap(err, "load prompt templates")
	}

	orchestrator, err := agents.NewOrchestrator(agents.OrchestratorDeps{
		Registry:    registry,
		Prompts:     prompts,
		CostTracker: costs,
	})
	if err != nil {
		return errors.Wrap(err, "create orchestrator")
	}

	b.CostTracker = costs
	b.AgentFactory = factory
	b.AgentRegistry = registry
	b.Prompts = prompts
	b.Orchestrator = orchestrator

	log.Infof("✓ Agents initialized: %d roles, search=%t", len(registry.List()), cfg.EnableSearch)
	return nil
}

// resolveWriteTimeout makes sure a full plan can be written back before the
// connection expires. An unset timeout is derived from the agent timeouts.
func resolveWriteTimeout(cfg *config.Config, log *logger.Logger) (time.Duration, error) {
	need := agents.FullPlanBudget(agents.RoleConfigOptions{CallTimeout: cfg.AI.CallTimeout}) + config.WriteMargin

	if cfg.HTTP.WriteTimeout == 0 {
		log.Infof("HTTP write timeout derived from agent timeouts: %s", need)
		return need, nil
	}
	if cfg.HTTP.WriteTimeout < need {
		return 0, errors.Wrapf(errors.ErrInvalidInput,
			"HTTP_WRITE_TIMEOUT %s is shorter than a full plan needs (%s)", cfg.HTTP.WriteTimeout, need)
	}
	return cfg.HTTP.WriteTimeout, nil
}

func provideHTTPServer(
	cfg *config.Config,
	writeTimeout time.Duration,
	healthHandler *health.Handler,
	plansHandler *plans.Handler,
	log *logger.Logger,
) *api.Server {
	return api.NewServer(api.ServerConfig{
		Port:               cfg.HTTP.Port,
		ServiceName:        cfg.App.Name,
		Version:            cfg.App.Version,
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       writeTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		RateLimitPerMinute: cfg.HTTP.RateLimitPerMinute,
	}, healthHandler, plansHandler, log)
}
