package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/NIRMITI18/health-care-agent/pkg/errors"
)

type Config struct {
	App           AppConfig
	HTTP          HTTPConfig
	AI            AIConfig
	Redis         RedisConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"health-planner"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	Version  string `envconfig:"APP_VERSION" default:"1.0.0"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type HTTPConfig struct {
	Port         int           `envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	// WriteTimeout must outlast a full plan (slowest prerequisite + lead). Zero derives it
	// from the agent timeouts at startup.
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`

	// Inbound limit applied per plan route
	RateLimitPerMinute int `envconfig:"HTTP_RATE_LIMIT_PER_MINUTE" default:"60"`
}

// WriteMargin is added on top of the model-call budget for encoding and flushing the response.
const WriteMargin = 15 * time.Second

type AIConfig struct {
	Provider  string `envconfig:"AI_PROVIDER" default:"gemini"`
	Model     string `envconfig:"AI_MODEL"`
	GeminiKey string `envconfig:"GEMINI_API_KEY"`
	OpenAIKey string `envconfig:"OPENAI_API_KEY"`

	// CallTimeout bounds a single agent generation; zero keeps the per-role default
	CallTimeout  time.Duration `envconfig:"AI_CALL_TIMEOUT"`
	EnableSearch bool          `envconfig:"AI_ENABLE_SEARCH" default:"true"`

	// PromptsDir overrides the embedded prompt templates with prompts/*.tmpl from disk
	PromptsDir string `envconfig:"PROMPTS_DIR"`

	// Zero requests per minute keeps the provider's own quota
	RateLimitEnabled      bool    `envconfig:"AI_RATE_LIMIT_ENABLED" default:"true"`
	RateLimitReqPerMinute float64 `envconfig:"AI_RATE_LIMIT_REQ_PER_MINUTE"`
	RateLimitBurst        int     `envconfig:"AI_RATE_LIMIT_BURST"`
}

// APIKey returns the credential for the configured provider
func (c AIConfig) APIKey() string {
	switch c.NormalizedProvider() {
	case "openai":
		return c.OpenAIKey
	default:
		return c.GeminiKey
	}
}

// NormalizedProvider makes provider lookup more forgiving.
func (c AIConfig) NormalizedProvider() string {
	return strings.ToLower(strings.TrimSpace(c.Provider))
}

// RedisConfig is optional; an empty host disables Redis-backed rate limiting
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Enabled reports whether a Redis host was configured
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"true"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express
func (c *Config) Validate() error {
	switch c.AI.NormalizedProvider() {
	case "gemini", "openai":
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "unsupported AI_PROVIDER %q", c.AI.Provider)
	}

	if c.AI.APIKey() == "" {
		return errors.Wrapf(errors.ErrInvalidInput, "API key for provider %s is not configured", c.AI.NormalizedProvider())
	}

	// Full plan = two parallel calls, then one more
	if c.HTTP.WriteTimeout > 0 && c.AI.CallTimeout > 0 {
		if need := 2*c.AI.CallTimeout + WriteMargin; c.HTTP.WriteTimeout < need {
			return errors.Wrapf(errors.ErrInvalidInput,
				"HTTP_WRITE_TIMEOUT %s is shorter than a full plan needs (%s)", c.HTTP.WriteTimeout, need)
		}
	}

	if c.HTTP.Port <= 0 {
		return errors.Wrapf(errors.ErrInvalidInput, "HTTP_PORT must be positive, got %d", c.HTTP.Port)
	}

	return nil
}
