package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NIRMITI18/health-care-agent/internal/adapters/ai"
	"github.com/NIRMITI18/health-care-agent/internal/metrics"
	"github.com/NIRMITI18/health-care-agent/pkg/errors"
	"github.com/NIRMITI18/health-care-agent/pkg/logger"
)

// Agent performs exactly one stateless request/response cycle for its role.
type Agent interface {
	Role() Role
	Generate(ctx context.Context, prompt string) (*PlanResult, error)
}

// roleAgent is the single data-driven Agent implementation: a role's
// configuration bound to a generation capability.
type roleAgent struct {
	cfg   RoleConfig
	gen   ai.Generator
	costs *CostTracker
	log   *logger.Logger
}

// NewAgent binds cfg to gen. costs may be nil.
func NewAgent(cfg RoleConfig, gen ai.Generator, costs *CostTracker) (Agent, error) {
	if !cfg.Role.IsValid() {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown role %q", cfg.Role)
	}
	if gen == nil {
		return nil, fmt.Errorf("generator is required for role %s", cfg.Role)
	}

	return &roleAgent{
		cfg:   cfg,
		gen:   gen,
		costs: costs,
		log:   logger.Get().With("component", "agent", "role", cfg.Role),
	}, nil
}

func (a *roleAgent) Role() Role { return a.cfg.Role }

// Generate never retries and never returns partial text. Every failure is a *GenerationFailure.
func (a *roleAgent) Generate(ctx context.Context, prompt string) (*PlanResult, error) {
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	model := a.gen.Model()
	start := time.Now()

	resp, err := a.gen.Generate(ctx, ai.GenerateRequest{
		Role:         a.cfg.Role.String(),
		Description:  a.cfg.Description,
		Instructions: a.cfg.Instructions,
		Prompt:       prompt,
		AllowSearch:  a.cfg.AllowSearch,
	})
	duration := time.Since(start)

	if err == nil && (resp == nil || strings.TrimSpace(resp.Text) == "") {
		err = errors.Wrap(errors.ErrEmptyResponse, "generator returned no text")
	}
	if err != nil {
		metrics.RecordAgentCall(a.cfg.Role.String(), model.Name, callStatus(err), duration, 0, 0, 0)
		a.log.Warnw("Generation failed",
			"model", model.Name,
			"duration", duration,
			"error", err,
		)
		return nil, &GenerationFailure{Role: a.cfg.Role, Cause: err}
	}

	modelName := resp.Model
	if modelName == "" {
		modelName = model.Name
	}

	var cost float64
	if a.costs != nil {
		cost = a.costs.RecordUsage(model, resp.InputTokens, resp.OutputTokens)
	}
	metrics.RecordAgentCall(a.cfg.Role.String(), modelName, "success", duration, resp.InputTokens, resp.OutputTokens, cost)

	a.log.Debugw("Generation completed",
		"model", modelName,
		"duration", duration,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
		"cost_usd", cost,
	)

	return &PlanResult{
		Role:         a.cfg.Role,
		Content:      resp.Text,
		Model:        modelName,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
		Duration:     duration,
	}, nil
}

func callStatus(err error) string {
	switch {
	case errors.Is(err, errors.ErrRateLimitExceeded):
		return "rate_limited"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, errors.ErrTimeout):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
