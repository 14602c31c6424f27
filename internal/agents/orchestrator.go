package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/NIRMITI18/health-care-agent/internal/domain/profile"
	"github.com/NIRMITI18/health-care-agent/pkg/errors"
	"github.com/NIRMITI18/health-care-agent/pkg/logger"
)

// OrchestratorDeps gathers the orchestrator's explicit dependencies.
type OrchestratorDeps struct {
	Registry    *Registry
	Prompts     *PromptBuilder
	CostTracker *CostTracker // optional
}

// Orchestrator realizes the three planning operations by composing agent calls.
type Orchestrator struct {
	registry *Registry
	prompts  *PromptBuilder
	costs    *CostTracker
	log      *logger.Logger
}

// NewOrchestrator creates a new orchestrator. Every role must have an agent.
func NewOrchestrator(deps OrchestratorDeps) (*Orchestrator, error) {
	if deps.Registry == nil {
		return nil, fmt.Errorf("agent registry is required")
	}
	if err := deps.Registry.Complete(); err != nil {
		return nil, err
	}
	if deps.Prompts == nil {
		return nil, fmt.Errorf("prompt builder is required")
	}
	if deps.CostTracker == nil {
		deps.CostTracker = NewCostTracker()
	}

	return &Orchestrator{
		registry: deps.Registry,
		prompts:  deps.Prompts,
		costs:    deps.CostTracker,
		log:      logger.Get().With("component", "orchestrator"),
	}, nil
}

// Costs returns the usage tracker shared with the agents.
func (o *Orchestrator) Costs() *CostTracker {
	return o.costs
}

// ComputeMealPlan builds the meal prompt and runs the Planner.
func (o *Orchestrator) ComputeMealPlan(ctx context.Context, p profile.HealthProfile) (string, error) {
	res, err := o.generate(ctx, RolePlanner, o.prompts.BuildMealPrompt(p))
	if err != nil {
		o.report(ctx, err, "")
		return "", err
	}
	return res.Content, nil
}

// ComputeFitnessPlan builds the fitness prompt and runs the Trainer.
func (o *Orchestrator) ComputeFitnessPlan(ctx context.Context, p profile.HealthProfile) (string, error) {
	res, err := o.generate(ctx, RoleTrainer, o.prompts.BuildFitnessPrompt(p))
	if err != nil {
		o.report(ctx, err, "")
		return "", err
	}
	return res.Content, nil
}

// ComputeFullPlan runs Planner and Trainer concurrently, then the Lead on both results.
// The Lead never runs unless both prerequisites succeeded; the first failure
// cancels its sibling and is returned tagged with its stage.
func (o *Orchestrator) ComputeFullPlan(ctx context.Context, p profile.HealthProfile) (*CompositePlan, error) {
	runID := uuid.NewString()
	run := newPipelineRun(runID, o.log)
	start := time.Now()

	run.awaitPrerequisites()

	var meal, fitness *PlanResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := o.generate(gctx, RolePlanner, o.prompts.BuildMealPrompt(p))
		if err != nil {
			return err.withStage(StageMeal)
		}
		meal = res
		return nil
	})
	g.Go(func() error {
		res, err := o.generate(gctx, RoleTrainer, o.prompts.BuildFitnessPrompt(p))
		if err != nil {
			return err.withStage(StageFitness)
		}
		fitness = res
		return nil
	})

	if err := g.Wait(); err != nil {
		stage := StageMeal
		var failure *GenerationFailure
		if errors.As(err, &failure) {
			stage = failure.Stage
		}
		run.fail(stage)
		o.report(ctx, err, runID)
		return nil, err
	}

	run.awaitLead()

	lead, err := o.generate(ctx, RoleLead, o.prompts.BuildHolisticPrompt(p, meal.Content, fitness.Content))
	if err != nil {
		tagged := err.withStage(StageLead)
		run.fail(StageLead)
		o.report(ctx, tagged, runID)
		return nil, tagged
	}

	run.complete()

	o.log.Infow("Full health plan generated",
		"run_id", runID,
		"duration", time.Since(start),
		"input_tokens", meal.InputTokens+fitness.InputTokens+lead.InputTokens,
		"output_tokens", meal.OutputTokens+fitness.OutputTokens+lead.OutputTokens,
	)

	return &CompositePlan{
		Content: lead.Content,
		Meal:    meal,
		Fitness: fitness,
	}, nil
}

// generate runs role's agent and normalizes any failure to *GenerationFailure.
func (o *Orchestrator) generate(ctx context.Context, role Role, prompt string) (*PlanResult, *GenerationFailure) {
	res, err := o.registry.MustGet(role).Generate(ctx, prompt)
	if err != nil {
		var failure *GenerationFailure
		if errors.As(err, &failure) {
			return nil, failure
		}
		return nil, &GenerationFailure{Role: role, Cause: err}
	}
	return res, nil
}

func (o *Orchestrator) report(ctx context.Context, err error, runID string) {
	tags := map[string]string{}
	var failure *GenerationFailure
	if errors.As(err, &failure) {
		tags["role"] = failure.Role.String()
		if failure.Stage != "" {
			tags["stage"] = string(failure.Stage)
		}
	}
	if runID != "" {
		tags["run_id"] = runID
	}

	// Client went away; nothing worth tracking
	if errors.Is(err, context.Canceled) {
		o.log.Warnw("Plan generation cancelled", "error", err, "role", tags["role"], "stage", tags["stage"])
		return
	}

	o.log.ErrorWithContext(ctx, err, tags)
}
