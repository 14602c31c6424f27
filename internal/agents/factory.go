package agents

import (
	"fmt"

	"github.com/NIRMITI18/health-care-agent/internal/adapters/ai"
)

// FactoryDeps gathers external dependencies needed to instantiate agents.
type FactoryDeps struct {
	Generator   ai.Generator
	CostTracker *CostTracker
	Options     RoleConfigOptions
}

// Factory creates configured agents and registries.
type Factory struct {
	generator ai.Generator
	costs     *CostTracker
	options   RoleConfigOptions
}

// NewFactory builds an agent factory with required dependencies.
func NewFactory(deps FactoryDeps) (*Factory, error) {
	if deps.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}

	return &Factory{generator: deps.Generator, costs: deps.CostTracker, options: deps.Options}, nil
}

// CreateAgent constructs the agent for a single role.
func (f *Factory) CreateAgent(role Role) (Agent, error) {
	cfg, ok := ResolveRoleConfig(role, f.options)
	if !ok {
		return nil, fmt.Errorf("no configuration for role %s", role)
	}

	return NewAgent(cfg, f.generator, f.costs)
}

// CreateRegistry instantiates an agent for every role.
func (f *Factory) CreateRegistry() (*Registry, error) {
	registry := NewRegistry()

	for _, role := range Roles() {
		ag, err := f.CreateAgent(role)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s agent: %w", role, err)
		}
		registry.Register(ag)
	}

	return registry, nil
}
