package agents

import (
	"fmt"
	"sync"
)

// Registry stores agents by their role for quick lookup.
type Registry struct {
	agents map[Role]Agent
	mu     sync.RWMutex
}

// NewRegistry constructs an empty agent registry.
func NewRegistry() *Registry {
	return &Registry{agents: make(map[Role]Agent)}
}

// Register adds or replaces an agent entry.
func (r *Registry) Register(ag Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents[ag.Role()] = ag
}

// Get retrieves an agent by role.
func (r *Registry) Get(role Role) (Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ag, ok := r.agents[role]
	return ag, ok
}

// MustGet retrieves an agent by role and panics when it was never registered.
func (r *Registry) MustGet(role Role) Agent {
	ag, ok := r.Get(role)
	if !ok {
		panic(fmt.Sprintf("agent for role %s is not registered", role))
	}
	return ag
}

// List returns registered roles in pipeline order.
func (r *Registry) List() []Role {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]Role, 0, len(r.agents))
	for _, role := range Roles() {
		if _, ok := r.agents[role]; ok {
			res = append(res, role)
		}
	}

	return res
}

// Complete reports an error naming every role without an agent.
func (r *Registry) Complete() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []Role
	for _, role := range Roles() {
		if _, ok := r.agents[role]; !ok {
			missing = append(missing, role)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("agents not registered for roles: %v", missing)
	}
	return nil
}
