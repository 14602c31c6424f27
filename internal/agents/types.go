package agents

import "time"

// Role enumerates the agent specializations of the planning pipeline.
type Role string

const (
	RolePlanner Role = "planner" // dietary planner
	RoleTrainer Role = "trainer" // fitness trainer
	RoleLead    Role = "lead"    // team lead merging both plans
)

// Roles lists every role in pipeline order.
func Roles() []Role {
	return []Role{RolePlanner, RoleTrainer, RoleLead}
}

func (r Role) String() string { return string(r) }

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RolePlanner, RoleTrainer, RoleLead:
		return true
	default:
		return false
	}
}

// PlanResult is the output of one agent invocation. Never mutated after creation.
type PlanResult struct {
	Role         Role
	Content      string
	Model        string
	InputTokens  int
	OutputTokens int
	Duration     time.Duration
}

// CompositePlan is the holistic plan plus the two results it was derived from.
type CompositePlan struct {
	Content string
	Meal    *PlanResult
	Fitness *PlanResult
}
