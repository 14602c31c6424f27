package agents

import "time"

// RoleConfig is the fixed behavioural configuration of one role.
type RoleConfig struct {
	Role         Role
	Name         string
	Description  string
	Instructions []string
	AllowSearch  bool
	Timeout      time.Duration
}

// DefaultRoleConfigs holds the built-in configuration for every role. Read-only.
var DefaultRoleConfigs = map[Role]RoleConfig{
	RolePlanner: {
		Role:        RolePlanner,
		Name:        "DietaryPlanner",
		Description: "Creates personalized dietary plans based on user input.",
		Instructions: []string{
			"Generate a diet plan with breakfast, lunch, dinner, and snacks.",
			"Consider dietary preferences like Keto, Vegetarian, or Low Carb.",
			"Ensure proper hydration and electrolyte balance.",
			"Provide nutritional breakdown including macronutrients and vitamins.",
			"Suggest meal preparation tips for easy implementation.",
			"If necessary, search the web for additional information.",
		},
		AllowSearch: true,
		Timeout:     90 * time.Second,
	},
	RoleTrainer: {
		Role:        RoleTrainer,
		Name:        "FitnessTrainer",
		Description: "Generates customized workout routines based on fitness goals.",
		Instructions: []string{
			"Create a workout plan including warm-ups, main exercises, and cool-downs.",
			"Adjust workouts based on fitness level: Beginner, Intermediate, Advanced.",
			"Consider weight loss, muscle gain, endurance, or flexibility goals.",
			"Provide safety tips and injury prevention advice.",
			"Suggest progress tracking methods for motivation.",
			"If necessary, search the web for additional information.",
		},
		AllowSearch: true,
		Timeout:     90 * time.Second,
	},
	RoleLead: {
		Role:        RoleLead,
		Name:        "TeamLead",
		Description: "Combines diet and workout plans into a holistic health strategy.",
		Instructions: []string{
			"Merge personalized diet and fitness plans for a comprehensive approach, Use Tables if possible.",
			"Ensure alignment between diet and exercise for optimal results.",
			"Suggest lifestyle tips for motivation and consistency.",
			"Provide guidance on tracking progress and adjusting plans over time.",
		},
		AllowSearch: false,
		Timeout:     2 * time.Minute, // larger prompt, both plans embedded
	},
}

// RoleConfigOptions adjusts the defaults from runtime configuration.
type RoleConfigOptions struct {
	CallTimeout  time.Duration // zero keeps per-role defaults
	EnableSearch bool
}

// ResolveRoleConfig returns a copy of the role's defaults with options applied.
func ResolveRoleConfig(role Role, opts RoleConfigOptions) (RoleConfig, bool) {
	cfg, ok := DefaultRoleConfigs[role]
	if !ok {
		return RoleConfig{}, false
	}

	cfg.Instructions = append([]string(nil), cfg.Instructions...)
	if opts.CallTimeout > 0 {
		cfg.Timeout = opts.CallTimeout
	}
	cfg.AllowSearch = cfg.AllowSearch && opts.EnableSearch

	return cfg, true
}

// FullPlanBudget is the longest a successful full plan can take: the slower of
// Planner and Trainer, then the Lead.
func FullPlanBudget(opts RoleConfigOptions) time.Duration {
	planner, _ := ResolveRoleConfig(RolePlanner, opts)
	trainer, _ := ResolveRoleConfig(RoleTrainer, opts)
	lead, _ := ResolveRoleConfig(RoleLead, opts)

	return max(planner.Timeout, trainer.Timeout) + lead.Timeout
}
