package agents

import (
	"strings"

	"github.com/NIRMITI18/health-care-agent/internal/domain/profile"
	"github.com/NIRMITI18/health-care-agent/pkg/errors"
	"github.com/NIRMITI18/health-care-agent/pkg/templates"
)

// Prompt template IDs
const (
	templateMeal     = "prompts/meal"
	templateFitness  = "prompts/fitness"
	templateHolistic = "prompts/holistic"
)

// PromptBuilder renders role prompts from a profile. Deterministic and side-effect free.
type PromptBuilder struct {
	templates *templates.Registry
}

type holisticData struct {
	Profile     profile.HealthProfile
	MealPlan    string
	FitnessPlan string
}

// NewPromptBuilder verifies the prompt templates once so the Build methods
// cannot fail afterwards. A nil registry uses the embedded prompts.
func NewPromptBuilder(reg *templates.Registry) (*PromptBuilder, error) {
	if reg == nil {
		reg = templates.Get()
	}

	if err := reg.Require(templateMeal, templateFitness, templateHolistic); err != nil {
		return nil, errors.Wrap(err, "prompt templates")
	}

	sample := profile.HealthProfile{
		Name:              profile.DefaultName,
		Age:               1,
		Weight:            1,
		Height:            1,
		ActivityLevel:     "sample",
		DietaryPreference: profile.DefaultDietaryPreference,
		FitnessGoal:       "sample",
	}
	for id, data := range map[string]any{
		templateMeal:     sample,
		templateFitness:  sample,
		templateHolistic: holisticData{Profile: sample},
	} {
		if _, err := reg.Render(id, data); err != nil {
			return nil, errors.Wrapf(err, "verify template %s", id)
		}
	}

	return &PromptBuilder{templates: reg}, nil
}

// BuildMealPrompt mentions age, weight, height, activity level, dietary preference and fitness goal.
func (b *PromptBuilder) BuildMealPrompt(p profile.HealthProfile) string {
	return b.render(templateMeal, p)
}

// BuildFitnessPrompt mentions age, weight, height, activity level and fitness goal.
// The dietary preference is left out on purpose.
func (b *PromptBuilder) BuildFitnessPrompt(p profile.HealthProfile) string {
	return b.render(templateFitness, p)
}

// BuildHolisticPrompt greets the user by name and embeds both plans in full.
func (b *PromptBuilder) BuildHolisticPrompt(p profile.HealthProfile, mealPlan, fitnessPlan string) string {
	return b.render(templateHolistic, holisticData{
		Profile:     p,
		MealPlan:    mealPlan,
		FitnessPlan: fitnessPlan,
	})
}

// render panics on failure: templates were verified against the same data shapes.
func (b *PromptBuilder) render(id string, data any) string {
	out, err := b.templates.Render(id, data)
	if err != nil {
		panic(errors.Wrapf(err, "render verified template %s", id))
	}
	return strings.TrimSpace(out)
}
