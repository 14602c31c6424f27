package profile

import (
	"strings"

	"github.com/NIRMITI18/health-care-agent/pkg/errors"
)

// Defaults applied when the caller leaves optional fields blank
const (
	DefaultName              = "John Doe"
	DefaultDietaryPreference = "Balanced"
)

// HealthProfile describes one user's attributes and goal for a single request.
// It is never persisted.
type HealthProfile struct {
	Name              string  `json:"name"`
	Age               int     `json:"age"`                // Years
	Weight            float64 `json:"weight"`             // Kilograms
	Height            float64 `json:"height"`             // Centimetres
	ActivityLevel     string  `json:"activity_level"`     // Free text, e.g. "Beginner", "Intermediate"
	DietaryPreference string  `json:"dietary_preference"` // e.g. "Keto", "Vegetarian"
	FitnessGoal       string  `json:"fitness_goal"`       // e.g. "Muscle Gain"
}

// ApplyDefaults fills optional fields left blank. Non-blank values are kept
// byte for byte since they are quoted into prompts.
func (p *HealthProfile) ApplyDefaults() {
	if strings.TrimSpace(p.Name) == "" {
		p.Name = DefaultName
	}
	if strings.TrimSpace(p.DietaryPreference) == "" {
		p.DietaryPreference = DefaultDietaryPreference
	}
}

// Validate reports the first field that makes the profile unusable.
// The returned error is a *errors.ValidationError.
func (p HealthProfile) Validate() error {
	switch {
	case p.Age <= 0:
		return errors.NewValidationError("age", "must be a positive integer", p.Age)
	case p.Weight <= 0:
		return errors.NewValidationError("weight", "must be a positive number of kilograms", p.Weight)
	case p.Height <= 0:
		return errors.NewValidationError("height", "must be a positive number of centimetres", p.Height)
	case strings.TrimSpace(p.ActivityLevel) == "":
		return errors.NewValidationError("activity_level", "is required", p.ActivityLevel)
	case strings.TrimSpace(p.FitnessGoal) == "":
		return errors.NewValidationError("fitness_goal", "is required", p.FitnessGoal)
	}
	return nil
}
