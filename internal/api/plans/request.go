package plans

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/NIRMITI18/health-care-agent/internal/domain/profile"
	"github.com/NIRMITI18/health-care-agent/pkg/errors"
)

// numberField holds a JSON number or numeric string until it is coerced.
type numberField struct {
	raw string
	set bool
}

func (n *numberField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	n.set = true
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n.raw = strings.TrimSpace(s)
		return nil
	}
	n.raw = string(b)
	return nil
}

func (n numberField) asFloat(field string) (float64, error) {
	if !n.set {
		return 0, nil
	}
	v, err := strconv.ParseFloat(n.raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.NewValidationError(field, "must be a number", n.raw)
	}
	return v, nil
}

func (n numberField) asInt(field string) (int, error) {
	v, err := n.asFloat(field)
	if err != nil {
		return 0, errors.NewValidationError(field, "must be an integer", n.raw)
	}
	if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, errors.NewValidationError(field, "must be an integer", n.raw)
	}
	return int(v), nil
}

// healthRequest is the wire shape of a plan request. Unknown fields are ignored;
// numbers may arrive as JSON numbers or numeric strings.
type healthRequest struct {
	Name              string      `json:"name"`
	Age               numberField `json:"age"`
	Weight            numberField `json:"weight"`
	Height            numberField `json:"height"`
	ActivityLevel     string      `json:"activity_level"`
	DietaryPreference string      `json:"dietary_preference"`
	FitnessGoal       string      `json:"fitness_goal"`
}

// toProfile coerces numeric fields. Errors are *errors.ValidationError.
func (r healthRequest) toProfile() (profile.HealthProfile, error) {
	p := profile.HealthProfile{
		Name:              r.Name,
		ActivityLevel:     r.ActivityLevel,
		DietaryPreference: r.DietaryPreference,
		FitnessGoal:       r.FitnessGoal,
	}

	var err error
	if p.Age, err = r.Age.asInt("age"); err != nil {
		return p, err
	}
	if p.Weight, err = r.Weight.asFloat("weight"); err != nil {
		return p, err
	}
	if p.Height, err = r.Height.asFloat("height"); err != nil {
		return p, err
	}
	return p, nil
}
