package agents

import "fmt"

// Stage names the pipeline step a failure came from.
type Stage string

const (
	StageMeal    Stage = "meal"
	StageFitness Stage = "fitness"
	StageLead    Stage = "lead"
)

// GenerationFailure is the single error shape agents produce.
// Cause stays reachable through Unwrap.
type GenerationFailure struct {
	Role  Role
	Stage Stage // empty outside of a full plan run
	Cause error
}

func (e *GenerationFailure) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s generation failed at stage %s: %v", e.Role, e.Stage, e.Cause)
	}
	return fmt.Sprintf("%s generation failed: %v", e.Role, e.Cause)
}

func (e *GenerationFailure) Unwrap() error {
	return e.Cause
}

// withStage returns a copy tagged with stage.
func (e *GenerationFailure) withStage(stage Stage) *GenerationFailure {
	tagged := *e
	tagged.Stage = stage
	return &tagged
}
