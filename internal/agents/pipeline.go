package agents

import (
	"fmt"
	"sync"
	"time"

	"github.com/NIRMITI18/health-care-agent/internal/metrics"
	"github.com/NIRMITI18/health-care-agent/pkg/logger"
)

// PipelineState is the lifecycle state of one full plan run.
type PipelineState string

const (
	StateIdle                   PipelineState = "idle"
	StateAwaitingMealAndFitness PipelineState = "awaiting_meal_and_fitness"
	StateAwaitingLead           PipelineState = "awaiting_lead"
	StateDone                   PipelineState = "done"
	StateFailed                 PipelineState = "failed"
)

var pipelineTransitions = map[PipelineState][]PipelineState{
	StateIdle:                   {StateAwaitingMealAndFitness},
	StateAwaitingMealAndFitness: {StateAwaitingLead, StateFailed},
	StateAwaitingLead:           {StateDone, StateFailed},
}

// IsTerminal reports whether no further transitions are possible.
func (s PipelineState) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

// pipelineRun tracks one ComputeFullPlan invocation. Illegal transitions
// are programming errors and panic.
type pipelineRun struct {
	id      string
	started time.Time
	log     *logger.Logger

	mu          sync.Mutex
	state       PipelineState
	failedStage Stage
	history     []PipelineState
}

func newPipelineRun(id string, log *logger.Logger) *pipelineRun {
	return &pipelineRun{
		id:      id,
		started: time.Now(),
		log:     log,
		state:   StateIdle,
		history: []PipelineState{StateIdle},
	}
}

func (r *pipelineRun) awaitPrerequisites() { r.transition(StateAwaitingMealAndFitness, "") }
func (r *pipelineRun) awaitLead()          { r.transition(StateAwaitingLead, "") }
func (r *pipelineRun) complete()           { r.transition(StateDone, "") }
func (r *pipelineRun) fail(stage Stage)    { r.transition(StateFailed, stage) }

// State returns the current state and, for failed runs, the failing stage.
func (r *pipelineRun) State() (PipelineState, Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.failedStage
}

// History returns every state the run has been in, in order.
func (r *pipelineRun) History() []PipelineState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]PipelineState(nil), r.history...)
}

func (r *pipelineRun) transition(to PipelineState, stage Stage) {
	r.mu.Lock()
	from := r.state
	if !canTransition(from, to) {
		r.mu.Unlock()
		panic(fmt.Sprintf("pipeline %s: illegal transition %s -> %s", r.id, from, to))
	}
	r.state = to
	r.failedStage = stage
	r.history = append(r.history, to)
	r.mu.Unlock()

	r.log.Debugw("Pipeline transition", "run_id", r.id, "from", from, "to", to, "stage", stage)

	if to.IsTerminal() {
		metrics.RecordPipelineRun(string(to), string(stage), time.Since(r.started))
	}
}

func canTransition(from, to PipelineState) bool {
	for _, next := range pipelineTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
