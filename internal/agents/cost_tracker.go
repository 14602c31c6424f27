package agents

import (
	"sync"

	"github.com/NIRMITI18/health-care-agent/internal/adapters/ai"
)

// CostTracker tracks AI model usage costs in process memory.
type CostTracker struct {
	mu    sync.RWMutex
	costs map[string]*ModelCost // model ID -> cost data
}

// ModelCost tracks cost for a specific model
type ModelCost struct {
	ModelID      string
	InputTokens  int64
	OutputTokens int64
	TotalCostUSD float64
	CallCount    int64
}

// NewCostTracker creates a new cost tracker
func NewCostTracker() *CostTracker {
	return &CostTracker{
		costs: make(map[string]*ModelCost),
	}
}

// RecordUsage records token usage for a model and returns the estimated cost
func (ct *CostTracker) RecordUsage(model ai.ModelInfo, inputTokens, outputTokens int) float64 {
	cost := ai.EstimateCost(model, inputTokens, outputTokens)

	ct.mu.Lock()
	defer ct.mu.Unlock()

	mc, exists := ct.costs[model.Name]
	if !exists {
		mc = &ModelCost{ModelID: model.Name}
		ct.costs[model.Name] = mc
	}

	mc.InputTokens += int64(inputTokens)
	mc.OutputTokens += int64(outputTokens)
	mc.TotalCostUSD += cost
	mc.CallCount++

	return cost
}

// GetCost returns a snapshot of cost data for a specific model
func (ct *CostTracker) GetCost(modelID string) (ModelCost, bool) {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	cost, ok := ct.costs[modelID]
	if !ok {
		return ModelCost{}, false
	}
	return *cost, true
}

// GetAllCosts returns all cost data
func (ct *CostTracker) GetAllCosts() map[string]ModelCost {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	costs := make(map[string]ModelCost, len(ct.costs))
	for id, cost := range ct.costs {
		costs[id] = *cost
	}

	return costs
}

// CostsByModel returns total USD per model
func (ct *CostTracker) CostsByModel() map[string]float64 {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	out := make(map[string]float64, len(ct.costs))
	for id, cost := range ct.costs {
		out[id] = cost.TotalCostUSD
	}
	return out
}

// CallsByModel returns recorded calls per model
func (ct *CostTracker) CallsByModel() map[string]int64 {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	out := make(map[string]int64, len(ct.costs))
	for id, cost := range ct.costs {
		out[id] = cost.CallCount
	}
	return out
}

// TotalCost returns the total cost across all models
func (ct *CostTracker) TotalCost() float64 {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	var total float64
	for _, cost := range ct.costs {
		total += cost.TotalCostUSD
	}

	return total
}

// Reset clears all cost data
func (ct *CostTracker) Reset() {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	ct.costs = make(map[string]*ModelCost)
}
