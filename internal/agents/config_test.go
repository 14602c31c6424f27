package agents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRoleConfigs(t *testing.T) {
	for _, role := range Roles() {
		cfg, ok := DefaultRoleConfigs[role]
		require.True(t, ok, "missing config for %s", role)
		assert.Equal(t, role, cfg.Role)
		assert.NotEmpty(t, cfg.Description)
		assert.NotEmpty(t, cfg.Instructions)
		assert.Positive(t, cfg.Timeout)
	}

	assert.True(t, DefaultRoleConfigs[RolePlanner].AllowSearch)
	assert.True(t, DefaultRoleConfigs[RoleTrainer].AllowSearch)
	assert.False(t, DefaultRoleConfigs[RoleLead].AllowSearch)
}

func TestResolveRoleConfig(t *testing.T) {
	cfg, ok := ResolveRoleConfig(RolePlanner, RoleConfigOptions{CallTimeout: 5 * time.Second})
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.False(t, cfg.AllowSearch, "search disabled by options")

	cfg, ok = ResolveRoleConfig(RoleTrainer, RoleConfigOptions{EnableSearch: true})
	require.True(t, ok)
	assert.True(t, cfg.AllowSearch)
	assert.Equal(t, DefaultRoleConfigs[RoleTrainer].Timeout, cfg.Timeout)

	// Copies never alias the shared defaults
	cfg.Instructions[0] = "changed"
	assert.NotEqual(t, "changed", DefaultRoleConfigs[RoleTrainer].Instructions[0])

	_, ok = ResolveRoleConfig("coach", RoleConfigOptions{})
	assert.False(t, ok)
}

func TestFullPlanBudget(t *testing.T) {
	assert.Equal(t, 90*time.Second+2*time.Minute, FullPlanBudget(RoleConfigOptions{}))
	assert.Equal(t, 2*time.Minute, FullPlanBudget(RoleConfigOptions{CallTimeout: time.Minute}))
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	assert.Error(t, registry.Complete())

	for _, role := range []Role{RoleLead, RolePlanner} {
		ag, err := NewAgent(DefaultRoleConfigs[role], newStubGenerator(nil), nil)
		require.NoError(t, err)
		registry.Register(ag)
	}

	assert.Equal(t, []Role{RolePlanner, RoleLead}, registry.List())
	assert.Panics(t, func() { registry.MustGet(RoleTrainer) })

	_, ok := registry.Get(RoleLead)
	assert.True(t, ok)
}

func TestCostTracker(t *testing.T) {
	ct := NewCostTracker()
	info := newStubGenerator(nil).Model()
	cost := ct.RecordUsage(info, 1000, 500)
	assert.InDelta(t, 0.001+0.001, cost, 1e-9)

	ct.RecordUsage(info, 0, 0)
	got, ok := ct.GetCost(info.Name)
	require.True(t, ok)
	assert.Equal(t, int64(2), got.CallCount)
	assert.Equal(t, int64(1000), got.InputTokens)

	assert.Equal(t, map[string]int64{info.Name: 2}, ct.CallsByModel())
	assert.InDelta(t, cost, ct.CostsByModel()[info.Name], 1e-9)

	ct.Reset()
	assert.Empty(t, ct.GetAllCosts())
	assert.Zero(t, ct.TotalCost())
}
