package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveModel(t *testing.T) {
	known := ResolveModel(ProviderNameGoogle, "Gemini-2.0-Flash")
	assert.Equal(t, ModelGemini20Flash, known.Name)
	assert.True(t, known.SupportsSearch)
	assert.Positive(t, known.InputCostPer1K)

	unknown := ResolveModel(ProviderNameOpenAI, "my-finetune")
	assert.Equal(t, "my-finetune", unknown.Name)
	assert.Equal(t, ProviderNameOpenAI, unknown.Provider)
	assert.Zero(t, unknown.InputCostPer1K)
	assert.False(t, unknown.SupportsSearch)
}

func TestListModels(t *testing.T) {
	for _, m := range ListModels(ProviderNameOpenAI) {
		assert.Equal(t, ProviderNameOpenAI, m.Provider)
		assert.False(t, m.SupportsSearch)
	}
	assert.Len(t, ListModels(ProviderNameGoogle), 3)
	assert.Empty(t, ListModels("claude"))
}

func TestDefaultModelIsCatalogued(t *testing.T) {
	for _, p := range []ProviderName{ProviderNameGoogle, ProviderNameOpenAI} {
		m := ResolveModel(p, DefaultModel(p))
		assert.Positive(t, m.MaxTokens, "default model for %s should be known", p)
	}
}

func TestEstimateCost(t *testing.T) {
	m := ModelInfo{InputCostPer1K: 0.001, OutputCostPer1K: 0.002}
	assert.InDelta(t, 0.001+0.004, EstimateCost(m, 1000, 2000), 1e-9)
	assert.Zero(t, EstimateCost(ModelInfo{}, 1000, 1000))
}

func TestSystemInstruction(t *testing.T) {
	got := systemInstruction(GenerateRequest{
		Description:  "You are a coach.",
		Instructions: []string{"First.", "Second."},
	})

	assert.True(t, strings.HasPrefix(got, "You are a coach.\n\nInstructions:\n"))
	assert.Less(t, strings.Index(got, "- First."), strings.Index(got, "- Second."))
	assert.True(t, strings.HasSuffix(got, "- "+markdownInstruction))
}
