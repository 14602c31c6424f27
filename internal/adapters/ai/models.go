package ai

import "strings"

func catalogue() []ModelInfo {
	return []ModelInfo{
		{
			Provider:        ProviderNameGoogle,
			Name:            ModelGemini20Flash,
			MaxTokens:       1048576,
			InputCostPer1K:  0.0001,
			OutputCostPer1K: 0.0004,
			SupportsSearch:  true,
		},
		{
			Provider:        ProviderNameGoogle,
			Name:            ModelGemini25Flash,
			MaxTokens:       1048576,
			InputCostPer1K:  0.0003,
			OutputCostPer1K: 0.0025,
			SupportsSearch:  true,
		},
		{
			Provider:        ProviderNameGoogle,
			Name:            ModelGemini25Pro,
			MaxTokens:       1048576,
			InputCostPer1K:  0.00125,
			OutputCostPer1K: 0.01,
			SupportsSearch:  true,
		},
		{
			Provider:        ProviderNameOpenAI,
			Name:            ModelGPT4oMini,
			MaxTokens:       128000,
			InputCostPer1K:  0.00015,
			OutputCostPer1K: 0.0006,
		},
		{
			Provider:        ProviderNameOpenAI,
			Name:            ModelGPT41,
			MaxTokens:       1047576,
			InputCostPer1K:  0.002,
			OutputCostPer1K: 0.008,
		},
	}
}

// ResolveModel returns catalogue metadata for provider+model. Unknown models
// are still usable; they get zero pricing and no search support.
func ResolveModel(provider ProviderName, model string) ModelInfo {
	for _, m := range catalogue() {
		if m.Provider == provider && strings.EqualFold(m.Name, model) {
			return m
		}
	}
	return ModelInfo{Provider: provider, Name: model}
}

// ListModels returns the known models of a provider.
func ListModels(provider ProviderName) []ModelInfo {
	var models []ModelInfo
	for _, m := range catalogue() {
		if m.Provider == provider {
			models = append(models, m)
		}
	}
	return models
}

// EstimateCost prices token usage in USD.
func EstimateCost(model ModelInfo, inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)/1000.0)*model.InputCostPer1K + (float64(outputTokens)/1000.0)*model.OutputCostPer1K
}
