package ai

import "strings"

// ProviderName represents an AI provider identifier
type ProviderName string

// Provider name constants
const (
	ProviderNameGoogle ProviderName = "gemini"
	ProviderNameOpenAI ProviderName = "openai"
)

// String returns the string representation of the provider name
func (p ProviderName) String() string {
	return string(p)
}

// IsValid checks if the provider name is supported
func (p ProviderName) IsValid() bool {
	switch p {
	case ProviderNameGoogle, ProviderNameOpenAI:
		return true
	default:
		return false
	}
}

// NormalizeProviderName makes provider lookup more forgiving.
func NormalizeProviderName(name string) ProviderName {
	return ProviderName(strings.ToLower(strings.TrimSpace(name)))
}

// Model name constants
const (
	ModelGemini20Flash = "gemini-2.0-flash"
	ModelGemini25Flash = "gemini-2.5-flash"
	ModelGemini25Pro   = "gemini-2.5-pro"

	ModelGPT4oMini = "gpt-4o-mini"
	ModelGPT41     = "gpt-4.1"
)

// DefaultModel returns the model used when AI_MODEL is unset.
func DefaultModel(provider ProviderName) string {
	if provider == ProviderNameOpenAI {
		return ModelGPT4oMini
	}
	return ModelGemini20Flash
}
