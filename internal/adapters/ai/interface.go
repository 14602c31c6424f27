package ai

import "context"

// Generator is the opaque text-generation capability agents call into.
// Implementations must be safe for concurrent use and keep no history
// between calls.
type Generator interface {
	// Name returns the provider name.
	Name() ProviderName

	// Model returns metadata of the model requests are served by.
	Model() ModelInfo

	// Generate performs exactly one request/response cycle.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// GenerateRequest carries one role's fixed configuration plus the rendered prompt.
type GenerateRequest struct {
	Role         string   // Agent role issuing the call, used for logs and rate limit keys
	Description  string   // One-line role description
	Instructions []string // Ordered behavioural instructions
	Prompt       string   // User-facing prompt text
	AllowSearch  bool     // Whether the model may consult web search before answering
}

// GenerateResponse is the final text of a generation plus usage accounting.
type GenerateResponse struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// ModelInfo describes the capabilities and pricing of a model.
type ModelInfo struct {
	Provider        ProviderName
	Name            string  // Provider-specific model identifier
	MaxTokens       int     // Maximum context length
	InputCostPer1K  float64 // USD per 1K input tokens
	OutputCostPer1K float64 // USD per 1K output tokens
	SupportsSearch  bool    // Whether a built-in web search tool can be attached
}
