package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/NIRMITI18/health-care-agent/pkg/errors"
	"github.com/NIRMITI18/health-care-agent/pkg/logger"
)

// GeminiGenerator serves generations from Google Gemini. Search-enabled
// requests attach the Google Search grounding tool, which the model may call
// any number of times before answering.
type GeminiGenerator struct {
	models geminiModels
	model  ModelInfo
	log    *logger.Logger
}

// geminiModels is the slice of the genai client the generator depends on.
type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewGeminiGenerator creates a Gemini-backed generator.
func NewGeminiGenerator(ctx context.Context, apiKey string, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "gemini API key not configured")
	}
	if model == "" {
		model = DefaultModel(ProviderNameGoogle)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}

	return newGeminiGenerator(client.Models, ResolveModel(ProviderNameGoogle, model)), nil
}

func newGeminiGenerator(models geminiModels, info ModelInfo) *GeminiGenerator {
	return &GeminiGenerator{
		models: models,
		model:  info,
		log:    logger.Get().With("component", "gemini_generator", "model", info.Name),
	}
}

// Name returns provider name.
func (g *GeminiGenerator) Name() ProviderName { return ProviderNameGoogle }

// Model returns the serving model.
func (g *GeminiGenerator) Model() ModelInfo { return g.model }

// Generate sends one GenerateContent call and returns its text.
func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: req.Prompt}},
		},
	}

	resp, err := g.models.GenerateContent(ctx, g.model.Name, contents, g.buildConfig(req))
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		reason := "unknown"
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != "" {
			reason = string(resp.Candidates[0].FinishReason)
		}
		return nil, errors.Wrapf(errors.ErrEmptyResponse, "gemini returned no text (finish reason: %s)", reason)
	}

	out := &GenerateResponse{
		Text:  text,
		Model: g.model.Name,
	}
	if resp.UsageMetadata != nil {
		out.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		out.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	g.log.Debugw("Gemini response received",
		"role", req.Role,
		"input_tokens", out.InputTokens,
		"output_tokens", out.OutputTokens,
		"search", req.AllowSearch,
	)

	return out, nil
}

func (g *GeminiGenerator) buildConfig(req GenerateRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction(req)}},
		},
	}

	if req.AllowSearch && g.model.SupportsSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	return cfg
}

func classifyGeminiError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("gemini: %w: %w", errors.ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			return errors.Wrapf(errors.ErrQuotaExceeded, "gemini: %s", apiErr.Message)
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.Wrapf(errors.ErrUnauthorized, "gemini: %s", apiErr.Message)
		default:
			return errors.Wrapf(errors.ErrExternal, "gemini API error (%d %s): %s", apiErr.Code, apiErr.Status, apiErr.Message)
		}
	}

	return errors.Wrap(err, "gemini generate content")
}

var _ Generator = (*GeminiGenerator)(nil)
