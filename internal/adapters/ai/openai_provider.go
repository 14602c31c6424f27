package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/NIRMITI18/health-care-agent/pkg/errors"
	"github.com/NIRMITI18/health-care-agent/pkg/logger"
)

// OpenAIGenerator serves generations from the OpenAI chat completions API.
// Chat models have no built-in web search, so AllowSearch is ignored.
type OpenAIGenerator struct {
	completions openAICompletions
	model       ModelInfo
	log         *logger.Logger
}

type openAICompletions interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// NewOpenAIGenerator creates an OpenAI-backed generator using the official SDK.
func NewOpenAIGenerator(apiKey string, model string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "openai API key not configured")
	}
	if model == "" {
		model = DefaultModel(ProviderNameOpenAI)
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return newOpenAIGenerator(&client.Chat.Completions, ResolveModel(ProviderNameOpenAI, model)), nil
}

func newOpenAIGenerator(completions openAICompletions, info ModelInfo) *OpenAIGenerator {
	return &OpenAIGenerator{
		completions: completions,
		model:       info,
		log:         logger.Get().With("component", "openai_generator", "model", info.Name),
	}
}

// Name returns provider name.
func (g *OpenAIGenerator) Name() ProviderName { return ProviderNameOpenAI }

// Model returns the serving model.
func (g *OpenAIGenerator) Model() ModelInfo { return g.model }

// Generate sends one chat completion and returns the first choice.
func (g *OpenAIGenerator) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if req.AllowSearch {
		g.log.Debugw("Search requested but not supported by chat completions, ignoring", "role", req.Role)
	}

	resp, err := g.completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model.Name),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemInstruction(req)),
			openai.UserMessage(req.Prompt),
		},
	})
	if err != nil {
		return nil, classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyResponse, "openai returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, errors.Wrapf(errors.ErrEmptyResponse, "openai returned no text (finish reason: %s)", resp.Choices[0].FinishReason)
	}

	return &GenerateResponse{
		Text:         text,
		Model:        g.model.Name,
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
	}, nil
}

func classifyOpenAIError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("openai: %w: %w", errors.ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("openai: %w: %w", errors.ErrQuotaExceeded, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("openai: %w: %w", errors.ErrUnauthorized, err)
		default:
			return fmt.Errorf("openai API error (%d): %w: %w", apiErr.StatusCode, errors.ErrExternal, err)
		}
	}

	return errors.Wrap(err, "openai chat completion")
}

var _ Generator = (*OpenAIGenerator)(nil)
