package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"unirise-backend/internal/llm"
	"unirise-backend/internal/shared/telemetry"
)

const (
	providerName = "gemini"
	defaultModel = "gemini-1.5-flash"
)

// Client implements llm.Client for Google Gemini.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a new Gemini client. Close releases its connection.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Complete generates text for prompt with the shared temperature and token budget.
func (c *Client) Complete(ctx context.Context, prompt string) (llm.Completion, error) {
	ctx, span := otel.Tracer("unirise/llm").Start(ctx, "gemini.generate_content")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", providerName),
		attribute.String("llm.model", c.model),
	)

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(llm.Temperature)
	model.SetMaxOutputTokens(llm.MaxTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		err = classify(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return llm.Completion{}, err
	}

	out, err := completionFromResponse(resp, c.model)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return llm.Completion{}, err
	}
	fields := map[string]any{"provider": providerName, "model": out.Model}
	if out.Usage != nil {
		fields["total_tokens"] = out.Usage.TotalTokens
	}
	telemetry.Info("llm.response", fields)
	return out, nil
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func classify(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Errorf("%w: %v", llm.ErrEmptyResponse, blocked)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &llm.UpstreamError{Provider: providerName, StatusCode: apiErr.Code, Message: apiErr.Message}
	}
	return fmt.Errorf("gemini generate content: %w", err)
}

func completionFromResponse(resp *genai.GenerateContentResponse, model string) (llm.Completion, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return llm.Completion{}, llm.ErrEmptyResponse
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return llm.Completion{}, llm.ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return llm.Completion{}, llm.ErrEmptyResponse
	}

	out := llm.Completion{Text: text, Model: model}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = &llm.Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return out, nil
}

var _ llm.Client = (*Client)(nil)
