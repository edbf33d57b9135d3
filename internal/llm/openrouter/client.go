package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"unirise-backend/internal/llm"
	"unirise-backend/internal/shared/telemetry"
)

const (
	providerName   = "openrouter"
	defaultURL     = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel   = "anthropic/claude-3-haiku"
	defaultTitle   = "UniRise"
	defaultTimeout = 60 * time.Second

	// maxErrorBody bounds how much of a failed response is kept for messages.
	maxErrorBody = 4 << 10
)

// Options configures a Client.
type Options struct {
	APIKey  string
	Model   string
	URL     string
	Referer string
	Title   string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client implements llm.Client using the OpenRouter chat completions API.
type Client struct {
	apiKey     string
	model      string
	url        string
	referer    string
	title      string
	httpClient *http.Client
}

// NewClient constructs a new OpenRouter client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY is required")
	}
	c := &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		model:      firstNonEmpty(opts.Model, defaultModel),
		url:        firstNonEmpty(opts.URL, defaultURL),
		referer:    strings.TrimSpace(opts.Referer),
		title:      firstNonEmpty(opts.Title, defaultTitle),
		httpClient: opts.HTTPClient,
	}
	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	return c, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *llm.Usage `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error,omitempty"`
}

// Complete sends prompt as a single user message and returns the first
// choice's trimmed content.
func (c *Client) Complete(ctx context.Context, prompt string) (llm.Completion, error) {
	ctx, span := otel.Tracer("unirise/llm").Start(ctx, "openrouter.chat_completion")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", providerName),
		attribute.String("llm.model", c.model),
	)

	out, err := c.complete(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return llm.Completion{}, err
	}
	if out.Usage != nil {
		span.SetAttributes(attribute.Int("llm.total_tokens", out.Usage.TotalTokens))
	}
	return out, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (llm.Completion, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: llm.Temperature,
		MaxTokens:   llm.MaxTokens,
	})
	if err != nil {
		return llm.Completion{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return llm.Completion{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	req.Header.Set("X-Title", c.title)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return llm.Completion{}, fmt.Errorf("openrouter request timeout: %w", err)
		}
		return llm.Completion{}, fmt.Errorf("openrouter request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.Completion{}, fmt.Errorf("openrouter read body: %w", err)
	}

	var parsed chatResponse
	parseErr := json.Unmarshal(body, &parsed)
	if resp.StatusCode >= http.StatusBadRequest {
		upstream := &llm.UpstreamError{Provider: providerName, StatusCode: resp.StatusCode}
		if parseErr == nil && parsed.Error != nil {
			upstream.Message = parsed.Error.Message
		}
		telemetry.Error("llm.upstream_error", map[string]any{
			"provider": providerName,
			"model":    c.model,
			"status":   resp.StatusCode,
			"body":     truncate(body, maxErrorBody),
		})
		return llm.Completion{}, upstream
	}
	if parseErr != nil {
		return llm.Completion{}, fmt.Errorf("openrouter response parse: %w", parseErr)
	}
	// OpenRouter occasionally reports errors inside a 200 body.
	if parsed.Error != nil {
		return llm.Completion{}, &llm.UpstreamError{
			Provider:   providerName,
			StatusCode: http.StatusBadGateway,
			Message:    parsed.Error.Message,
		}
	}
	if len(parsed.Choices) == 0 {
		return llm.Completion{}, llm.ErrEmptyResponse
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return llm.Completion{}, llm.ErrEmptyResponse
	}

	model := firstNonEmpty(parsed.Model, c.model)
	logUsage(model, parsed.Usage)
	return llm.Completion{Text: content, Model: model, Usage: parsed.Usage}, nil
}

func logUsage(model string, usage *llm.Usage) {
	fields := map[string]any{"provider": providerName, "model": model}
	if usage != nil {
		fields["prompt_tokens"] = usage.PromptTokens
		fields["completion_tokens"] = usage.CompletionTokens
		fields["total_tokens"] = usage.TotalTokens
	}
	telemetry.Info("llm.response", fields)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

var _ llm.Client = (*Client)(nil)
