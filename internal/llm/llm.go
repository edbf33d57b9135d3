package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Client abstracts chat-completion providers.
type Client interface {
	Complete(ctx context.Context, prompt string) (Completion, error)
}

// Completion is the provider's answer to a single prompt.
type Completion struct {
	Text  string `json:"text"`
	Model string `json:"model"`
	Usage *Usage `json:"usage,omitempty"`
	// Cached is set when the text was served from the response cache.
	Cached bool `json:"-"`
}

// Usage is the provider's token accounting for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Fixed generation parameters shared by every provider.
const (
	Temperature = 0.7
	MaxTokens   = 800
)

// ErrEmptyResponse is returned when the provider answered without usable text.
var ErrEmptyResponse = errors.New("no valid response from completion provider")

// UpstreamError carries the provider's HTTP status and reported message.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Unknown error"
	}
	return fmt.Sprintf("%s http status %d: %s", e.Provider, e.StatusCode, msg)
}

// ProcessingTime estimates generation time as total_tokens/6 seconds, rounded
// to two decimals. It is a heuristic, not a measured latency.
func ProcessingTime(u *Usage) string {
	if u == nil {
		return "N/A"
	}
	secs := math.Round(float64(u.TotalTokens)/6*100) / 100
	return strconv.FormatFloat(secs, 'f', -1, 64) + "s"
}

// WithTimeout bounds every Complete call on next by d. A non-positive d
// returns next unchanged.
func WithTimeout(next Client, d time.Duration) Client {
	if d <= 0 {
		return next
	}
	return timeoutClient{next: next, timeout: d}
}

type timeoutClient struct {
	next    Client
	timeout time.Duration
}

func (c timeoutClient) Complete(ctx context.Context, prompt string) (Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.next.Complete(ctx, prompt)
}
