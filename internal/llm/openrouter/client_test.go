package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"unirise-backend/internal/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Options{
		APIKey:  "test-key",
		URL:     server.URL,
		Referer: "https://unrise-ai.vercel.app",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(Options{APIKey: "  "}); err == nil {
		t.Fatalf("expected error for empty api key")
	}
}

func TestCompleteSendsFixedParameters(t *testing.T) {
	var mu sync.Mutex
	var body map[string]any
	var headers http.Header

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		mu.Lock()
		body = payload
		headers = r.Header.Clone()
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "anthropic/claude-3-haiku",
			"choices": [{"message": {"role": "assistant", "content": "  1. Physics: fits.  \n"}}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30}
		}`))
	})

	out, err := client.Complete(context.Background(), "hello prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out.Text != "1. Physics: fits." {
		t.Fatalf("expected trimmed content, got %q", out.Text)
	}
	if out.Model != "anthropic/claude-3-haiku" {
		t.Fatalf("unexpected model %q", out.Model)
	}
	if out.Usage == nil || out.Usage.TotalTokens != 30 {
		t.Fatalf("unexpected usage %+v", out.Usage)
	}

	mu.Lock()
	defer mu.Unlock()
	if body["model"] != "anthropic/claude-3-haiku" {
		t.Fatalf("unexpected request model %v", body["model"])
	}
	if body["temperature"] != 0.7 {
		t.Fatalf("expected temperature 0.7, got %v", body["temperature"])
	}
	if body["max_tokens"] != float64(800) {
		t.Fatalf("expected max_tokens 800, got %v", body["max_tokens"])
	}
	messages, ok := body["messages"].([]any)
	if !ok || len(messages) != 1 {
		t.Fatalf("expected one message, got %v", body["messages"])
	}
	msg := messages[0].(map[string]any)
	if msg["role"] != "user" || msg["content"] != "hello prompt" {
		t.Fatalf("unexpected message %v", msg)
	}
	if got := headers.Get("Authorization"); got != "Bearer test-key" {
		t.Fatalf("unexpected Authorization %q", got)
	}
	if got := headers.Get("HTTP-Referer"); got != "https://unrise-ai.vercel.app" {
		t.Fatalf("unexpected HTTP-Referer %q", got)
	}
	if got := headers.Get("X-Title"); got != "UniRise" {
		t.Fatalf("unexpected X-Title %q", got)
	}
	if got := headers.Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected Content-Type %q", got)
	}
}

func TestCompleteUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error": {"message": "Insufficient credits", "code": 402}}`))
	})

	_, err := client.Complete(context.Background(), "p")
	var upstream *llm.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusPaymentRequired {
		t.Fatalf("unexpected status %d", upstream.StatusCode)
	}
	if upstream.Message != "Insufficient credits" {
		t.Fatalf("unexpected message %q", upstream.Message)
	}
}

func TestCompleteUpstreamErrorWithoutJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := client.Complete(context.Background(), "p")
	var upstream *llm.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusServiceUnavailable || upstream.Message != "" {
		t.Fatalf("unexpected upstream error %+v", upstream)
	}
}

func TestCompleteEmptyContent(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no choices", body: `{"choices": []}`},
		{name: "blank content", body: `{"choices": [{"message": {"content": "   "}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := client.Complete(context.Background(), "p")
			if !errors.Is(err, llm.ErrEmptyResponse) {
				t.Fatalf("expected ErrEmptyResponse, got %v", err)
			}
		})
	}
}

func TestCompleteTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewClient(Options{APIKey: "k", URL: url})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.Complete(context.Background(), "p")
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var upstream *llm.UpstreamError
	if errors.As(err, &upstream) {
		t.Fatalf("transport failures must not look like upstream errors")
	}
}
