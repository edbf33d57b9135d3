// Package cache wraps an llm.Client with a response cache keyed by the
// model and prompt. Cache failures are logged and never fail a completion.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"unirise-backend/internal/llm"
	"unirise-backend/internal/shared/telemetry"
	"unirise-backend/internal/shared/util"
)

const keyPrefix = "unirise:completion:"

// Store is a byte-oriented key/value store with expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Client serves repeated prompts from Store and forwards misses to Next.
type Client struct {
	Next  llm.Client
	Store Store
	Model string
	TTL   time.Duration
}

// New constructs a caching client. A nil store returns next unchanged.
func New(next llm.Client, store Store, model string, ttl time.Duration) llm.Client {
	if store == nil {
		return next
	}
	return &Client{Next: next, Store: store, Model: model, TTL: ttl}
}

// Complete implements llm.Client.
func (c *Client) Complete(ctx context.Context, prompt string) (llm.Completion, error) {
	key := keyPrefix + util.HashPrompt(c.Model, prompt)

	if raw, ok, err := c.Store.Get(ctx, key); err != nil {
		telemetry.Warn("llm.cache.get_failed", map[string]any{"error": err})
	} else if ok {
		var out llm.Completion
		if err := json.Unmarshal(raw, &out); err == nil && out.Text != "" {
			out.Cached = true
			return out, nil
		}
		telemetry.Warn("llm.cache.corrupt_entry", map[string]any{"key": key})
	}

	out, err := c.Next.Complete(ctx, prompt)
	if err != nil {
		return llm.Completion{}, err
	}

	raw, err := json.Marshal(out)
	if err == nil {
		err = c.Store.Set(ctx, key, raw, c.TTL)
	}
	if err != nil {
		telemetry.Warn("llm.cache.set_failed", map[string]any{"error": err})
	}
	return out, nil
}
