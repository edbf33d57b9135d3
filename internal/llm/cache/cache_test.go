package cache

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unirise-backend/internal/llm"
)

type fakeStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	setErr  error
	lastTTL time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (s *fakeStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *fakeStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	s.lastTTL = ttl
	return nil
}

type countingClient struct {
	calls int
	err   error
}

func (c *countingClient) Complete(ctx context.Context, prompt string) (llm.Completion, error) {
	c.calls++
	if c.err != nil {
		return llm.Completion{}, c.err
	}
	return llm.Completion{Text: "1. Physics: " + prompt, Model: "m", Usage: &llm.Usage{TotalTokens: 12}}, nil
}

func TestCacheServesRepeatedPrompt(t *testing.T) {
	next := &countingClient{}
	store := newFakeStore()
	client := New(next, store, "m", time.Hour)

	first, err := client.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := client.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Text, second.Text)
	require.NotNil(t, second.Usage)
	assert.Equal(t, 12, second.Usage.TotalTokens)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, time.Hour, store.lastTTL)

	_, err = client.Complete(context.Background(), "other")
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCacheFailuresDoNotFailCompletion(t *testing.T) {
	next := &countingClient{}
	store := newFakeStore()
	store.getErr = errors.New("connection refused")
	store.setErr = errors.New("connection refused")
	client := New(next, store, "m", time.Minute)

	out, err := client.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "1. Physics: p", out.Text)
	assert.Equal(t, 1, next.calls)
}

func TestCacheDoesNotStoreErrors(t *testing.T) {
	next := &countingClient{err: &llm.UpstreamError{Provider: "openrouter", StatusCode: 429}}
	store := newFakeStore()
	client := New(next, store, "m", time.Minute)

	_, err := client.Complete(context.Background(), "p")
	var upstream *llm.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Empty(t, store.data)
}

func TestNewWithoutStoreReturnsNext(t *testing.T) {
	next := &countingClient{}
	assert.Same(t, next, New(next, nil, "m", time.Minute))
}

func TestRedisStoreRoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()
	store, err := NewRedisStore(ctx, url)
	require.NoError(t, err)
	defer store.Close()

	key := keyPrefix + "test-" + time.Now().Format(time.RFC3339Nano)
	_, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, key, []byte("v"), time.Minute))
	got, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}
