package usage

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	records []Record
}

func newMemoryStore() *memoryStore {
	return &memoryStore{}
}

func (s *memoryStore) Insert(ctx context.Context, r Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.records = append(s.records, r)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Summary(ctx context.Context) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := Summary{ByStatus: map[string]int{}}
	for _, r := range s.records {
		out.Requests++
		out.ByStatus[r.Status]++
		out.TotalTokens += r.TotalTokens
		if out.LastCallAt == nil || r.CreatedAt.After(*out.LastCallAt) {
			at := r.CreatedAt
			out.LastCallAt = &at
		}
	}
	return out, nil
}
