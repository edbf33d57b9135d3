package usage

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type store interface {
	Insert(ctx context.Context, r Record) error
	Summary(ctx context.Context) (Summary, error)
}

// Service records completion calls via an underlying store.
type Service struct {
	store store
	now   func() time.Time
}

// NewService constructs a Service with in-memory store.
func NewService() *Service {
	return &Service{store: newMemoryStore(), now: time.Now}
}

// NewSQLService constructs a Service backed by a SQL database.
func NewSQLService(sqlStore store) *Service {
	return &Service{store: sqlStore, now: time.Now}
}

// Record stores r, assigning an ID and timestamp when absent.
func (s *Service) Record(ctx context.Context, r Record) error {
	r.Provider = strings.TrimSpace(r.Provider)
	r.Status = strings.TrimSpace(r.Status)
	if r.Provider == "" || r.Status == "" {
		return ErrInvalidRecord
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now().UTC()
	}
	return s.store.Insert(ctx, r)
}

// Summary returns the aggregated ledger.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	return s.store.Summary(ctx)
}
