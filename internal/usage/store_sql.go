package usage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"
)

type sqlStore struct {
	DB      *sql.DB
	Dialect string
}

// NewSQLStore constructs a usage store over db. dialect is "postgres" or
// "sqlite".
func NewSQLStore(db *sql.DB, dialect string) *sqlStore {
	return &sqlStore{DB: db, Dialect: dialect}
}

var positional = regexp.MustCompile(`\$\d+`)

func (s *sqlStore) rebind(query string) string {
	if s.Dialect != "sqlite" {
		return query
	}
	return positional.ReplaceAllString(query, "?")
}

func (s *sqlStore) Insert(ctx context.Context, r Record) error {
	_, err := s.DB.ExecContext(ctx, s.rebind(`
INSERT INTO completion_usage (id, provider, model, prompt_hash, prompt_tokens, completion_tokens, total_tokens, status, duration_ms, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`),
		r.ID, r.Provider, r.Model, r.PromptHash,
		r.PromptTokens, r.CompletionTokens, r.TotalTokens,
		r.Status, r.DurationMs, r.CreatedAt,
	)
	return err
}

func (s *sqlStore) Summary(ctx context.Context) (Summary, error) {
	out := Summary{ByStatus: map[string]int{}}
	rows, err := s.DB.QueryContext(ctx, `
SELECT status, COUNT(*), COALESCE(SUM(total_tokens), 0) FROM completion_usage GROUP BY status`)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status string
			count  int64
			tokens int64
		)
		if err := rows.Scan(&status, &count, &tokens); err != nil {
			return Summary{}, err
		}
		out.ByStatus[status] = int(count)
		out.Requests += int(count)
		out.TotalTokens += int(tokens)
	}
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}

	var last time.Time
	err = s.DB.QueryRowContext(ctx, `
SELECT created_at FROM completion_usage ORDER BY created_at DESC LIMIT 1`).Scan(&last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return Summary{}, err
	default:
		last = last.UTC()
		out.LastCallAt = &last
	}
	return out, nil
}
