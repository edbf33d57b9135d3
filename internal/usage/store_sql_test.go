package usage

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unirise-backend/internal/shared/storage/db"
)

func TestSQLStoreInsertPostgres(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	store := NewSQLStore(conn, db.DialectPostgres)
	rec := Record{
		ID:               "rec-1",
		Provider:         "openrouter",
		Model:            "anthropic/claude-3-haiku",
		PromptHash:       "deadbeef",
		PromptTokens:     400,
		CompletionTokens: 200,
		TotalTokens:      600,
		Status:           StatusOK,
		DurationMs:       1500,
		CreatedAt:        time.Now().UTC(),
	}

	mock.ExpectExec(`(?s)INSERT INTO completion_usage.*VALUES \(\$1, \$2`).
		WithArgs(rec.ID, rec.Provider, rec.Model, rec.PromptHash, 400, 200, 600, StatusOK, int64(1500), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Insert(context.Background(), rec); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSQLStoreInsertRebindsForSQLite(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	store := NewSQLStore(conn, db.DialectSQLite)
	mock.ExpectExec(`VALUES \(\?, \?, \?, \?, \?, \?, \?, \?, \?, \?\)`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Insert(context.Background(), Record{ID: "x", Provider: "p", Status: StatusOK}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSQLStoreSummary(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	last := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT status, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count", "sum"}).
			AddRow(StatusOK, int64(3), int64(900)).
			AddRow(StatusError, int64(1), int64(0)))
	mock.ExpectQuery("SELECT created_at FROM completion_usage").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(last))

	summary, err := NewSQLStore(conn, db.DialectPostgres).Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Requests)
	assert.Equal(t, 900, summary.TotalTokens)
	assert.Equal(t, map[string]int{StatusOK: 3, StatusError: 1}, summary.ByStatus)
	require.NotNil(t, summary.LastCallAt)
	assert.True(t, last.Equal(*summary.LastCallAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreOnSQLite(t *testing.T) {
	ctx := context.Background()
	target, err := db.Resolve("sqlite://:memory:")
	require.NoError(t, err)
	conn, err := db.Connect(ctx, target, db.DefaultServerOptions())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.RunMigrations(ctx, conn, target.Dialect))

	svc := NewSQLService(NewSQLStore(conn, target.Dialect))
	first := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	second := first.Add(time.Minute)
	require.NoError(t, svc.Record(ctx, Record{Provider: "openrouter", Model: "m", Status: StatusOK, TotalTokens: 100, CreatedAt: first}))
	require.NoError(t, svc.Record(ctx, Record{Provider: "openrouter", Model: "m", Status: StatusCached, TotalTokens: 100, CreatedAt: second}))

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Requests)
	assert.Equal(t, 200, summary.TotalTokens)
	require.NotNil(t, summary.LastCallAt)
	assert.True(t, second.Equal(*summary.LastCallAt))
}
