package postgres_adapter

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresJournalRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewPostgresJournalRepository(db)
	require.NoError(t, err)
	return repo, mock
}

func TestJournalRepository_RecordSuccess(t *testing.T) {
	repo, mock := newMockRepo(t)
	started := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO mutation_journal").
		WithArgs(sqlmock.AnyArg(), "cart_checkout", "s1", true, sql.NullString{}, started, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Record(context.Background(), domain.MutationRecord{
		Mutation:   "cart_checkout",
		SessionID:  "s1",
		Succeeded:  true,
		StartedAt:  started,
		DurationMs: 42,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepository_RecordFailureKeepsErrorText(t *testing.T) {
	repo, mock := newMockRepo(t)
	started := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO mutation_journal").
		WithArgs(sqlmock.AnyArg(), "update_member", "s2", false,
			sql.NullString{String: "platform down", Valid: true}, started, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Record(context.Background(), domain.MutationRecord{
		Mutation:   "update_member",
		SessionID:  "s2",
		ErrorText:  "platform down",
		StartedAt:  started,
		DurationMs: 7,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepository_Errors(t *testing.T) {
	t.Run("missing table", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		missing := &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}
		mock.ExpectExec("INSERT INTO mutation_journal").WillReturnError(missing)

		err := repo.Record(context.Background(), domain.MutationRecord{Mutation: "quick_buy"})
		assert.ErrorIs(t, err, missing)
		assert.Contains(t, err.Error(), "table is missing")
	})

	t.Run("generic", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		connErr := errors.New("connection reset")
		mock.ExpectExec("INSERT INTO mutation_journal").WillReturnError(connErr)

		err := repo.Record(context.Background(), domain.MutationRecord{Mutation: "quick_buy"})
		assert.ErrorIs(t, err, connErr)
	})

	t.Run("nil db", func(t *testing.T) {
		_, err := NewPostgresJournalRepository(nil)
		assert.Error(t, err)
	})
}

func TestJournalRepository_EnsureSchema(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS mutation_journal").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
