package postgres_adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const createJournalTable = `CREATE TABLE IF NOT EXISTS mutation_journal (
	id          UUID PRIMARY KEY,
	mutation    TEXT        NOT NULL,
	session_id  TEXT        NOT NULL,
	succeeded   BOOLEAN     NOT NULL,
	error_text  TEXT,
	started_at  TIMESTAMPTZ NOT NULL,
	duration_ms BIGINT      NOT NULL
)`

const insertJournalRecord = `INSERT INTO mutation_journal
	(id, mutation, session_id, succeeded, error_text, started_at, duration_ms)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// PostgresJournalRepository пишет итоги мутаций в таблицу mutation_journal.
type PostgresJournalRepository struct {
	db *sql.DB
}

var _ port.MutationJournalPort = (*PostgresJournalRepository)(nil)

func NewPostgresJournalRepository(db *sql.DB) (*PostgresJournalRepository, error) {
	if db == nil {
		return nil, errors.New("sql.DB cannot be nil")
	}
	return &PostgresJournalRepository{db: db}, nil
}

// EnsureSchema создает таблицу журнала, если ее нет.
func (r *PostgresJournalRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createJournalTable); err != nil {
		return fmt.Errorf("failed to create mutation_journal: %w", err)
	}
	return nil
}

func (r *PostgresJournalRepository) Record(ctx context.Context, record domain.MutationRecord) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresJournalRepository",
		"method":    "Record",
		"mutation":  record.Mutation,
	})

	var errorText sql.NullString
	if record.ErrorText != "" {
		errorText = sql.NullString{String: record.ErrorText, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, insertJournalRecord,
		uuid.New(),
		record.Mutation,
		record.SessionID,
		record.Succeeded,
		errorText,
		record.StartedAt.UTC(),
		record.DurationMs,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "42P01" { // undefined_table
			repoLogger.Error("Mutation journal table is missing", err, nil)
			return fmt.Errorf("mutation_journal table is missing: %w", err)
		}
		repoLogger.Error("Failed to record mutation", err, nil)
		return fmt.Errorf("failed to record mutation: %w", err)
	}

	repoLogger.Debug("Mutation recorded.", nil)
	return nil
}
