package recordstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unizg/careerhub/internal/pkg/dberrors"
)

const collectionsTable = "collections"

// PostgresBackend keeps each collection as one JSONB row
type PostgresBackend struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// NewPostgresBackend creates a backend over an existing pool.
// The collections table is created by the SQL migrations.
func NewPostgresBackend(pool *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Read implements Backend
func (b *PostgresBackend) Read(ctx context.Context, collection string) ([]byte, error) {
	query, args, err := b.sb.Select("document::text").
		From(collectionsTable).
		Where(sq.Eq{"name": collection}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var document string
	if err := b.pool.QueryRow(ctx, query, args...).Scan(&document); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCollectionNotFound
		}
		if dberrors.IsUndefinedTable(err) {
			return nil, fmt.Errorf("table %s is missing, run the migrations: %w", collectionsTable, err)
		}
		return nil, err
	}
	return []byte(document), nil
}

// Write implements Backend
func (b *PostgresBackend) Write(ctx context.Context, collection string, data []byte) error {
	query, args, err := b.sb.Insert(collectionsTable).
		Columns("name", "document", "updated_at").
		Values(collection, string(data), time.Now().UTC()).
		Suffix("ON CONFLICT (name) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert query: %w", err)
	}

	if _, err := b.pool.Exec(ctx, query, args...); err != nil {
		if dberrors.IsUndefinedTable(err) {
			return fmt.Errorf("table %s is missing, run the migrations: %w", collectionsTable, err)
		}
		return err
	}
	return nil
}

// Close is a no-op; the pool is owned by the caller
func (b *PostgresBackend) Close() error { return nil }
