package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and
// pgx.Tx. Accepting this interface instead of *pgxpool.Pool directly allows
// integration tests to pass a transaction that is rolled back after each
// test, giving free per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore is a BlobStore backed by a single-row-per-key Postgres table.
// Each Write is one upsert replacing the whole value, which keeps the
// contract identical to the file store: no partial writes, last writer wins.
type PGStore struct {
	db db
}

// NewPGStore constructs a PGStore backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback
// isolation.
func NewPGStore(db db) *PGStore {
	return &PGStore{db: db}
}

// Read returns the stored bytes for key, or (nil, nil) when no row exists.
func (s *PGStore) Read(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM kv_blobs WHERE key = @key`

	var value []byte
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("store.PGStore.Read: %w", err)
	}
	return value, nil
}

// Write upserts the entire value for key.
func (s *PGStore) Write(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO kv_blobs (key, value, updated_at)
		VALUES (@key, @value, now())
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, updated_at = now()`

	_, err := s.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": value})
	if err != nil {
		return fmt.Errorf("store.PGStore.Write: %w", err)
	}
	return nil
}
