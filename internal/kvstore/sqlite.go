package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/ndewijer/Investment-Admin-Console/internal/errors"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore persists entries in the kv_entry table created by the
// database migrations.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLiteStore with the provided database connection.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns the keys that start with prefix, ordered by key.
// Any query failure is reported as apperrors.ErrStoreUnavailable.
func (s *SQLiteStore) List(ctx context.Context, prefix string) ([]string, error) {
	if s.db == nil {
		return nil, apperrors.ErrStoreUnavailable
	}

	query := `
		SELECT key
		FROM kv_entry
		WHERE substr(key, 1, length(?)) = ?
		ORDER BY key ASC
	`

	rows, err := s.db.QueryContext(ctx, query, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query kv_entry table: %w", apperrors.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: failed to scan kv_entry key: %w", apperrors.ErrStoreUnavailable, err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating kv_entry table: %w", apperrors.ErrStoreUnavailable, err)
	}

	return keys, nil
}

// Get returns the value for key, or false if no row exists.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.db == nil {
		return "", false, apperrors.ErrStoreUnavailable
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entry WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return value, true, nil
}

// Set inserts or replaces the value for key.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	if s.db == nil {
		return apperrors.ErrStoreUnavailable
	}

	query := `
		INSERT INTO kv_entry (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}

// Delete removes the row for key if it exists.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if s.db == nil {
		return apperrors.ErrStoreUnavailable
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entry WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}
