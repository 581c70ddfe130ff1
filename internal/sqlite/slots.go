package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/voicenotes/internal/repository"
)

// SlotRepository implements repository.SlotRepository for SQLite
type SlotRepository struct {
	db *DB
}

// NewSlotRepository creates a new SlotRepository
func NewSlotRepository(db *DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// Get returns the value stored under key.
func (r *SlotRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		if isNoSuchTable(err) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("failed to get slot %q: %w", key, err)
	}
	return value, nil
}

// Set replaces the value stored under key in a single statement.
func (r *SlotRepository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return repository.ErrInvalidInput
	}
	query := `
		INSERT INTO kv_slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to set slot %q: %w", key, err)
	}
	return nil
}

// Delete removes a slot. Deleting a missing slot is not an error.
func (r *SlotRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete slot %q: %w", key, err)
	}
	return nil
}

// Keys lists slot keys in lexical order.
func (r *SlotRepository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM kv_slots ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan slot key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slots: %w", err)
	}
	return keys, nil
}
