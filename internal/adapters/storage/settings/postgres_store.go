package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"kingdomstudio/internal/adapters/storage"
)

// PostgresStore implements Store against the site_settings table.
type PostgresStore struct {
	read  storage.SQLDB
	write storage.SQLDB
	now   func() time.Time
}

// NewPostgresStore creates a new SettingsStore.
func NewPostgresStore(read, write storage.SQLDB) *PostgresStore {
	return &PostgresStore{read: read, write: write, now: time.Now}
}

// Get returns the stored JSON value for key.
// PRE: key is non-empty
// POST: Returns the raw value, or nil with no error when no row exists
func (s *PostgresStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var raw []byte
	err := s.read.QueryRowContext(ctx, "SELECT value FROM site_settings WHERE key = $1", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

// Put upserts the value for key and stamps updated_at.
// PRE: value is valid JSON
// POST: Exactly one row exists for key holding value
func (s *PostgresStore) Put(ctx context.Context, key string, value json.RawMessage) error {
	_, err := s.write.ExecContext(ctx,
		`INSERT INTO site_settings (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, string(value), s.now().UTC(),
	)
	return err
}
