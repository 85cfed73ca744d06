package settings

import (
	"context"
	"encoding/json"
)

// Store persists site_settings rows, one JSON value per key.
// Get returns a nil value and nil error when the key has no row.
type Store interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Put(ctx context.Context, key string, value json.RawMessage) error
}
