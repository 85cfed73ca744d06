package local

import "context"

// Store is a small persistent key-value store on the server's own disk.
// It holds state that must survive restarts but is not site content,
// such as the admin session marker.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
