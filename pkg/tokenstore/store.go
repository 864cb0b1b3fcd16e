package tokenstore

import (
	"context"
	"time"
)

// Store keeps bearer tokens under string keys.
// Get returns an empty token and a nil error when the key is absent.
// A zero ttl keeps the token until it is deleted.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, token string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
