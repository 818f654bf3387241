package ports

import (
	"context"
	"time"
)

// KVStore is a generic get/set-with-TTL key-value boundary. The route cache
// is a thin contract over it; the concrete backing store is out of scope.
//
// Concurrency: implementations must support concurrent reads and concurrent
// writes to distinct keys; concurrent writes to the same key are
// last-write-wins.
type KVStore interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value with a TTL after which the key expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
