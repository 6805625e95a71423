package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client supplied request keys for a while so a
// retried batch save is not recorded twice
type IdempotencyStore interface {
	// Claim records key for ttl. It returns false when the key is already held.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release forgets key so a failed request can be retried with it
	Release(ctx context.Context, key string) error

	// Close releases the store's resources
	Close() error
}
