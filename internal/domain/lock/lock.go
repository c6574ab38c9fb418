// Package lock defines the per-entity mutual exclusion taken around mutating
// operations, keyed by loan id or staked token id.
package lock

import (
	"context"
	"errors"
	"time"
)

var ErrHeld = errors.New("lock already held")

// Manager acquires a lock for key and returns an unlock function. Acquire
// returns ErrHeld when another operation currently owns the key.
type Manager interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}
