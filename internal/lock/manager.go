package lock

import (
	"context"
	"errors"
)

var ErrLockUnavailable = errors.New("lock_unavailable")

// Manager serializes mutations that share a key. Ledger appends acquire the
// account's lock so two concurrent writers cannot both observe the
// pre-mutation balance; different keys never block each other.
type Manager interface {
	// Acquire blocks until the key's lock is held or ctx is done. The
	// returned release function must be called exactly once.
	Acquire(ctx context.Context, key string) (release func(), err error)
}
