// Package lock provides per-key advisory locking used to serialize writers
// that contend on the same worker's agenda.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotAcquired is returned when a lock cannot be acquired before the
// acquire deadline elapses.
var ErrNotAcquired = errors.New("lock not acquired within deadline")

// Manager serializes critical sections per key. Acquisition blocks up to the
// configured acquire deadline; ownership is bounded by the ownership TTL so a
// crashed holder cannot wedge the key forever.
type Manager interface {
	// WithLock runs fn while holding the lock for key. The lock is released
	// on every exit path, including a panic or an error from fn.
	WithLock(ctx context.Context, key string, fn func() error) error
}

// Options bound lock acquisition and ownership.
type Options struct {
	// OwnershipTTL is how long the lock may be held before it auto-expires.
	OwnershipTTL time.Duration
	// AcquireDeadline is how long acquisition may block before failing
	// with ErrNotAcquired.
	AcquireDeadline time.Duration
}

// DefaultOptions mirror the production defaults: a holder gets 20 seconds to
// finish and a waiter gives up after 20 seconds.
func DefaultOptions() Options {
	return Options{
		OwnershipTTL:    20 * time.Second,
		AcquireDeadline: 20 * time.Second,
	}
}

// WorkerKey builds the lock key for a worker. Distinct workers never contend.
func WorkerKey(workerID uint) string {
	return fmt.Sprintf("worker:%d", workerID)
}

// ensure a zero Options is never used directly
func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.OwnershipTTL <= 0 {
		o.OwnershipTTL = defaults.OwnershipTTL
	}
	if o.AcquireDeadline <= 0 {
		o.AcquireDeadline = defaults.AcquireDeadline
	}
	return o
}
