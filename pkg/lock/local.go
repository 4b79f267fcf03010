package lock

import (
	"context"
	"sync"
	"time"
)

// LocalManager implements Manager with in-process mutexes. It serializes
// writers inside a single process only, so it is suitable for tests and
// single-node deployments; multi-node deployments need the redis manager.
// OwnershipTTL is not enforced: a key stays held until fn returns.
type LocalManager struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
	opts  Options
}

// NewLocalManager creates an in-process lock manager
func NewLocalManager(opts Options) *LocalManager {
	return &LocalManager{
		locks: make(map[string]chan struct{}),
		opts:  opts.withDefaults(),
	}
}

// WithLock runs fn while holding the in-process lock for key
func (m *LocalManager) WithLock(ctx context.Context, key string, fn func() error) error {
	slot := m.slot(key)

	select {
	case slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.opts.AcquireDeadline):
		return ErrNotAcquired
	}

	defer func() { <-slot }()

	return fn()
}

// slot returns the buffered channel guarding key, creating it on first use
func (m *LocalManager) slot(key string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot, ok := m.locks[key]
	if !ok {
		slot = make(chan struct{}, 1)
		m.locks[key] = slot
	}
	return slot
}
