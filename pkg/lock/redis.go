package lock

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock key only if it still carries our token, so
// a holder whose TTL expired cannot release a lock reacquired by someone else.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// acquirePollInterval is how often a blocked waiter retries SET NX.
const acquirePollInterval = 50 * time.Millisecond

// RedisManager implements Manager on a shared redis instance, making the
// lock process- and node-safe.
type RedisManager struct {
	client *redis.Client
	opts   Options
}

// NewRedisManager creates a redis-backed lock manager
func NewRedisManager(client *redis.Client, opts Options) *RedisManager {
	return &RedisManager{
		client: client,
		opts:   opts.withDefaults(),
	}
}

// WithLock acquires "lock:{key}", runs fn, and releases the lock on all exit
// paths. Acquisition polls until the acquire deadline, then fails with
// ErrNotAcquired.
func (m *RedisManager) WithLock(ctx context.Context, key string, fn func() error) error {
	lockKey := "lock:" + key
	token := uuid.NewString()

	if err := m.acquire(ctx, lockKey, token); err != nil {
		return err
	}

	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, m.client, []string{lockKey}, token).Err(); err != nil && err != redis.Nil {
			// The TTL bounds the damage of a failed release.
			log.Printf("⚠️  Failed to release %s: %v", lockKey, err)
		}
	}()

	return fn()
}

func (m *RedisManager) acquire(ctx context.Context, lockKey, token string) error {
	deadline := time.Now().Add(m.opts.AcquireDeadline)

	for {
		ok, err := m.client.SetNX(ctx, lockKey, token, m.opts.OwnershipTTL).Result()
		if err != nil {
			return fmt.Errorf("lock acquisition failed: %w", err)
		}
		if ok {
			return nil
		}

		if time.Now().After(deadline) {
			return ErrNotAcquired
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(acquirePollInterval):
		}
	}
}
