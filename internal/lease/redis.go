package lease

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// RedisLeaser grants leases through redislock, giving advisory exclusivity
// across every instance sharing the Redis deployment.
type RedisLeaser struct {
	locker *redislock.Client
}

// NewRedis creates a Redis-backed leaser.
func NewRedis(client *redis.Client) *RedisLeaser {
	return &RedisLeaser{locker: redislock.New(client)}
}

func (l *RedisLeaser) Obtain(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	lock, err := l.locker.Obtain(ctx, "lease:"+key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lease %q: %w", key, err)
	}
	return &redisLease{lock: lock}, nil
}

type redisLease struct {
	lock *redislock.Lock
}

func (l *redisLease) Release(ctx context.Context) error {
	err := l.lock.Release(ctx)
	// The lock may have expired on its own; that is not a caller error.
	if errors.Is(err, redislock.ErrLockNotHeld) {
		return nil
	}
	return err
}
