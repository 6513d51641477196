package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TickLock is a best-effort distributed lock around the scheduler tick so
// multiple server instances do not materialize the same templates twice.
type TickLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewTickLock creates a new TickLock.
func NewTickLock(client *redis.Client, ttl time.Duration) *TickLock {
	return &TickLock{
		client: client,
		key:    "scheduler:tick-lock",
		ttl:    ttl,
	}
}

// TryAcquire takes the lock if it is free. It returns false when another
// instance holds it.
func (l *TickLock) TryAcquire(ctx context.Context) (bool, error) {
	return l.client.SetNX(ctx, l.key, "locked", l.ttl).Result()
}

// Release frees the lock.
func (l *TickLock) Release(ctx context.Context) error {
	return l.client.Del(ctx, l.key).Err()
}
