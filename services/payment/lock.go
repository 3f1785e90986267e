package payment

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// inflightPrefix keys the per-booking payment lock in Redis.
const inflightPrefix = "payment:inflight:"

// Locker serializes payment attempts per booking so two concurrent requests
// cannot both pass the duplicate check.
type Locker interface {
	Acquire(bookingID string, ttl time.Duration) (bool, error)
	Release(bookingID string)
}

// RedisLocker implements Locker with SET NX on a shared Redis client.
type RedisLocker struct {
	Client *redis.Client
}

func (l *RedisLocker) Acquire(bookingID string, ttl time.Duration) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return l.Client.SetNX(ctx, inflightPrefix+bookingID, "1", ttl).Result()
}

func (l *RedisLocker) Release(bookingID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	l.Client.Del(ctx, inflightPrefix+bookingID)
}
