package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Unlock releases a held lock.
type Unlock func(ctx context.Context) error

// Locker acquires exclusive, expiring locks on keys.
type Locker interface {
	// Lock blocks until the lock on key is held or ctx is done. ttl bounds how
	// long the lock survives a crashed holder.
	Lock(ctx context.Context, key string, ttl time.Duration) (Unlock, error)
}

// NullLocker grants every lock immediately. Use it for single-instance
// deployments, where in-process de-duplication is sufficient.
type NullLocker struct{}

// NewNullLocker creates a null locker.
func NewNullLocker() Locker {
	return NullLocker{}
}

// Lock always succeeds.
func (NullLocker) Lock(context.Context, string, time.Duration) (Unlock, error) {
	return func(context.Context) error { return nil }, nil
}

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker on a Redis server.
type RedisLocker struct {
	client redis.UniversalClient
	poll   time.Duration
	wait   time.Duration
}

// RedisLockerOption configures a RedisLocker.
type RedisLockerOption func(*RedisLocker)

// WithPollInterval sets how often a contended lock is retried.
func WithPollInterval(d time.Duration) RedisLockerOption {
	return func(l *RedisLocker) { l.poll = d }
}

// WithMaxWait bounds the time spent waiting for a contended lock.
func WithMaxWait(d time.Duration) RedisLockerOption {
	return func(l *RedisLocker) { l.wait = d }
}

// NewRedisLocker creates a Redis-backed locker.
func NewRedisLocker(client redis.UniversalClient, opts ...RedisLockerOption) *RedisLocker {
	l := &RedisLocker{
		client: client,
		poll:   100 * time.Millisecond,
		wait:   time.Minute,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lock acquires key with SET NX PX, polling while another holder has it.
func (l *RedisLocker) Lock(ctx context.Context, key string, ttl time.Duration) (Unlock, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			return nil, Retryable(errors.Join(ErrNetwork, err))
		}
		if ok {
			return func(ctx context.Context) error {
				return releaseScript.Run(ctx, l.client, []string{key}, token).Err()
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.poll):
		}
	}
}

// Ensure implementations satisfy Locker.
var (
	_ Locker = NullLocker{}
	_ Locker = (*RedisLocker)(nil)
)
