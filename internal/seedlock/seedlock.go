// Package seedlock provides mutual exclusion for the one-time store seeding
// step across several API instances.
package seedlock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	DefaultKey = "mining-pools:seed-lock"
	DefaultTTL = 30 * time.Second
)

// releaseScript deletes the key only if it still holds our token.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// UnlockFunc releases a held lock
type UnlockFunc func(ctx context.Context) error

// Noop never contends. It is used when Redis is not configured.
type Noop struct{}

// TryLock always succeeds
func (Noop) TryLock(ctx context.Context) (UnlockFunc, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}

// Client is the subset of the go-redis client the lock needs
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisLocker is a single-key lease lock backed by SET NX PX
type RedisLocker struct {
	client Client
	key    string
	ttl    time.Duration
}

// NewRedisLocker creates a lock on key with the given lease.
// Empty key and non-positive ttl fall back to the defaults.
func NewRedisLocker(client Client, key string, ttl time.Duration) (*RedisLocker, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if key == "" {
		key = DefaultKey
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisLocker{client: client, key: key, ttl: ttl}, nil
}

// TryLock attempts to take the lock without waiting. acquired is false when
// another holder owns the lease.
func (l *RedisLocker) TryLock(ctx context.Context) (UnlockFunc, bool, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		logrus.WithField("key", l.key).Debug("Seed lock held by another instance")
		return nil, false, nil
	}

	unlock := func(ctx context.Context) error {
		return l.client.Eval(ctx, releaseScript, []string{l.key}, token).Err()
	}
	return unlock, true, nil
}
