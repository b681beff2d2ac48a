package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var ErrLockFailed = errors.New("failed to acquire lock")

// unlockScript deletes the key only while it still holds our token, so an
// expired holder cannot release somebody else's lock.
const unlockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

// Locker hands out named mutual-exclusion locks.
type Locker interface {
	// Acquire blocks until the lock is held or ctx is done. The returned
	// function releases it.
	Acquire(ctx context.Context, key, token string) (release func(), err error)
}

// DistributedLock is a single Redis lock: SET key token NX PX ttl.
type DistributedLock struct {
	client     *redis.Client
	key        string
	value      string
	expiration time.Duration
}

func NewDistributedLock(client *redis.Client, key, value string, expiration time.Duration) *DistributedLock {
	return &DistributedLock{
		client:     client,
		key:        key,
		value:      value,
		expiration: expiration,
	}
}

func (l *DistributedLock) TryLock(ctx context.Context) (bool, error) {
	return l.client.SetNX(ctx, l.key, l.value, l.expiration).Result()
}

// Lock retries TryLock every retryInterval, at most maxRetries times.
func (l *DistributedLock) Lock(ctx context.Context, retryInterval time.Duration, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		ok, err := l.TryLock(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return ErrLockFailed
}

func (l *DistributedLock) Unlock(ctx context.Context) error {
	return l.client.Eval(ctx, unlockScript, []string{l.key}, l.value).Err()
}

// RedisLocker implements Locker with DistributedLock.
type RedisLocker struct {
	client        *redis.Client
	ttl           time.Duration
	retryInterval time.Duration
	maxRetries    int
	logger        *zap.Logger
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisLocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLocker{
		client:        client,
		ttl:           ttl,
		logger:        logger,
		retryInterval: 50 * time.Millisecond,
		maxRetries:    int(ttl / (50 * time.Millisecond)),
	}
}

func (r *RedisLocker) Acquire(ctx context.Context, key, token string) (func(), error) {
	l := NewDistributedLock(r.client, key, token, r.ttl)
	if err := l.Lock(ctx, r.retryInterval, r.maxRetries); err != nil {
		return nil, fmt.Errorf("lock %s: %w", key, err)
	}
	return releaseFunc(key, l.Unlock, r.ttl, r.logger), nil
}

// releaseFunc wraps unlock for callers that defer it. A failed unlock
// leaves the key held until its TTL runs out, so it is logged.
func releaseFunc(key string, unlock func(context.Context) error, ttl time.Duration, logger *zap.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := unlock(ctx); err != nil {
			logger.Error("release lock",
				zap.String("key", key),
				zap.Duration("held_until_ttl", ttl),
				zap.Error(err))
		}
	}
}

// LocalLocker serialises on in-process mutexes. It is enough for a single
// server instance and for tests.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]chan struct{})}
}

func (l *LocalLocker) Acquire(ctx context.Context, key, _ string) (func(), error) {
	l.mu.Lock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	l.mu.Unlock()

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("lock %s: %w", key, ctx.Err())
	}
}

// CaseStatusKey is the lock guarding status change and undo of one case.
func CaseStatusKey(caseID int64) string {
	return fmt.Sprintf("case:status:lock:%d", caseID)
}
