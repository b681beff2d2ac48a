package lock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCaseStatusKey(t *testing.T) {
	assert.Equal(t, "case:status:lock:17", CaseStatusKey(17))
}

func TestLocalLockerSerialises(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Acquire(ctx, CaseStatusKey(1), "t")
			require.NoError(t, err)
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestLocalLockerHonoursContext(t *testing.T) {
	locker := NewLocalLocker()
	release, err := locker.Acquire(context.Background(), "k", "a")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = locker.Acquire(ctx, "k", "b")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := locker.Acquire(context.Background(), "other", "c")
	require.NoError(t, err)
	other()
}

func TestReleaseLogsUnlockFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	calls := 0
	release := releaseFunc(CaseStatusKey(3), func(ctx context.Context) error {
		calls++
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return errors.New("connection reset")
	}, 10*time.Second, zap.New(core))

	release()

	assert.Equal(t, 1, calls)
	entries := logs.FilterMessage("release lock").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "case:status:lock:3", fields["key"])
	assert.Equal(t, "connection reset", fields["error"])
}

func TestReleaseQuietOnSuccess(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	releaseFunc("k", func(context.Context) error { return nil }, time.Second, zap.New(core))()
	assert.Zero(t, logs.Len())
}

func TestReleaseLogsUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	core, logs := observer.New(zapcore.InfoLevel)
	l := NewDistributedLock(client, CaseStatusKey(4), "token", time.Second)
	releaseFunc(CaseStatusKey(4), l.Unlock, time.Second, zap.New(core))()

	require.Equal(t, 1, logs.FilterMessage("release lock").Len())
}
