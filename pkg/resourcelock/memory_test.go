package resourcelock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLocker_SerializesSameKey(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	var inside int32
	var maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "room:1")
			if !assert.NoError(t, err) {
				return
			}

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, l.size())
}

func TestMemoryLocker_DifferentKeysDoNotBlock(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	unlockRoom, err := l.Lock(ctx, "room:1")
	require.NoError(t, err)
	defer unlockRoom()

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	unlockServer, err := l.Lock(ctx, "server:1")
	require.NoError(t, err)
	unlockServer()
}

func TestMemoryLocker_ContextCancelled(t *testing.T) {
	l := NewMemoryLocker()

	unlock, err := l.Lock(context.Background(), "room:1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, "room:1")
	assert.ErrorIs(t, err, ErrLockTimeout)

	unlock()
	unlock()
	assert.Equal(t, 0, l.size())
}

func TestLockAll_DeduplicatesAndReleases(t *testing.T) {
	l := NewMemoryLocker()

	unlock, err := LockAll(context.Background(), l, time.Second, "server:1", "room:1", "room:1")
	require.NoError(t, err)
	assert.Equal(t, 2, l.size())

	unlock()
	assert.Equal(t, 0, l.size())
}

func TestLockAll_TimeoutReleasesTakenLocks(t *testing.T) {
	l := NewMemoryLocker()

	held, err := l.Lock(context.Background(), "server:1")
	require.NoError(t, err)
	defer held()

	_, err = LockAll(context.Background(), l, 20*time.Millisecond, "room:1", "server:1")
	assert.ErrorIs(t, err, ErrLockTimeout)

	// room:1 должна быть освобождена после неудачи
	unlock, err := l.Lock(context.Background(), "room:1")
	require.NoError(t, err)
	unlock()
}
