package resourcelock

import (
	"context"
	"fmt"
	"sync"
)

type memoryEntry struct {
	ch   chan struct{}
	refs int
}

// MemoryLocker блокировки внутри одного процесса
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*memoryEntry
}

// NewMemoryLocker создает локер для одного инстанса сервиса
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*memoryEntry)}
}

// Lock ждёт освобождения ключа или отмены контекста
func (l *MemoryLocker) Lock(ctx context.Context, key string) (UnlockFunc, error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &memoryEntry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, fmt.Errorf("%w: %s: %v", ErrLockTimeout, key, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(key, e)
		})
	}, nil
}

func (l *MemoryLocker) release(key string, e *memoryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// size количество ключей с ожидающими или удерживаемыми блокировками
func (l *MemoryLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
