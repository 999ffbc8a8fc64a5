package resourcelock

import (
	"context"
	"errors"
	"sort"
	"time"
)

var (
	// ErrLockTimeout возвращается, когда блокировку не удалось получить до отмены контекста
	ErrLockTimeout = errors.New("resourcelock: failed to acquire lock")

	// ErrLockBackend возвращается при ошибках хранилища блокировок
	ErrLockBackend = errors.New("resourcelock: lock backend error")
)

// UnlockFunc снимает блокировку. Повторный вызов безопасен.
type UnlockFunc func()

// Locker сериализует записи по ключу ресурса ("room:1", "server:7")
type Locker interface {
	Lock(ctx context.Context, key string) (UnlockFunc, error)
}

// LockAll берёт блокировки по всем ключам в отсортированном порядке,
// чтобы две операции над одними ресурсами не ждали друг друга по кругу.
// timeout ограничивает ожидание всех блокировок, 0 - без ограничения.
func LockAll(ctx context.Context, l Locker, timeout time.Duration, keys ...string) (UnlockFunc, error) {
	unique := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, k)
	}
	sort.Strings(unique)

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	unlocks := make([]UnlockFunc, 0, len(unique))
	releaseAll := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}

	for _, k := range unique {
		unlock, err := l.Lock(ctx, k)
		if err != nil {
			releaseAll()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}

	return releaseAll, nil
}
