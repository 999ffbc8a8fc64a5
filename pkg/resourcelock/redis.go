package resourcelock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix     = "booking:lock:"
	defaultTTL           = 10 * time.Second
	defaultRetryInterval = 50 * time.Millisecond
)

// Снимаем блокировку, только если она всё ещё наша
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// RedisLocker распределённая блокировка для нескольких инстансов сервиса.
// Ключ ставится через SET NX PX со случайным токеном и живёт не дольше TTL.
type RedisLocker struct {
	client        redis.UniversalClient
	logger        Logger
	prefix        string
	ttl           time.Duration
	retryInterval time.Duration
}

// NewRedisLocker создает локер поверх Redis.
// Нулевые ttl и retryInterval заменяются значениями по умолчанию.
func NewRedisLocker(client redis.UniversalClient, logger Logger, ttl, retryInterval time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if retryInterval <= 0 {
		retryInterval = defaultRetryInterval
	}
	return &RedisLocker{
		client:        client,
		logger:        logger,
		prefix:        defaultKeyPrefix,
		ttl:           ttl,
		retryInterval: retryInterval,
	}
}

// Lock пытается поставить ключ, пока не получится или не отменится контекст
func (l *RedisLocker) Lock(ctx context.Context, key string) (UnlockFunc, error) {
	redisKey := l.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: SetNX %s: %v", ErrLockBackend, redisKey, err)
		}
		if ok {
			return l.unlockFunc(redisKey, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrLockTimeout, key, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) unlockFunc(redisKey, token string) UnlockFunc {
	var once sync.Once
	return func() {
		once.Do(func() {
			// Контекст запроса к этому моменту может быть уже отменён
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
				if l.logger != nil {
					l.logger.Warn("resourcelock: failed to release %s: %v", redisKey, err)
				}
			}
		})
	}
}

// NewRedisClient создает клиента Redis и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrLockBackend, addr, err)
	}
	return client, nil
}
