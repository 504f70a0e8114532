// Package lock provides the batch locks that keep two imports of the same
// entity for the same enterprise from running at once.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

// RedisLocker holds a redislock lease for the life of a batch and refreshes
// it at half the TTL so long batches keep the lock.
type RedisLocker struct {
	obtain func(ctx context.Context, key string, ttl time.Duration) (lease, error)
	ttl    time.Duration
	logger *zap.Logger
}

type lease interface {
	Refresh(ctx context.Context, ttl time.Duration, opt *redislock.Options) error
	Release(ctx context.Context) error
}

func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *RedisLocker {
	client := redislock.New(rdb)
	return newRedisLocker(func(ctx context.Context, key string, ttl time.Duration) (lease, error) {
		lk, err := client.Obtain(ctx, key, ttl, nil)
		if err != nil {
			return nil, err
		}
		return lk, nil
	}, ttl, logger)
}

func newRedisLocker(obtain func(context.Context, string, time.Duration) (lease, error), ttl time.Duration, logger *zap.Logger) *RedisLocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLocker{
		obtain: obtain,
		ttl:    ttl,
		logger: logger.With(zap.String("component", "redis_locker")),
	}
}

// Acquire obtains key and keeps refreshing it until released. If a refresh
// finds the lease gone, refreshing stops and release reports batch.ErrLockLost.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (func() error, error) {
	lk, err := l.obtain(ctx, key, l.ttl)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", batch.ErrLocked, key)
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}

	var lost atomic.Bool
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(l.ttl / 2)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				err := lk.Refresh(context.Background(), l.ttl, nil)
				switch {
				case err == nil:
				case errors.Is(err, redislock.ErrNotObtained):
					lost.Store(true)
					l.logger.Error("lock lost, another batch may start", zap.String("key", key), zap.Error(err))
					return
				default:
					l.logger.Warn("refresh lock failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
	}()

	var (
		once       sync.Once
		releaseErr error
	)
	return func() error {
		once.Do(func() {
			close(done)
			<-stopped
			err := lk.Release(context.Background())
			switch {
			case lost.Load() || errors.Is(err, redislock.ErrLockNotHeld):
				releaseErr = fmt.Errorf("%w: %s", batch.ErrLockLost, key)
			case err != nil:
				releaseErr = fmt.Errorf("release lock %s: %w", key, err)
			}
		})
		return releaseErr
	}, nil
}
