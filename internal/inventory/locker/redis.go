package locker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/cache"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/logger"
)

// ErrBusy is returned when a key stays held past every attempt.
var ErrBusy = apperror.New(apperror.KindBusy, "system busy, please try again later (lock)")

// Redis locks keys across replicas with SET NX and a per-call token.
type Redis struct {
	cache    *cache.RedisClient
	logger   logger.ZapLogger
	ttl      time.Duration
	attempts int
	wait     time.Duration
}

func NewRedis(c *cache.RedisClient, log logger.ZapLogger) *Redis {
	return &Redis{
		cache:    c,
		logger:   log,
		ttl:      5 * time.Second,
		attempts: 50,
		wait:     20 * time.Millisecond,
	}
}

func (r *Redis) Lock(ctx context.Context, keys []string) (func(), error) {
	token := uuid.New().String()
	held := make([]string, 0, len(keys))
	unlock := func() {
		// release with a fresh context so a cancelled caller still frees its keys
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		for i := len(held) - 1; i >= 0; i-- {
			if err := r.cache.ReleaseLock(releaseCtx, held[i], token); err != nil {
				r.logger.Error("failed to release lock", zap.String("key", held[i]), zap.Error(err))
			}
		}
	}

	for _, key := range keys {
		if err := r.acquire(ctx, key, token); err != nil {
			unlock()
			return nil, err
		}
		held = append(held, key)
	}
	return unlock, nil
}

func (r *Redis) acquire(ctx context.Context, key, token string) error {
	for i := 0; i < r.attempts; i++ {
		ok, err := r.cache.AcquireLock(ctx, key, token, r.ttl)
		if err != nil {
			r.logger.Error("failed to acquire lock redis error", zap.Error(err))
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.wait):
		}
	}
	return ErrBusy
}
