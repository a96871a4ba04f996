package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/retirepath-backend/internal/logger"
)

// GenerationLock serializes roadmap generation per user across instances.
// It is optional; when Redis is not configured the caller falls back to its
// in-process lock.
type GenerationLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
	Close() error
}

type generationLock struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

func NewGenerationLock(log *logger.Logger) (GenerationLock, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(os.Getenv("REDIS_LOCK_PREFIX"))
	if prefix == "" {
		prefix = "roadmap_gen"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &generationLock{
		log:    log.With("service", "RedisGenerationLock"),
		rdb:    rdb,
		prefix: prefix,
	}, nil
}

func (l *generationLock) lockKey(key string) string {
	return l.prefix + ":" + key
}

func (l *generationLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, l.lockKey(key), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

func (l *generationLock) Release(ctx context.Context, key string) error {
	if err := l.rdb.Del(ctx, l.lockKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (l *generationLock) Close() error {
	return l.rdb.Close()
}
