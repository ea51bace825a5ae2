package app

import (
	"context"
	"fmt"
	"io"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/designhire-backend/internal/platform/logger"
	"github.com/yungbote/designhire-backend/internal/platform/objectstore"
	"github.com/yungbote/designhire-backend/internal/platform/ratelimit"
)

type Clients struct {
	Redis   goredis.UniversalClient
	Limiter ratelimit.Limiter
	Store   objectstore.Store
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// Redis backs the rate limiter when configured; otherwise limits are per process.
	if cfg.RedisAddr != "" {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			_ = rdb.Close()
			return Clients{}, fmt.Errorf("init redis: %w", err)
		}
		out.Redis = rdb
	}
	if cfg.RateLimitEnabled {
		if out.Redis != nil {
			out.Limiter = ratelimit.NewRedisLimiter(log, out.Redis)
		} else {
			log.Warn("REDIS_ADDR not set; rate limits are tracked in process memory")
			out.Limiter = ratelimit.NewMemoryLimiter()
		}
	}

	storeCfg, err := objectstore.ResolveConfigFromEnv()
	if err != nil {
		out.Close()
		return Clients{}, fmt.Errorf("object storage config: %w", err)
	}
	store, err := objectstore.New(ctx, log, storeCfg)
	if err != nil {
		out.Close()
		return Clients{}, fmt.Errorf("init object storage: %w", err)
	}
	out.Store = store

	return out, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if closer, ok := c.Store.(io.Closer); ok {
		_ = closer.Close()
	}
}
