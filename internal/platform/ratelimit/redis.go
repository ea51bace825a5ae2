package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

// RedisLimiter keeps one sorted set per key, scored by hit time in
// milliseconds, so every API replica shares the same window.
type RedisLimiter struct {
	log *logger.Logger
	rdb goredis.UniversalClient
	now func() time.Time
}

func NewRedisLimiter(log *logger.Logger, rdb goredis.UniversalClient) *RedisLimiter {
	return &RedisLimiter{
		log: log.With("service", "RedisLimiter"),
		rdb: rdb,
		now: time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, rule Rule, key string) (Decision, error) {
	k := Key(rule, key)
	now := l.now()
	nowMs := now.UnixMilli()
	windowStart := nowMs - rule.Window.Milliseconds()
	member := strconv.FormatInt(nowMs, 10) + "-" + uuid.NewString()

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, k, "0", strconv.FormatInt(windowStart, 10))
	card := pipe.ZCard(ctx, k)
	pipe.ZAdd(ctx, k, goredis.Z{Score: float64(nowMs), Member: member})
	pipe.Expire(ctx, k, rule.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{Allowed: true}, fmt.Errorf("rate limit pipeline: %w", err)
	}

	count := int(card.Val())
	if count < rule.Limit {
		return Decision{Allowed: true, Remaining: rule.Limit - count - 1}, nil
	}

	if err := l.rdb.ZRem(ctx, k, member).Err(); err != nil {
		l.log.Warn("Rate limit cleanup failed", "key", k, "error", err)
	}
	retry := rule.Window
	oldest, err := l.rdb.ZRangeWithScores(ctx, k, 0, 0).Result()
	if err == nil && len(oldest) == 1 {
		expiresAt := time.UnixMilli(int64(oldest[0].Score)).Add(rule.Window)
		if d := expiresAt.Sub(now); d > 0 {
			retry = d
		}
	}
	return Decision{Allowed: false, RetryAfter: retry}, nil
}
