package api

import (
	"context"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"MarketLens/internal/logger"
)

const recentLogsKey = "logs:recent"

// LogCache keeps the encoded recent-logs page in Redis. Cache failures are
// logged and treated as misses.
type LogCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewLogCache returns nil when rdb is nil so callers can pass it through unset.
func NewLogCache(rdb *goredis.Client, ttl time.Duration) *LogCache {
	if rdb == nil {
		return nil
	}
	return &LogCache{rdb: rdb, ttl: ttl}
}

func (lc *LogCache) get(ctx context.Context) ([]byte, bool) {
	if lc == nil {
		return nil, false
	}
	data, err := lc.rdb.Get(ctx, recentLogsKey).Bytes()
	if err != nil {
		if err != goredis.Nil {
			logger.Warn("log cache get: %v", err)
		}
		return nil, false
	}
	return data, true
}

func (lc *LogCache) set(ctx context.Context, data []byte) {
	if lc == nil {
		return
	}
	if err := lc.rdb.Set(ctx, recentLogsKey, data, lc.ttl).Err(); err != nil {
		logger.Warn("log cache set: %v", err)
	}
}

func (lc *LogCache) invalidate(ctx context.Context) {
	if lc == nil {
		return
	}
	if err := lc.rdb.Del(ctx, recentLogsKey).Err(); err != nil {
		logger.Warn("log cache invalidate: %v", err)
	}
}
