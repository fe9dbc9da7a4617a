package authgw

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/aurumlab/goldtrade/internal/domain/model"
)

const cacheKeyPrefix = "goldtrade:authgw:"

// CachedClient memoizes successful validations in redis for a short TTL so
// hot credentials don't hit the auth service on every request. Rejections are
// never cached.
type CachedClient struct {
	inner  Client
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedClient wraps a client with a redis-backed validation cache.
func NewCachedClient(inner Client, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedClient {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &CachedClient{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

// Validate serves from cache when possible and falls through to the inner
// client otherwise. Cache failures degrade to uncached validation.
func (c *CachedClient) Validate(ctx context.Context, credential string) (*model.Identity, error) {
	key := cacheKey(credential)

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var identity model.Identity
		if jsonErr := json.Unmarshal(data, &identity); jsonErr == nil {
			return &identity, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("token cache read failed", slog.String("error", err.Error()))
	}

	identity, err := c.inner.Validate(ctx, credential)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(identity); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("token cache write failed", slog.String("error", err.Error()))
		}
	}
	return identity, nil
}

// The credential itself never lands in redis, only its digest.
func cacheKey(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
