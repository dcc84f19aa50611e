package reasoning

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"bookingops/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const bundleKeyPrefix = "reasoning:bundle:"

// BundleCache stores previously computed bundles keyed by payload digest.
type BundleCache interface {
	Get(ctx context.Context, key string) (models.ReasoningBundle, bool, error)
	Set(ctx context.Context, key string, bundle models.ReasoningBundle) error
}

type RedisBundleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBundleCache(client *redis.Client, ttl time.Duration) *RedisBundleCache {
	return &RedisBundleCache{client: client, ttl: ttl}
}

func (c *RedisBundleCache) Get(ctx context.Context, key string) (models.ReasoningBundle, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return models.ReasoningBundle{}, false, nil
	}
	if err != nil {
		return models.ReasoningBundle{}, false, err
	}
	var bundle models.ReasoningBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return models.ReasoningBundle{}, false, fmt.Errorf("decode cached bundle: %w", err)
	}
	return bundle, true, nil
}

func (c *RedisBundleCache) Set(ctx context.Context, key string, bundle models.ReasoningBundle) error {
	b, err := json.Marshal(bundle)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, c.ttl).Err()
}

// BundleKey derives the cache key from the engine version and the payload's JSON digest.
func BundleKey(p models.BookingPayload) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return bundleKeyPrefix + EngineVersion + ":" + hex.EncodeToString(sum[:]), nil
}

// CachedReasoner consults the cache before running the engine. A nil cache disables caching.
// Cache failures never change the result.
type CachedReasoner struct {
	engine *Engine
	cache  BundleCache
	logger *zap.Logger
}

func NewCachedReasoner(engine *Engine, cache BundleCache, logger *zap.Logger) *CachedReasoner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedReasoner{engine: engine, cache: cache, logger: logger}
}

func (r *CachedReasoner) Reason(ctx context.Context, p models.BookingPayload) models.ReasoningBundle {
	if r.cache == nil {
		return r.engine.Reason(p)
	}

	key, err := BundleKey(p)
	if err != nil {
		r.logger.Warn("Failed to derive reasoning cache key", zap.Error(err))
		return r.engine.Reason(p)
	}

	cached, found, err := r.cache.Get(ctx, key)
	switch {
	case err != nil:
		r.logger.Warn("Reasoning cache read failed", zap.String("key", key), zap.Error(err))
	case found && usable(cached):
		return cached
	case found:
		r.logger.Error("Discarding cached reasoning bundle that breaks bundle invariants",
			zap.String("key", key),
			zap.Float64("confidence", cached.Confidence),
			zap.Int("actions", len(cached.RecommendedActions)))
	}

	bundle := r.engine.Reason(p)
	if err := r.cache.Set(ctx, key, bundle); err != nil {
		r.logger.Warn("Reasoning cache write failed", zap.String("key", key), zap.Error(err))
	}
	return bundle
}

// usable reports whether a cached bundle still holds the engine's output guarantees.
func usable(b models.ReasoningBundle) bool {
	return b.Confidence >= 0 && b.Confidence <= 1 && len(b.RecommendedActions) > 0 && b.IntentLabel != ""
}
