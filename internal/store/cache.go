package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipe-explorer/backend/internal/metrics"
	"github.com/pageza/recipe-explorer/backend/internal/model"
	"github.com/pageza/recipe-explorer/backend/internal/query"
)

const (
	cacheKeyPrefix = "recipes"
	generationKey  = cacheKeyPrefix + ":generation"
)

// CachedStore is a read-through Redis cache in front of another store.
// Cached pages are keyed by the collection generation, which Replace bumps,
// so a reload never serves pages from the previous catalog. Redis failures
// are logged and the request falls through to the wrapped store.
type CachedStore struct {
	next RecipeStore
	rdb  *redis.Client
	ttl  time.Duration
	log  logrus.FieldLogger
}

// NewCachedStore wraps next with a cache whose entries live for ttl.
func NewCachedStore(next RecipeStore, rdb *redis.Client, ttl time.Duration, log logrus.FieldLogger) *CachedStore {
	return &CachedStore{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
		log:  log.WithField("component", "cache"),
	}
}

func cacheKey(generation int64, p query.Predicate, w query.Window) (string, error) {
	raw, err := json.Marshal(struct {
		Predicate query.Predicate `json:"p"`
		Window    query.Window    `json:"w"`
	}{p, w})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%s:v%d:%s", cacheKeyPrefix, generation, hex.EncodeToString(sum[:])), nil
}

func (c *CachedStore) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Find implements RecipeStore.
func (c *CachedStore) Find(ctx context.Context, p query.Predicate, w query.Window) (Result, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		metrics.CacheErrors.Inc()
		c.log.WithError(err).Warn("Failed to read cache generation")
		return c.next.Find(ctx, p, w)
	}

	key, err := cacheKey(gen, p, w)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build cache key: %w", err)
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var res Result
		if err := json.Unmarshal(raw, &res); err == nil {
			if res.Data == nil {
				res.Data = []model.Recipe{}
			}
			metrics.CacheHits.Inc()
			return res, nil
		}
		metrics.CacheErrors.Inc()
		c.log.WithField("key", key).Warn("Discarding undecodable cache entry")
	case errors.Is(err, redis.Nil):
	default:
		metrics.CacheErrors.Inc()
		c.log.WithError(err).Warn("Failed to read cache entry")
	}
	metrics.CacheMisses.Inc()

	res, err := c.next.Find(ctx, p, w)
	if err != nil {
		return Result{}, err
	}

	if encoded, err := json.Marshal(res); err == nil {
		if err := c.rdb.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
			metrics.CacheErrors.Inc()
			c.log.WithError(err).Warn("Failed to write cache entry")
		}
	}

	return res, nil
}

// Replace implements RecipeStore and invalidates every cached page.
func (c *CachedStore) Replace(ctx context.Context, recipes []model.Recipe) error {
	if err := c.next.Replace(ctx, recipes); err != nil {
		return err
	}
	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate recipe cache: %w", err)
	}
	return nil
}

// Ping implements RecipeStore. Only the wrapped store is required to be up.
func (c *CachedStore) Ping(ctx context.Context) error {
	return c.next.Ping(ctx)
}
