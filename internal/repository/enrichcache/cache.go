// Package enrichcache is a read-through cache decorator for enrichments.
package enrichcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/johnleydelgado/legacy-app-sub005/internal/db"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
)

const keyPrefix = "enrich:"

// DefaultTTL is used when New receives a non-positive ttl.
const DefaultTTL = 5 * time.Minute

// store is the consumer interface for the cache backend (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cacheable is an enricher that can key its output by record.
type Cacheable interface {
	Name() string
	Defaults() map[string]any
	Enrich(ctx context.Context, rec record.Record) (map[string]any, error)
	CacheKey(rec record.Record) (string, bool)
}

// Cached wraps an enricher with a key-value cache.
// Cache failures never fail the enrichment; they are logged and skipped.
type Cached struct {
	inner      Cacheable
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), may be nil.
func New(
	inner Cacheable,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Cached {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cached{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Name returns the wrapped enrichment name.
func (c *Cached) Name() string { return c.inner.Name() }

// Defaults returns the wrapped enrichment defaults.
func (c *Cached) Defaults() map[string]any { return c.inner.Defaults() }

// CacheKey delegates to the wrapped enricher.
func (c *Cached) CacheKey(rec record.Record) (string, bool) { return c.inner.CacheKey(rec) }

// Enrich returns the cached fields or calls the inner enricher.
// Records without a cache key bypass the cache.
func (c *Cached) Enrich(ctx context.Context, rec record.Record) (map[string]any, error) {
	k, ok := c.inner.CacheKey(rec)
	if !ok {
		return c.inner.Enrich(ctx, rec)
	}
	key := keyPrefix + k

	if fields, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return fields, nil
	}
	c.incCache("miss")

	fields, err := c.inner.Enrich(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("enrich %s: %w", c.inner.Name(), err)
	}

	c.putToCache(ctx, key, fields)
	return fields, nil
}

func (c *Cached) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *Cached) getFromCache(ctx context.Context, key string) (map[string]any, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached enrichment", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		c.logger.Warn("Failed to parse cached enrichment", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return fields, true
}

func (c *Cached) putToCache(ctx context.Context, key string, fields map[string]any) {
	data, err := json.Marshal(fields)
	if err != nil {
		c.logger.Warn("Failed to encode enrichment", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache enrichment", zap.String("key", key), zap.Error(err))
	}
}
