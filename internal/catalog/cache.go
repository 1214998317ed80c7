package catalog

import (
	"context"
	"time"

	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
	"github.com/angelmondragon/cartoptions-backend/pkg/logger"
)

const variantCacheKind = "variant"

type jsonCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CatalogKey(kind, id string) string
}

// CachedFinder serves variant lookups from redis before falling back to next.
// Cache failures are logged and never fail the lookup.
type CachedFinder struct {
	next  variantFinder
	cache jsonCache
	ttl   time.Duration
	logg  *logger.Logger
}

// NewCachedFinder wraps next with a read-through cache. A non-positive ttl disables caching.
func NewCachedFinder(next variantFinder, cache jsonCache, ttl time.Duration, logg *logger.Logger) *CachedFinder {
	if logg == nil {
		logg = logger.Nop()
	}
	return &CachedFinder{next: next, cache: cache, ttl: ttl, logg: logg}
}

func (c *CachedFinder) FindVariantByCode(ctx context.Context, code string) (*models.ProductVariant, error) {
	if c.cache == nil || c.ttl <= 0 {
		return c.next.FindVariantByCode(ctx, code)
	}

	key := c.cache.CatalogKey(variantCacheKind, code)
	var cached models.ProductVariant
	found, err := c.cache.GetJSON(ctx, key, &cached)
	switch {
	case err != nil:
		c.logg.Warn(c.logg.WithField(ctx, "cache_key", key), "catalog cache read failed: "+err.Error())
		// drop entries that no longer decode so the next lookup repopulates them
		if delErr := c.cache.Del(ctx, key); delErr != nil {
			c.logg.Warn(c.logg.WithField(ctx, "cache_key", key), "catalog cache evict failed: "+delErr.Error())
		}
	case found:
		return &cached, nil
	}

	variant, err := c.next.FindVariantByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := c.cache.SetJSON(ctx, key, variant, c.ttl); err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "cache_key", key), "catalog cache write failed: "+err.Error())
	}
	return variant, nil
}
