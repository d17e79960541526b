package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/fakenewsdetect/backend/internal/verdict"
)

// Cache is an in-process verdict cache with per-entry expiry.
type Cache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func New(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{
		cache: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

func (c *Cache) Get(_ context.Context, key string) (verdict.Record, bool, error) {
	v, found := c.cache.Get(key)
	if !found {
		return verdict.Record{}, false, nil
	}
	return v.(verdict.Record).Clone(), true, nil
}

func (c *Cache) Set(_ context.Context, key string, rec verdict.Record) error {
	c.cache.Set(key, rec.Clone(), c.ttl)
	return nil
}

func (c *Cache) Len() int {
	return c.cache.ItemCount()
}
