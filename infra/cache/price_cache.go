// Package cache provides the in-memory and redis caches backing the
// pricing engine.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amirasaad/brokerage/pkg/price"
	"github.com/amirasaad/brokerage/pkg/pricing/core"
	"golang.org/x/sync/singleflight"
)

// PriceCache is a short-lived memo of raw provider calls. The first caller
// for a pair performs the fetch; concurrent and near-future callers share
// the result without a second provider call. Errors are never cached, so
// a failed fetch does not poison future attempts.
type PriceCache struct {
	ttl     time.Duration
	entries map[string]priceEntry
	mu      sync.RWMutex
	group   singleflight.Group
}

type priceEntry struct {
	value     price.Price
	expiresAt time.Time
}

// NewPriceCache creates a provider price cache with the given TTL.
func NewPriceCache(ttl time.Duration) *PriceCache {
	return &PriceCache{
		ttl:     ttl,
		entries: make(map[string]priceEntry),
	}
}

// PriceKey is the memo key for one provider lookup.
func PriceKey(source core.PriceSource, asset, reference, param string) string {
	key := fmt.Sprintf("%s:%s/%s", source, asset, reference)
	if param != "" {
		key += ":" + param
	}
	return key
}

// GetOrFetch returns the cached price for the key, or runs fetch exactly
// once for all concurrent callers and caches the result.
func (c *PriceCache) GetOrFetch(
	ctx context.Context,
	key string,
	fetch func(ctx context.Context) (price.Price, error),
) (price.Price, error) {
	if p, ok := c.get(key); ok {
		return p, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// a previous flight may have filled the entry while we waited
		if p, ok := c.get(key); ok {
			return p, nil
		}

		p, err := fetch(ctx)
		if err != nil {
			return price.Price{}, err
		}

		c.set(key, p)
		return p, nil
	})
	if err != nil {
		return price.Price{}, err
	}

	return v.(price.Price), nil
}

func (c *PriceCache) get(key string) (price.Price, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return price.Price{}, false
	}
	return entry.value, true
}

func (c *PriceCache) set(key string, p price.Price) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = priceEntry{value: p, expiresAt: time.Now().Add(c.ttl)}
}
