package cache

import (
	"sync"
	"time"

	"github.com/amirasaad/brokerage/pkg/pricing/core"
)

// ChainCache holds resolved rule chains per currency. Entries live for
// hours; per-rule staleness is handled by the resolver, which replaces a
// chain entry after updating any of its rules (last-writer-wins).
type ChainCache struct {
	ttl     time.Duration
	entries map[string]chainEntry
	mu      sync.RWMutex
}

type chainEntry struct {
	rules     []*core.PriceRule
	expiresAt time.Time
}

// NewChainCache creates a rule-chain cache with the given TTL.
func NewChainCache(ttl time.Duration) *ChainCache {
	return &ChainCache{
		ttl:     ttl,
		entries: make(map[string]chainEntry),
	}
}

// Get returns the cached chain for a currency key.
func (c *ChainCache) Get(key string) ([]*core.PriceRule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.rules, true
}

// Put replaces the cached chain for a currency key.
func (c *ChainCache) Put(key string, rules []*core.PriceRule) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = chainEntry{rules: rules, expiresAt: time.Now().Add(c.ttl)}
}

// Invalidate drops the cached chain for a currency key.
func (c *ChainCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear drops every cached chain.
func (c *ChainCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]chainEntry)
}
