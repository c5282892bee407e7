// Package querycache provides a keyed in-memory cache for query results and
// the optimistic mutation primitive built on top of it.
package querycache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	fetchedAt time.Time
	stale     bool
}

// Cache stores query results keyed by string. Entries carry the time they
// were stored and a staleness flag so readers can decide whether to refetch.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// Get returns the cached value for key and whether it is present. fresh is
// true when the entry is younger than maxAge and has not been marked stale.
func (c *Cache) Get(key string, maxAge time.Duration) (value any, ok, fresh bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, false
	}
	fresh = !e.stale && time.Since(e.fetchedAt) < maxAge
	return e.value, true, fresh
}

// Set stores value under key, stamping it as freshly fetched.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, fetchedAt: time.Now()}
}

// Invalidate removes the entry for key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// MarkStale keeps the entry readable but forces the next Get to report it
// as needing a refetch.
func (c *Cache) MarkStale(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return
	}
	e.stale = true
	c.entries[key] = e
}

// Clear drops every entry. Used on sign-out so one user's results never
// leak into the next session.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
