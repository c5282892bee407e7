package querycache

import "context"

// Mutate applies an optimistic update to the cached value under key.
//
// The current value (or the zero value when the key is absent) is
// snapshotted, transform's result is stored immediately so readers see the
// new state before the write lands, then write runs against the remote
// backend. If the write fails the snapshot is restored exactly as it was,
// including its original timestamp and absence. Either way the entry is
// marked stale afterwards so the next read revalidates against the backend,
// and the write's error is returned for the caller to surface.
func Mutate[T any](ctx context.Context, c *Cache, key string, transform func(current T) T, write func(ctx context.Context, next T) error) error {
	c.mu.Lock()
	snapshot, existed := c.entries[key]

	var current T
	if existed {
		if v, ok := snapshot.value.(T); ok {
			current = v
		}
	}
	next := transform(current)
	c.entries[key] = entry{value: next, fetchedAt: snapshot.fetchedAt}
	c.mu.Unlock()

	err := write(ctx, next)

	c.mu.Lock()
	if err != nil {
		if existed {
			c.entries[key] = snapshot
		} else {
			delete(c.entries, key)
		}
	}
	if e, ok := c.entries[key]; ok {
		e.stale = true
		c.entries[key] = e
	}
	c.mu.Unlock()

	return err
}
