package dispatch

import "sync"

// ranked is one applicable candidate with its call-type-specific ordering
// data. Orders are immutable once published.
type ranked struct {
	cand       *Candidate
	narrowness Narrowness
	bindings   map[string]string
}

type cacheEntry struct {
	version uint64
	order   []*ranked
}

// Cache memoizes the nominal candidate ordering per (routine, static
// argument type tuple). Nominal narrowness depends only on types, so the
// sort is reusable across calls; predicate evaluation is never cached.
// Entries are fully built before they are published, so a reader never
// observes a partial ordering. Entries carry the dispatch-set version at
// build time; stale entries are recomputed lazily after new registrations.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

func cacheKey(routine, typeKey string) string {
	return routine + "(" + typeKey + ")"
}

// GetOrBuild returns the cached ordering for the key if its version is
// current, building and publishing it otherwise.
func (c *Cache) GetOrBuild(routine, typeKey string, version uint64, build func() []*ranked) []*ranked {
	key := cacheKey(routine, typeKey)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && entry.version == version {
		return entry.order
	}

	// Build outside the lock; losing a race just means identical work.
	order := build()

	// Replace on any version mismatch: composite versions (resolver
	// strategies fold scope information in) do not grow monotonically,
	// and keeping the old entry would force a rebuild on every call.
	c.mu.Lock()
	if cur, ok := c.entries[key]; !ok || cur.version != version {
		c.entries[key] = &cacheEntry{version: version, order: order}
	}
	c.mu.Unlock()
	return order
}

// Len returns the number of live entries, for tests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
