// Package cache provides the bounded LRU memoization layer that wraps
// normalization and ID generation. It is the only component in the engine
// with shared mutable state.
package cache

import (
	"container/list"
	"sync"

	"github.com/cataloglab/labelnorm/internal/lnerrors"
)

// Entry is a cached normalization result for one raw label string.
type Entry struct {
	Normalized  string
	CanonicalID string
}

// Cache is a thread-safe least-recently-used cache keyed on the exact raw
// input string. Lookup, insertion, eviction, statistics and Clear all share
// one mutex; the compute callback runs outside the critical section, so
// concurrent misses on the same key may compute independently (recomputation
// is pure and cheap) while the structure itself is never mutated
// concurrently.
type Cache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List

	lookups int64
	hits    int64
	misses  int64
}

// lruEntry is what order elements carry
type lruEntry struct {
	key   string
	value Entry
}

// New creates a cache bounded to capacity entries. Zero or negative capacity
// is a configuration error.
func New(capacity int) (*Cache, error) {
	if capacity < 1 {
		return nil, lnerrors.NewValidationError("Capacity", capacity, "a positive entry count")
	}
	return &Cache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}, nil
}

// GetOrCompute returns the cached entry for raw, computing and inserting it
// on a miss. A hit bumps the entry's recency; an insert beyond capacity
// evicts the least-recently-used entry first.
func (c *Cache) GetOrCompute(raw string, compute func(string) Entry) Entry {
	c.mu.Lock()
	c.lookups++
	if elem, ok := c.items[raw]; ok {
		c.hits++
		c.order.MoveToFront(elem)
		value := elem.Value.(*lruEntry).value
		c.mu.Unlock()
		return value
	}
	c.misses++
	c.mu.Unlock()

	value := compute(raw)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have inserted the same key while we computed;
	// keep its entry authoritative and just refresh recency.
	if elem, ok := c.items[raw]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*lruEntry).value
	}

	elem := c.order.PushFront(&lruEntry{key: raw, value: value})
	c.items[raw] = elem

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry).key)
		}
	}

	return value
}

// Peek reports whether raw is cached without touching recency or counters.
// Intended for tests and diagnostics.
func (c *Cache) Peek(raw string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[raw]; ok {
		return elem.Value.(*lruEntry).value, true
	}
	return Entry{}, false
}

// Clear removes all entries and resets statistics in one critical section.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order = list.New()
	c.lookups = 0
	c.hits = 0
	c.misses = 0
}

// Size returns the current number of cached entries
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Capacity returns the configured entry limit
func (c *Cache) Capacity() int {
	return c.capacity
}

// Stats is a read-only snapshot of cache counters
type Stats struct {
	Lookups int64
	Hits    int64
	Misses  int64
	Size    int
	HitRate float64
}

// Stats returns a consistent snapshot of the counters. Observability only;
// correctness never depends on these numbers.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	hitRate := float64(0)
	if c.lookups > 0 {
		hitRate = float64(c.hits) / float64(c.lookups)
	}

	return Stats{
		Lookups: c.lookups,
		Hits:    c.hits,
		Misses:  c.misses,
		Size:    c.order.Len(),
		HitRate: hitRate,
	}
}
