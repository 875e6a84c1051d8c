// Package cache provides the decoded-block cache of the text pool.
package cache

import "container/list"

// LRU is a byte-budgeted least-recently-used cache.
//
// LRU does no locking of its own: the text pool already serializes every block
// decode under one mutex, and the cache is only touched inside that section.
type LRU[K comparable, V any] struct {
	capacity  int64
	size      int64
	items     map[K]*list.Element
	evictList *list.List

	hits   int64
	misses int64
}

type entry[K comparable, V any] struct {
	key   K
	value V
	cost  int64
}

// NewLRU creates a cache holding at most capacity cost units.
// A non-positive capacity disables caching.
func NewLRU[K comparable, V any](capacity int64) *LRU[K, V] {
	return &LRU[K, V]{
		capacity:  capacity,
		items:     make(map[K]*list.Element),
		evictList: list.New(),
	}
}

// Get returns the cached value for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	if ent, ok := c.items[key]; ok {
		c.hits++
		c.evictList.MoveToFront(ent)

		return ent.Value.(*entry[K, V]).value, true
	}
	c.misses++

	var zero V

	return zero, false
}

// Set caches value under key with the given cost, evicting older entries as needed.
// Values costlier than the whole capacity are not cached.
func (c *LRU[K, V]) Set(key K, value V, cost int64) {
	if cost > c.capacity {
		return
	}

	if ent, ok := c.items[key]; ok {
		e := ent.Value.(*entry[K, V])
		c.size += cost - e.cost
		e.value = value
		e.cost = cost
		c.evictList.MoveToFront(ent)
		c.evict()

		return
	}

	for c.size+cost > c.capacity {
		if back := c.evictList.Back(); back != nil {
			c.removeElement(back)
		} else {
			break
		}
	}

	c.items[key] = c.evictList.PushFront(&entry[K, V]{key: key, value: value, cost: cost})
	c.size += cost
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return c.evictList.Len()
}

// Capacity returns the configured budget.
func (c *LRU[K, V]) Capacity() int64 {
	return c.capacity
}

// Size returns the summed cost of cached entries.
func (c *LRU[K, V]) Size() int64 {
	return c.size
}

// Stats returns hit and miss counters.
func (c *LRU[K, V]) Stats() (hits, misses int64) {
	return c.hits, c.misses
}

func (c *LRU[K, V]) evict() {
	for c.size > c.capacity {
		back := c.evictList.Back()
		if back == nil {
			return
		}
		c.removeElement(back)
	}
}

func (c *LRU[K, V]) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	kv := e.Value.(*entry[K, V])
	delete(c.items, kv.key)
	c.size -= kv.cost
}
