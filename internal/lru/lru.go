// Package lru implements a bounded, strictly least-recently-used cache with
// resource reclamation on eviction.
//
// The cache owns every stored value: when an entry is evicted or the cache is
// cleared, the configured release callback is invoked exactly once for it so
// externally allocated resources (such as rasterized frame files) are never
// leaked. A doubly-linked list tracks recency for O(1) promotion and eviction,
// and a hash map provides O(1) lookups. All operations are mutex-guarded.
package lru

import (
	"container/list"
	"errors"
	"sync"
)

// ErrInvalidCapacity is returned when a cache is constructed with a capacity below one.
var ErrInvalidCapacity = errors.New("lru: capacity must be at least 1")

// Cache is a thread-safe LRU cache holding at most a fixed number of entries.
type Cache[K comparable, V any] struct {
	capacity  int
	evictList *list.List
	items     map[K]*list.Element
	onEvict   func(K, V)
	mu        sync.Mutex
}

// entry holds the key and value for a cache entry.
// The key is stored redundantly to enable O(1) removal when evicting
// entries from the tail of the recency list.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates an LRU cache bounded to capacity entries. The onEvict callback,
// if non-nil, is invoked for every entry leaving the cache (eviction, value
// replacement, or Clear) and is the single release point for owned resources.
func New[K comparable, V any](capacity int, onEvict func(K, V)) (*Cache[K, V], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	return &Cache[K, V]{
		capacity:  capacity,
		evictList: list.New(),
		items:     make(map[K]*list.Element),
		onEvict:   onEvict,
	}, nil
}

// Get retrieves a value and promotes it to most-recently-used.
// A miss has no side effects.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.items[key]; exists {
		c.evictList.MoveToFront(elem)
		return elem.Value.(*entry[K, V]).value, true
	}

	var zero V
	return zero, false
}

// Set inserts a value as most-recently-used. If the key already exists its
// value is replaced (the displaced value is released) and the entry is
// promoted; the cache size does not change. If the key is new and the cache
// is full, exactly one least-recently-used entry is evicted first.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.items[key]; exists {
		c.evictList.MoveToFront(elem)
		ent := elem.Value.(*entry[K, V])
		if c.onEvict != nil {
			c.onEvict(key, ent.value)
		}
		ent.value = value
		return
	}

	ent := &entry[K, V]{key: key, value: value}
	elem := c.evictList.PushFront(ent)
	c.items[key] = elem

	if c.evictList.Len() > c.capacity {
		c.removeOldest()
	}
}

// Has reports whether a key is present without affecting recency ordering.
func (c *Cache[K, V]) Has(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, exists := c.items[key]
	return exists
}

// Clear releases every held value and empties the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.onEvict != nil {
		for elem := c.evictList.Front(); elem != nil; elem = elem.Next() {
			ent := elem.Value.(*entry[K, V])
			c.onEvict(ent.key, ent.value)
		}
	}

	c.items = make(map[K]*list.Element)
	c.evictList.Init()
}

// Len returns the current number of entries, always within [0, capacity].
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.evictList.Len()
}

// Capacity returns the fixed maximum number of entries.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// removeOldest evicts the least-recently-used entry and releases its value.
func (c *Cache[K, V]) removeOldest() {
	elem := c.evictList.Back()
	if elem == nil {
		return
	}

	c.evictList.Remove(elem)
	ent := elem.Value.(*entry[K, V])
	delete(c.items, ent.key)

	if c.onEvict != nil {
		c.onEvict(ent.key, ent.value)
	}
}
