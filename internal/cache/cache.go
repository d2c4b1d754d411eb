package cache

import "sync"

// Cache is a thread-safe LRU cache with a fixed capacity.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	// head is the most recently used entry, tail the least.
	head, tail *entry[K, V]
	limit      int
	onEvict    func(K, V)
	hits       uint64
	misses     uint64
}

type entry[K comparable, V any] struct {
	key        K
	value      V
	prev, next *entry[K, V]
}

// New creates a cache holding at most limit entries. A limit of 0 means
// unlimited. onEvict, if not nil, is called without the lock held for
// every entry removed by eviction, Delete or Clear.
func New[K comparable, V any](limit int, onEvict func(K, V)) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]*entry[K, V]),
		limit:   limit,
		onEvict: onEvict,
	}
}

// Get returns the value for key and marks it recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.moveToFront(e)
	return e.value, true
}

// Set stores a value, replacing and evicting any previous value for key.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	var evicted []*entry[K, V]
	if old, ok := c.entries[key]; ok {
		c.unlink(old)
		delete(c.entries, key)
		evicted = append(evicted, old)
	}
	evicted = append(evicted, c.insert(key, value)...)
	c.mu.Unlock()

	c.evict(evicted)
}

// GetOrCreate returns the cached value or builds, stores and returns a new
// one. create runs under the lock, so concurrent callers never build the
// same key twice. Errors are returned and not cached.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.hits++
		c.moveToFront(e)
		c.mu.Unlock()
		return e.value, nil
	}
	c.misses++
	value, err := create()
	if err != nil {
		c.mu.Unlock()
		return value, err
	}
	evicted := c.insert(key, value)
	c.mu.Unlock()

	c.evict(evicted)
	return value, nil
}

// Delete removes key. It reports whether the key was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok {
		c.unlink(e)
		delete(c.entries, key)
	}
	c.mu.Unlock()

	if ok {
		c.evict([]*entry[K, V]{e})
	}
	return ok
}

// Clear removes every entry, oldest first.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	var all []*entry[K, V]
	for e := c.tail; e != nil; e = e.prev {
		all = append(all, e)
	}
	c.entries = make(map[K]*entry[K, V])
	c.head, c.tail = nil, nil
	c.mu.Unlock()

	c.evict(all)
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats contains cache statistics.
type Stats struct {
	Len      int
	Capacity int
	Hits     uint64
	Misses   uint64
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Len: len(c.entries), Capacity: c.limit, Hits: c.hits, Misses: c.misses}
}

// insert adds a new entry at the front and returns the entries evicted to
// stay within the limit. Caller must hold c.mu.
func (c *Cache[K, V]) insert(key K, value V) []*entry[K, V] {
	e := &entry[K, V]{key: key, value: value}
	c.entries[key] = e
	c.pushFront(e)

	var evicted []*entry[K, V]
	for c.limit > 0 && len(c.entries) > c.limit {
		old := c.tail
		c.unlink(old)
		delete(c.entries, old.key)
		evicted = append(evicted, old)
	}
	return evicted
}

func (c *Cache[K, V]) evict(entries []*entry[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range entries {
		c.onEvict(e.key, e.value)
	}
}

func (c *Cache[K, V]) pushFront(e *entry[K, V]) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *Cache[K, V]) moveToFront(e *entry[K, V]) {
	if c.head == e {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *Cache[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}
