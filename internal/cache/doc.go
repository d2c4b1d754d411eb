// Package cache provides a small LRU cache for immutable objects that are
// expensive to build, such as compiled shader words and native samplers.
//
//	c := cache.New[key, []uint32](64, nil)
//	words, err := c.GetOrCreate(k, func() ([]uint32, error) { return compile(src) })
//
// An eviction callback lets native objects be destroyed when they fall out
// of the cache or when the cache is cleared. Cache is safe for concurrent
// use and must not be copied after creation.
package cache
