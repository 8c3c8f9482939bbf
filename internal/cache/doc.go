// Package cache provides the generic pooling primitive behind the transient
// resource cache.
//
// # Pool[K, V]
//
// A Pool holds any number of values per key. Values are handed out
// most-recently-returned first, so a key that is requested every frame keeps
// reusing the same warm instance.
//
//	p := cache.NewPool[string, *Texture](256)
//	evicted := p.Put("rgba8-1920x1080", tex) // destroy whatever was evicted
//	tex, ok := p.Take("rgba8-1920x1080")
//
// # Eviction
//
// Two policies are applied, both oldest-first across all keys:
//
//   - Soft limit: when Put pushes the total count above the limit, the least
//     recently returned values are evicted until the pool fits again.
//   - Idle frames: Sweep advances the pool's frame clock and evicts values
//     that have sat unused for more than the given number of frames.
//
// Evicted values are returned to the caller, which owns their destruction.
//
// # Thread Safety
//
// Pool is safe for concurrent use. It must not be copied after creation
// (it contains a mutex).
package cache
