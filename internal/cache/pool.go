package cache

import "sync"

// Pool is a thread-safe multi-value pool with a soft limit and idle-frame
// eviction. Values under the same key are interchangeable.
//
// Pool is safe for concurrent use.
// Pool must not be copied after creation (has mutex).
type Pool[K comparable, V any] struct {
	mu        sync.Mutex
	buckets   map[K][]*lruNode[K, V] // per key, last element is the most recent
	lru       *lruList[K, V]
	softLimit int
	frame     uint64 // monotonic frame clock, advanced by Sweep

	hits      uint64
	misses    uint64
	evictions uint64
}

// NewPool creates an empty pool with the given soft limit.
// A softLimit of 0 means unlimited.
func NewPool[K comparable, V any](softLimit int) *Pool[K, V] {
	if softLimit < 0 {
		softLimit = 0
	}
	return &Pool[K, V]{
		buckets:   make(map[K][]*lruNode[K, V]),
		lru:       newLRUList[K, V](),
		softLimit: softLimit,
	}
}

// Take removes and returns the most recently returned value for key.
// Returns (zero, false) if no value is pooled under key.
func (p *Pool[K, V]) Take(key K) (V, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if len(bucket) == 0 {
		p.misses++
		var zero V
		return zero, false
	}

	node := bucket[len(bucket)-1]
	p.setBucket(key, bucket[:len(bucket)-1])
	p.lru.Remove(node)
	p.hits++

	return node.value, true
}

// Put returns a value to the pool under key.
// If the pool exceeds its soft limit, the oldest values across all keys are
// evicted and returned; the caller is responsible for destroying them.
func (p *Pool[K, V]) Put(key K, value V) []V {
	p.mu.Lock()
	defer p.mu.Unlock()

	node := &lruNode[K, V]{key: key, value: value, frame: p.frame}
	p.buckets[key] = append(p.buckets[key], node)
	p.lru.PushFront(node)

	if p.softLimit == 0 || p.lru.Len() <= p.softLimit {
		return nil
	}

	var evicted []V
	for p.lru.Len() > p.softLimit {
		evicted = append(evicted, p.evictOldest())
	}
	return evicted
}

// Sweep advances the frame clock by one and evicts every value that has
// been idle for more than maxIdle frames. A maxIdle <= 0 only advances the
// clock.
func (p *Pool[K, V]) Sweep(maxIdle int) []V {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frame++
	if maxIdle <= 0 {
		return nil
	}

	var evicted []V
	for oldest := p.lru.Oldest(); oldest != nil; oldest = p.lru.Oldest() {
		//nolint:gosec // G115: maxIdle checked positive above
		if p.frame-oldest.frame <= uint64(maxIdle) {
			break
		}
		evicted = append(evicted, p.evictOldest())
	}
	return evicted
}

// Drain removes and returns every pooled value.
func (p *Pool[K, V]) Drain() []V {
	p.mu.Lock()
	defer p.mu.Unlock()

	values := make([]V, 0, p.lru.Len())
	for node := p.lru.head; node != nil; node = node.next {
		values = append(values, node.value)
	}
	p.buckets = make(map[K][]*lruNode[K, V])
	p.lru.Clear()

	return values
}

// Len returns the total number of pooled values.
func (p *Pool[K, V]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.lru.Len()
}

// Count returns the number of values pooled under key.
func (p *Pool[K, V]) Count(key K) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.buckets[key])
}

// Frame returns the current value of the frame clock.
func (p *Pool[K, V]) Frame() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.frame
}

// Stats returns pool statistics.
func (p *Pool[K, V]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Stats{
		Len:       p.lru.Len(),
		Keys:      len(p.buckets),
		Capacity:  p.softLimit,
		Hits:      p.hits,
		Misses:    p.misses,
		Evictions: p.evictions,
	}
	if total := p.hits + p.misses; total > 0 {
		s.HitRate = float64(p.hits) / float64(total)
	}
	return s
}

// evictOldest removes the least recently returned value.
// Caller must hold p.mu and ensure the list is not empty.
func (p *Pool[K, V]) evictOldest() V {
	node := p.lru.Oldest()
	p.lru.Remove(node)

	bucket := p.buckets[node.key]
	for i, n := range bucket {
		if n == node {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	p.setBucket(node.key, bucket)
	p.evictions++

	return node.value
}

// setBucket stores bucket under key, dropping the key when empty.
// Caller must hold p.mu.
func (p *Pool[K, V]) setBucket(key K, bucket []*lruNode[K, V]) {
	if len(bucket) == 0 {
		delete(p.buckets, key)
		return
	}
	p.buckets[key] = bucket
}

// Stats contains pool statistics.
type Stats struct {
	// Len is the current number of pooled values.
	Len int
	// Keys is the number of distinct keys with at least one pooled value.
	Keys int
	// Capacity is the soft limit (0 = unlimited).
	Capacity int
	// Hits is the number of successful Take calls.
	Hits uint64
	// Misses is the number of Take calls that found nothing.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0.0 to 1.0.
	HitRate float64
	// Evictions is the number of values evicted by the soft limit or Sweep.
	Evictions uint64
}
