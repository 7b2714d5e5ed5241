package cache

import (
	"sync"
	"time"

	"github.com/sglre6355/wikibot/internal/metrics"
)

// Map memoizes values per key, each entry expiring independently.
// Entries are never evicted, only replaced after their TTL, so keys should
// come from a small bounded space.
type Map[K comparable, V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	opts    options
	entries map[K]*entry[V]
}

type entry[V any] struct {
	mu          sync.Mutex
	value       V
	retrievedAt time.Time
	valid       bool
}

// NewMap creates a Map with the given per-entry TTL.
func NewMap[K comparable, V any](ttl time.Duration, opts ...Option) *Map[K, V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Map[K, V]{
		ttl:     ttl,
		opts:    buildOptions(opts),
		entries: make(map[K]*entry[V]),
	}
}

// GetOrRetrieve returns the cached value for key, calling retrieve(key) when
// there is none or it has expired. Retrieval for one key does not block
// lookups of other keys.
func (m *Map[K, V]) GetOrRetrieve(key K, retrieve func(K) (V, error)) (V, error) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if !ok {
		e = &entry[V]{}
		m.entries[key] = e
	}
	m.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	now := m.opts.now()
	if e.valid && now.Sub(e.retrievedAt) < m.ttl {
		metrics.RecordCacheAccess(m.opts.name, true)
		return e.value, nil
	}
	metrics.RecordCacheAccess(m.opts.name, false)

	v, err := retrieve(key)
	if err != nil {
		var zero V
		return zero, err
	}

	e.value = v
	e.retrievedAt = m.opts.now()
	e.valid = true
	return v, nil
}

// Invalidate drops the entry for key.
func (m *Map[K, V]) Invalidate(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
}

// Len returns the number of tracked keys.
func (m *Map[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}
