// Package cache memoizes expensive lookups, such as wiki module data,
// for a fixed time window.
package cache

import (
	"sync"
	"time"

	"github.com/sglre6355/wikibot/internal/metrics"
)

// DefaultTTL is used when a cache is created with a non-positive TTL.
const DefaultTTL = 10 * time.Minute

// Option configures a Value or Map.
type Option func(*options)

type options struct {
	name string
	now  func() time.Time
}

// WithName sets the cache name reported in metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{name: "default", now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Value holds a single memoized value that is retrieved again once it is
// older than the TTL. Safe for concurrent use; concurrent readers of an
// expired value wait for one retrieval instead of each calling the supplier.
type Value[V any] struct {
	mu          sync.Mutex
	ttl         time.Duration
	opts        options
	value       V
	retrievedAt time.Time
	valid       bool
}

// NewValue creates a Value with the given TTL.
func NewValue[V any](ttl time.Duration, opts ...Option) *Value[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Value[V]{ttl: ttl, opts: buildOptions(opts)}
}

// GetOrRetrieve returns the cached value if it is younger than the TTL,
// otherwise it calls retrieve and caches the result. Errors from retrieve
// are returned as is and nothing is cached.
func (c *Value[V]) GetOrRetrieve(retrieve func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.opts.now()
	if c.valid && now.Sub(c.retrievedAt) < c.ttl {
		metrics.RecordCacheAccess(c.opts.name, true)
		return c.value, nil
	}
	metrics.RecordCacheAccess(c.opts.name, false)

	v, err := retrieve()
	if err != nil {
		var zero V
		return zero, err
	}

	c.value = v
	c.retrievedAt = c.opts.now()
	c.valid = true
	return v, nil
}

// Invalidate forces the next read to retrieve a fresh value.
func (c *Value[V]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	c.value = zero
	c.valid = false
}
