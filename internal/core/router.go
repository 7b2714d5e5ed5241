package core

import (
	"context"
	"sync"
	"time"
)

// Resolver is a reaction consumer the Router can route to.
type Resolver interface {
	IsValid(r *Reaction) bool
	Resolve(ctx context.Context, r *Reaction) (bool, error)
	Sweep(now time.Time) int
}

// Router fans reaction events out to every live confirmation manager.
type Router struct {
	mu        sync.RWMutex
	resolvers []Resolver
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{}
}

// Register adds res. Resolvers are consulted in registration order.
func (rt *Router) Register(res Resolver) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.resolvers = append(rt.resolvers, res)
}

// Reset forgets every registered resolver.
func (rt *Router) Reset() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.resolvers = nil
}

// Len returns the number of registered resolvers.
func (rt *Router) Len() int {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return len(rt.resolvers)
}

// Route resolves r with the first resolver that considers it valid.
// It reports whether an outcome handler ran.
func (rt *Router) Route(ctx context.Context, r *Reaction) (bool, error) {
	rt.mu.RLock()
	resolvers := rt.resolvers
	rt.mu.RUnlock()

	for _, res := range resolvers {
		if res.IsValid(r) {
			return res.Resolve(ctx, r)
		}
	}
	return false, nil
}

// Sweep sweeps every resolver and returns the total number of removed entries.
func (rt *Router) Sweep(now time.Time) int {
	rt.mu.RLock()
	resolvers := rt.resolvers
	rt.mu.RUnlock()

	removed := 0
	for _, res := range resolvers {
		removed += res.Sweep(now)
	}
	return removed
}
