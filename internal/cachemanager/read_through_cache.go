package cachemanager

import (
	"context"
	"sync"
	"time"
)

// ReadThroughCache serves values from a CacheManager and falls back to fn on
// a miss, caching what fn returns. Errors from fn are never cached.
//
// Every Invalidate advances a generation. A value loaded or computed before
// an Invalidate is dropped instead of stored, so a slow read cannot put back
// an entry that a concurrent write just removed.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache           CacheManager[K, V]
	fn              func(ctx context.Context, input I) (V, error)
	shouldSkipCache bool

	mu  sync.Mutex
	gen uint64
}

func NewReadThroughCache[K ~string, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	shouldSkipCache bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		cache:           cache,
		fn:              fn,
		shouldSkipCache: shouldSkipCache,
	}
}

func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.shouldSkipCache {
		return r.fn(ctx, input)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	gen := r.Generation()
	value, err := r.fn(ctx, input)
	if err != nil {
		return value, err
	}

	r.Prime(ctx, gen, key, value, ttl)
	return value, nil
}

// Generation returns a token to pass to Prime. Take it before reading the
// value to be primed.
func (r *ReadThroughCache[K, V, I]) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// Prime stores value without consulting fn, unless Invalidate ran after gen
// was taken.
func (r *ReadThroughCache[K, V, I]) Prime(ctx context.Context, gen uint64, key K, value V, ttl time.Duration) {
	if r.shouldSkipCache {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen != gen {
		return
	}
	r.cache.Set(ctx, key, value, ttl)
}

// Invalidate drops keys so the next Get reloads them.
func (r *ReadThroughCache[K, V, I]) Invalidate(ctx context.Context, keys ...K) error {
	if r.shouldSkipCache {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	return r.cache.Delete(ctx, keys...)
}
