package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/hyperstore/internal/cachemanager"
	"github.com/zjrosen/hyperstore/internal/containers/domain"
	"github.com/zjrosen/hyperstore/internal/log"
)

// cachedRepository serves GetByName, GetByID and Exists from an in-process
// cache. Containers are immutable values, so cached pointers are shared
// safely. Writes always reach the wrapped repository; afterwards they prime
// or invalidate the affected entries. Loads that overlap an invalidation are
// not cached. Writes made by other processes become visible after ttl.
type cachedRepository struct {
	domain.ContainerRepository
	cache cachemanager.CacheManager[string, *domain.Container]
	rows  *cachemanager.ReadThroughCache[string, *domain.Container, lookup]
	ttl   time.Duration
}

// lookup selects the row a cache miss loads.
type lookup struct {
	name string
	id   uuid.UUID
	byID bool
}

// NewCached returns next with a read cache in front of it. A zero ttl uses
// the cache's default expiration.
func NewCached(next domain.ContainerRepository, cache cachemanager.CacheManager[string, *domain.Container], ttl time.Duration) domain.ContainerRepository {
	r := &cachedRepository{
		ContainerRepository: next,
		cache:               cache,
		ttl:                 ttl,
	}
	r.rows = cachemanager.NewReadThroughCache(cache, r.load, false)
	return r
}

func nameKey(name string) string { return "name:" + name }

func idKey(id uuid.UUID) string { return "id:" + id.String() }

func (r *cachedRepository) load(ctx context.Context, in lookup) (*domain.Container, error) {
	if in.byID {
		return r.ContainerRepository.GetByID(ctx, in.id)
	}
	return r.ContainerRepository.GetByName(ctx, in.name)
}

func (r *cachedRepository) prime(ctx context.Context, gen uint64, c *domain.Container) {
	r.rows.Prime(ctx, gen, nameKey(c.Name()), c, r.ttl)
	r.rows.Prime(ctx, gen, idKey(c.ID()), c, r.ttl)
}

func (r *cachedRepository) GetByName(ctx context.Context, name string) (*domain.Container, error) {
	gen := r.rows.Generation()
	c, err := r.rows.Get(ctx, nameKey(name), lookup{name: name}, r.ttl)
	if err != nil {
		return nil, err
	}
	r.rows.Prime(ctx, gen, idKey(c.ID()), c, r.ttl)
	return c, nil
}

// GetByID trusts an id entry only while the name entry still points at the
// same container. Invalidation removes name entries, which retires the id
// entry with it.
func (r *cachedRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Container, error) {
	if c, ok := r.cache.Get(ctx, idKey(id)); ok {
		if current, ok := r.cache.Get(ctx, nameKey(c.Name())); ok && current == c {
			return c, nil
		}
		_ = r.cache.Delete(ctx, idKey(id))
	}

	gen := r.rows.Generation()
	c, err := r.rows.Get(ctx, idKey(id), lookup{id: id, byID: true}, r.ttl)
	if err != nil {
		return nil, err
	}
	r.rows.Prime(ctx, gen, nameKey(c.Name()), c, r.ttl)
	return c, nil
}

func (r *cachedRepository) Exists(ctx context.Context, name string) (bool, error) {
	if _, ok := r.cache.Get(ctx, nameKey(name)); ok {
		return true, nil
	}
	return r.ContainerRepository.Exists(ctx, name)
}

func (r *cachedRepository) GetOrCreate(ctx context.Context, name, template string, cfg domain.Config) (*domain.Container, error) {
	c, _, err := r.Ensure(ctx, name, template, cfg)
	return c, err
}

// Ensure is never answered from the cache: the row may have been deleted
// behind it, and then it must be inserted again.
func (r *cachedRepository) Ensure(ctx context.Context, name, template string, cfg domain.Config) (*domain.Container, bool, error) {
	gen := r.rows.Generation()
	c, created, err := r.ContainerRepository.Ensure(ctx, name, template, cfg)
	if err != nil {
		return nil, false, err
	}
	r.prime(ctx, gen, c)
	return c, created, nil
}

func (r *cachedRepository) Create(ctx context.Context, name, template string, cfg domain.Config) (*domain.Container, error) {
	gen := r.rows.Generation()
	c, err := r.ContainerRepository.Create(ctx, name, template, cfg)
	if err != nil {
		return nil, err
	}
	r.prime(ctx, gen, c)
	return c, nil
}

func (r *cachedRepository) List(ctx context.Context) ([]*domain.Container, error) {
	gen := r.rows.Generation()
	list, err := r.ContainerRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		r.prime(ctx, gen, c)
	}
	return list, nil
}

func (r *cachedRepository) UpdateStatus(ctx context.Context, name string, status domain.Status) (int64, error) {
	// Invalidate even on failure: the write may have landed before the error.
	defer r.invalidate(ctx, name)
	return r.ContainerRepository.UpdateStatus(ctx, name, status)
}

func (r *cachedRepository) Delete(ctx context.Context, name string) (int64, error) {
	defer r.invalidate(ctx, name)
	return r.ContainerRepository.Delete(ctx, name)
}

func (r *cachedRepository) invalidate(ctx context.Context, name string) {
	keys := []string{nameKey(name)}
	if c, ok := r.cache.Get(ctx, nameKey(name)); ok {
		keys = append(keys, idKey(c.ID()))
	}
	_ = r.rows.Invalidate(ctx, keys...)
}

// FlushOnChange empties cache each time changes fires and then forwards
// the signal on the returned channel, which is closed when changes is
// closed or ctx is cancelled. Pair it with a watcher on the database file
// so writes from other processes are seen before the ttl runs out.
func FlushOnChange(ctx context.Context, cache cachemanager.CacheManager[string, *domain.Container], changes <-chan struct{}) <-chan struct{} {
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				if err := cache.Flush(ctx); err != nil {
					log.Warn(log.CatCache, "Failed to flush container cache", "error", err)
				} else {
					log.Debug(log.CatCache, "Flushed container cache after database change")
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out
}
