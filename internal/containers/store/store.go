// Package store layers optional behaviour over a domain.ContainerRepository:
// tracing spans, a read cache and change events. Each layer is itself a
// ContainerRepository, so they compose in any order.
package store

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/hyperstore/internal/cachemanager"
	"github.com/zjrosen/hyperstore/internal/containers/domain"
	"github.com/zjrosen/hyperstore/internal/pubsub"
)

// Options selects the layers applied by Wrap. Nil fields disable a layer.
type Options struct {
	Tracer    trace.Tracer
	Cache     cachemanager.CacheManager[string, *domain.Container]
	CacheTTL  time.Duration
	Publisher pubsub.Publisher[ContainerEvent]
}

// Wrap decorates repo with the layers enabled in opts. Spans are outermost
// so they cover cache hits; events are published only for writes that
// reached the store.
func Wrap(repo domain.ContainerRepository, opts Options) domain.ContainerRepository {
	if opts.Cache != nil {
		repo = NewCached(repo, opts.Cache, opts.CacheTTL)
	}
	if opts.Publisher != nil {
		repo = NewNotifying(repo, opts.Publisher)
	}
	if opts.Tracer != nil {
		repo = NewTraced(repo, opts.Tracer)
	}
	return repo
}
