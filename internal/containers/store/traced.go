package store

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/hyperstore/internal/containers/domain"
	"github.com/zjrosen/hyperstore/internal/tracing"
)

// tracedRepository records one span per repository call.
type tracedRepository struct {
	next   domain.ContainerRepository
	tracer trace.Tracer
}

var _ domain.ContainerRepository = (*tracedRepository)(nil)

// NewTraced returns next with every call wrapped in a "repo.<Method>" span.
func NewTraced(next domain.ContainerRepository, tracer trace.Tracer) domain.ContainerRepository {
	return &tracedRepository{next: next, tracer: tracer}
}

func (r *tracedRepository) end(span trace.Span, err error) {
	tracing.EndSpan(span, err, domain.KindOf(err).String())
}

func containerAttrs(c *domain.Container) []attribute.KeyValue {
	if c == nil {
		return nil
	}
	return []attribute.KeyValue{
		attribute.String(tracing.AttrContainerID, c.ID().String()),
		attribute.String(tracing.AttrContainerStatus, c.Status().String()),
	}
}

func (r *tracedRepository) GetOrCreate(ctx context.Context, name, template string, cfg domain.Config) (*domain.Container, error) {
	ctx, span := tracing.StartRepoSpan(ctx, r.tracer, "GetOrCreate", attribute.String(tracing.AttrContainerName, name))
	c, err := r.next.GetOrCreate(ctx, name, template, cfg)
	span.SetAttributes(containerAttrs(c)...)
	r.end(span, err)
	return c, err
}

func (r *tracedRepository) Ensure(ctx context.Context, name, template string, cfg domain.Config) (*domain.Container, bool, error) {
	ctx, span := tracing.StartRepoSpan(ctx, r.tracer, "Ensure", attribute.String(tracing.AttrContainerName, name))
	c, created, err := r.next.Ensure(ctx, name, template, cfg)
	span.SetAttributes(containerAttrs(c)...)
	span.SetAttributes(attribute.Bool(tracing.AttrContainerCreated, created))
	r.end(span, err)
	return c, created, err
}

func (r *tracedRepository) Create(ctx context.Context, name, template string, cfg domain.Config) (*domain.Container, error) {
	ctx, span := tracing.StartRepoSpan(ctx, r.tracer, "Create", attribute.String(tracing.AttrContainerName, name))
	c, err := r.next.Create(ctx, name, template, cfg)
	span.SetAttributes(containerAttrs(c)...)
	r.end(span, err)
	return c, err
}

func (r *tracedRepository) GetByName(ctx context.Context, name string) (*domain.Container, error) {
	ctx, span := tracing.StartRepoSpan(ctx, r.tracer, "GetByName", attribute.String(tracing.AttrContainerName, name))
	c, err := r.next.GetByName(ctx, name)
	span.SetAttributes(containerAttrs(c)...)
	r.end(span, err)
	return c, err
}

func (r *tracedRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Container, error) {
	ctx, span := tracing.StartRepoSpan(ctx, r.tracer, "GetByID", attribute.String(tracing.AttrContainerID, id.String()))
	c, err := r.next.GetByID(ctx, id)
	if c != nil {
		span.SetAttributes(attribute.String(tracing.AttrContainerName, c.Name()))
	}
	r.end(span, err)
	return c, err
}

func (r *tracedRepository) List(ctx context.Context) ([]*domain.Container, error) {
	ctx, span := tracing.StartRepoSpan(ctx, r.tracer, "List")
	list, err := r.next.List(ctx)
	span.SetAttributes(attribute.Int(tracing.AttrResultCount, len(list)))
	r.end(span, err)
	return list, err
}

func (r *tracedRepository) UpdateStatus(ctx context.Context, name string, status domain.Status) (int64, error) {
	ctx, span := tracing.StartRepoSpan(ctx, r.tracer, "UpdateStatus",
		attribute.String(tracing.AttrContainerName, name),
		attribute.String(tracing.AttrContainerStatus, status.String()),
	)
	n, err := r.next.UpdateStatus(ctx, name, status)
	span.SetAttributes(attribute.Int64(tracing.AttrRowsAffected, n))
	r.end(span, err)
	return n, err
}

func (r *tracedRepository) Delete(ctx context.Context, name string) (int64, error) {
	ctx, span := tracing.StartRepoSpan(ctx, r.tracer, "Delete", attribute.String(tracing.AttrContainerName, name))
	n, err := r.next.Delete(ctx, name)
	span.SetAttributes(attribute.Int64(tracing.AttrRowsAffected, n))
	r.end(span, err)
	return n, err
}

func (r *tracedRepository) Exists(ctx context.Context, name string) (bool, error) {
	ctx, span := tracing.StartRepoSpan(ctx, r.tracer, "Exists", attribute.String(tracing.AttrContainerName, name))
	ok, err := r.next.Exists(ctx, name)
	span.SetAttributes(attribute.Bool(tracing.AttrContainerExists, ok))
	r.end(span, err)
	return ok, err
}
