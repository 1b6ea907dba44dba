package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys for container storage spans.
const (
	AttrContainerName    = "container.name"
	AttrContainerID      = "container.id"
	AttrContainerStatus  = "container.status"
	AttrContainerCreated = "container.created"
	AttrContainerExists  = "container.exists"
	AttrRowsAffected     = "db.rows_affected"
	AttrResultCount      = "db.result_count"
	AttrErrorKind        = "error.kind"
)

// SpanPrefixRepo prefixes repository span names, e.g. "repo.GetOrCreate".
const SpanPrefixRepo = "repo."

// StartRepoSpan starts an internal span for a repository operation.
func StartRepoSpan(ctx context.Context, tracer trace.Tracer, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, SpanPrefixRepo+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan records the outcome of an operation and ends span. kind labels
// the error class when err is non-nil.
func EndSpan(span trace.Span, err error, kind string) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorKind, kind))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
