package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/hyperstore/internal/containers/domain"
	"github.com/zjrosen/hyperstore/internal/pubsub"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func container(name string, status domain.Status) *domain.Container {
	return domain.ReconstituteContainer(uuid.New(), name, status, "alpine", "", testNow, testNow, domain.Config{})
}

func recv(t *testing.T, ch <-chan pubsub.Event[ContainerEvent]) pubsub.Event[ContainerEvent] {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(time.Second):
		require.FailNow(t, "timeout waiting for event")
		return pubsub.Event[ContainerEvent]{}
	}
}

func requireNoEvent(t *testing.T, ch <-chan pubsub.Event[ContainerEvent]) {
	t.Helper()
	select {
	case event := <-ch:
		require.Failf(t, "unexpected event", "%s %s", event.Type, event.Payload.Name)
	default:
	}
}

func traceSpanValid(ctx context.Context) bool {
	return trace.SpanContextFromContext(ctx).IsValid()
}
