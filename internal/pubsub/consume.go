package pubsub

import "context"

// Consume calls fn for every event received on ch until ctx is cancelled or
// ch is closed.
func Consume[T any](ctx context.Context, ch <-chan Event[T], fn func(Event[T])) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			fn(event)
		}
	}
}
