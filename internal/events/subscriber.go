package events

import "context"

// Subscriber receives events from the event bus.
type Subscriber interface {
	// Subscribe delivers raw event payloads on the returned channel until
	// ctx is done; the channel is closed afterwards.
	Subscribe(ctx context.Context, topic string) (<-chan []byte, error)
	Close() error
}
