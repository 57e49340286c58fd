package port

import "context"

// Handler consumes one published payload. Handlers must not block for long:
// the subscriber dispatches payloads sequentially.
type Handler func(ctx context.Context, payload string)

// Publisher emits a payload on a named channel. Delivery is fire-and-forget:
// subscribers that are not listening at publish time never see the payload.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload string) error
}

// Subscriber consumes payloads from a named channel. Subscribe blocks until
// ctx is canceled (returning nil) or the underlying channel fails (returning
// the transport error). Re-subscription policy is up to the caller.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string, h Handler) error
}

// Broker bundles both ends plus lifecycle.
type Broker interface {
	Publisher
	Subscriber
	Close() error
}
