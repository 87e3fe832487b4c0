// Package broadcast fans lifecycle events out to real-time subscribers.
// Delivery is best-effort, at-most-once per currently-connected
// subscriber; clients that reconnect reconcile by polling the REST
// listing endpoints.
package broadcast

import "context"

// Event is the wire shape delivered to subscribers.
type Event struct {
	Topic   string `json:"topic"`
	Name    string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// Publisher is invoked by the lifecycle engine only after the
// triggering mutation has committed.
type Publisher interface {
	Publish(ctx context.Context, topic, name string, payload any) error
}

// Multi publishes to every underlying publisher, returning the first
// error after all have been attempted.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, topic, name string, payload any) error {
	var first error
	for _, p := range m {
		if err := p.Publish(ctx, topic, name, payload); err != nil && first == nil {
			first = err
		}
	}
	return first
}
