package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"tableside/internal/connections/rabbitmq"
)

// AMQP publishes events to the durable topic exchange so other
// processes (and the in-process relay) can fan them out.
type AMQP struct {
	client *rabbitmq.Client
}

func NewAMQP(client *rabbitmq.Client) *AMQP {
	return &AMQP{client: client}
}

func (p *AMQP) Publish(ctx context.Context, topic, name string, payload any) error {
	body, err := json.Marshal(Event{Topic: topic, Name: name, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	key := name + "." + topic
	if err := p.client.Publish(ctx, rabbitmq.EventsExchange, key, body); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
