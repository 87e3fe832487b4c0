package broadcast

import (
	"context"
	"encoding/json"

	"tableside/internal/connections/rabbitmq"
	"tableside/internal/logger"
)

// Relay consumes the events queue and republishes into the local Hub,
// so websocket clients of this process receive events published by any
// process sharing the broker.
type Relay struct {
	client *rabbitmq.Client
	hub    *Hub
	lg     *logger.Logger
}

func NewRelay(client *rabbitmq.Client, hub *Hub, lg *logger.Logger) *Relay {
	return &Relay{client: client, hub: hub, lg: lg}
}

func (r *Relay) Run(ctx context.Context) error {
	deliveries, err := r.client.Consume(rabbitmq.EventsQueue, "event-relay")
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			var ev Event
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				r.lg.Error("event_decode_failed", err, map[string]any{"routing_key": d.RoutingKey})
				_ = d.Nack(false, false)
				continue
			}
			_ = r.hub.Publish(ctx, ev.Topic, ev.Name, ev.Payload)
			_ = d.Ack(false)
		}
	}
}
