package rmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

// EventPublisher broadcasts domain events on the topic exchange. The event's
// topic doubles as the routing key, so a subscriber binding "shipment.*"
// sees every shipment transition while "merchant.<id>" follows one fleet.
type EventPublisher struct {
	client *Client
}

// NewEventPublisher creates a publisher over an established client.
func NewEventPublisher(client *Client) (*EventPublisher, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	return &EventPublisher{client: client}, nil
}

type eventEnvelope struct {
	Kind    string            `json:"kind"`
	Topic   string            `json:"topic"`
	Payload map[string]string `json:"payload,omitempty"`
}

// Publish sends one event. Delivery is best-effort; callers log failures and
// move on.
func (p *EventPublisher) Publish(ctx context.Context, event ports.Event) error {
	if event.Topic == "" {
		return errs.NewValueIsRequiredError("event topic")
	}
	if event.Kind == "" {
		return errs.NewValueIsRequiredError("event kind")
	}

	body, err := json.Marshal(eventEnvelope{
		Kind:    event.Kind,
		Topic:   event.Topic,
		Payload: event.Payload,
	})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Kind, err)
	}

	err = p.client.channel.PublishWithContext(
		ctx,
		p.client.exchange,
		event.Topic,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event %s to %s: %w", event.Kind, event.Topic, err)
	}

	return nil
}
