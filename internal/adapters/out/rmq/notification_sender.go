package rmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

// NotificationSender hands notifications to the delivery workers through the
// topic exchange. Routing keys follow "notify.<channel>", so the SMS gateway
// binds "notify.sms" without seeing push traffic.
type NotificationSender struct {
	client *Client
}

// NewNotificationSender creates a sender over an established client.
func NewNotificationSender(client *Client) (*NotificationSender, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	return &NotificationSender{client: client}, nil
}

type notificationEnvelope struct {
	Recipient string            `json:"recipient"`
	Channel   string            `json:"channel"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
}

// Send queues one notification for delivery. The caller is released as soon
// as the broker accepts the message; actual delivery happens downstream.
func (s *NotificationSender) Send(ctx context.Context, n ports.Notification) error {
	if n.Recipient == "" {
		return errs.NewValueIsRequiredError("recipient")
	}
	if n.Channel == "" {
		return errs.NewValueIsRequiredError("channel")
	}

	body, err := json.Marshal(notificationEnvelope{
		Recipient: n.Recipient,
		Channel:   string(n.Channel),
		Title:     n.Title,
		Body:      n.Body,
		Data:      n.Data,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	routingKey := "notify." + string(n.Channel)

	err = s.client.channel.PublishWithContext(
		ctx,
		s.client.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish notification to %s: %w", routingKey, err)
	}

	return nil
}
