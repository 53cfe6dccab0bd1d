package rmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

// AuditLogger streams audit entries to the trail consumer. Routing keys
// follow "audit.<entity_type>", and the publish timestamp is stamped here so
// the trail orders entries by when the change was recorded, not consumed.
type AuditLogger struct {
	client *Client
}

// NewAuditLogger creates a logger over an established client.
func NewAuditLogger(client *Client) (*AuditLogger, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	return &AuditLogger{client: client}, nil
}

type auditEnvelope struct {
	Actor       string    `json:"actor"`
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id"`
	Action      string    `json:"action"`
	Before      string    `json:"before,omitempty"`
	After       string    `json:"after,omitempty"`
	Description string    `json:"description,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Append publishes one audit entry.
func (l *AuditLogger) Append(ctx context.Context, entry ports.AuditEntry) error {
	if entry.Actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	if entry.EntityType == "" {
		return errs.NewValueIsRequiredError("entity type")
	}
	if entry.EntityID == "" {
		return errs.NewValueIsRequiredError("entity id")
	}
	if entry.Action == "" {
		return errs.NewValueIsRequiredError("action")
	}

	body, err := json.Marshal(auditEnvelope{
		Actor:       entry.Actor,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Action:      entry.Action,
		Before:      entry.Before,
		After:       entry.After,
		Description: entry.Description,
		RecordedAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	routingKey := "audit." + entry.EntityType

	err = l.client.channel.PublishWithContext(
		ctx,
		l.client.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish audit entry to %s: %w", routingKey, err)
	}

	return nil
}
