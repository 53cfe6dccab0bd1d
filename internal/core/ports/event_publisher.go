package ports

import (
	"context"
)

// Event is a broadcast fact for live subscribers, routed by topic.
// Topics follow "shipment.<awb>" and "merchant.<id>" conventions so a
// subscriber can watch one shipment or a merchant's whole fleet.
type Event struct {
	Topic   string
	Kind    string
	Payload map[string]string
}

// EventPublisher fans events out to live subscribers. Publishing is
// best-effort; a failed publish is logged and never fails the state
// transition that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
