package services

import (
	"fmt"
	"sort"
	"time"

	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/domain/model/pickup"
	"parcelhub/internal/core/domain/model/shipment"
)

// TimelineEvent is one semantic milestone in a shipment's history.
type TimelineEvent struct {
	Code        string
	Description string
	// Approximate marks events whose timestamp is inferred rather than recorded.
	Approximate bool
	At          time.Time
}

// ETA is the estimated remaining delivery time shown to callers.
// Available is false for delivered and returned shipments.
type ETA struct {
	Available bool
	Text      string
}

// TimelineInput bundles everything the builder may draw events from.
// All fields except Shipment are optional.
type TimelineInput struct {
	Shipment *shipment.Shipment
	Pickup   *pickup.Pickup
	Manifest *manifest.Manifest
	// FirstRiderPing is the earliest rider-location sample tied to the shipment.
	FirstRiderPing *time.Time
}

// TimelineBuilder reconstructs a shipment's tracking history from the entity
// rows themselves. There is no append-only event log, so several timestamps
// are approximations: hub arrival is offset from pickup completion, and
// failed-delivery times are back-computed from the attempt counter.
type TimelineBuilder struct {
	hubArrivalOffset time.Duration
	attemptInterval  time.Duration
}

// NewTimelineBuilder creates a builder with the standard offsets.
func NewTimelineBuilder() TimelineBuilder {
	return TimelineBuilder{
		hubArrivalOffset: 2 * time.Hour,
		attemptInterval:  4 * time.Hour,
	}
}

// Build returns the shipment's milestones sorted by timestamp ascending.
func (b TimelineBuilder) Build(in TimelineInput, now time.Time) ([]TimelineEvent, error) {
	sh := in.Shipment
	if err := sh.Validate(); err != nil {
		return nil, err
	}

	events := []TimelineEvent{{
		Code:        "created",
		Description: "Shipment booked",
		At:          sh.CreatedAt(),
	}}

	var pickedUpAt *time.Time
	if in.Pickup != nil && in.Pickup.Validate() == nil {
		p := in.Pickup
		if p.Status() != pickup.Pending && p.Status() != pickup.Cancelled {
			events = append(events, TimelineEvent{
				Code:        "pickup_assigned",
				Description: "Pickup agent assigned",
				At:          p.ScheduledDate(),
				Approximate: true,
			})
		}
		if p.CompletedAt() != nil {
			pickedUpAt = p.CompletedAt()
			events = append(events, TimelineEvent{
				Code:        "picked_up",
				Description: "Picked up from sender",
				At:          *p.CompletedAt(),
			})
		}
	}

	// No hub-arrival timestamp is persisted; approximate it from the pickup.
	if pickedUpAt != nil && sh.CurrentHub() != nil {
		events = append(events, TimelineEvent{
			Code:        "hub_arrival",
			Description: fmt.Sprintf("Arrived at hub %s", sh.CurrentHub()),
			At:          pickedUpAt.Add(b.hubArrivalOffset),
			Approximate: true,
		})
	}

	if in.Manifest != nil && in.Manifest.Validate() == nil {
		m := in.Manifest
		events = append(events, TimelineEvent{
			Code: "dispatched",
			Description: fmt.Sprintf("Dispatched from %s to %s on %s",
				m.OriginHub(), m.DestinationHub(), m.Number()),
			At: m.DispatchDate(),
		})
		if m.ReceivedDate() != nil {
			events = append(events, TimelineEvent{
				Code:        "manifest_received",
				Description: fmt.Sprintf("Received at hub %s", m.DestinationHub()),
				At:          *m.ReceivedDate(),
			})
		}
	}

	if in.FirstRiderPing != nil {
		events = append(events, TimelineEvent{
			Code:        "out_for_delivery",
			Description: "Out for delivery",
			At:          *in.FirstRiderPing,
			Approximate: true,
		})
	}

	for i := 1; i <= sh.DeliveryAttempts(); i++ {
		events = append(events, TimelineEvent{
			Code:        "failed_delivery",
			Description: fmt.Sprintf("Delivery attempt %d failed", i),
			At:          now.Add(-time.Duration(sh.DeliveryAttempts()-i+1) * b.attemptInterval),
			Approximate: true,
		})
	}

	if sh.ActualDeliveryDate() != nil {
		events = append(events, TimelineEvent{
			Code:        "delivered",
			Description: "Delivered",
			At:          *sh.ActualDeliveryDate(),
		})
	}

	if sh.IsRTO() {
		events = append(events, TimelineEvent{
			Code:        "rto_initiated",
			Description: fmt.Sprintf("Return to origin initiated: %s", sh.RTOReason()),
			At:          sh.UpdatedAt(),
			Approximate: true,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].At.Before(events[j].At)
	})

	return events, nil
}

// EstimateDelivery computes the caller-facing ETA by priority: delivered or
// returned shipments have none; a future expected date is expressed as
// remaining hours or days; otherwise a static range keyed by status.
func (b TimelineBuilder) EstimateDelivery(sh *shipment.Shipment, now time.Time) (ETA, error) {
	if err := sh.Validate(); err != nil {
		return ETA{}, err
	}

	if sh.Status() == shipment.Delivered || sh.IsRTO() {
		return ETA{}, nil
	}

	if expected := sh.ExpectedDeliveryDate(); expected != nil && expected.After(now) {
		remaining := expected.Sub(now)
		if remaining <= 24*time.Hour {
			hours := int(remaining.Round(time.Hour) / time.Hour)
			if hours < 1 {
				hours = 1
			}
			return ETA{Available: true, Text: fmt.Sprintf("within %d hours", hours)}, nil
		}
		days := int(remaining / (24 * time.Hour))
		if remaining%(24*time.Hour) != 0 {
			days++
		}
		return ETA{Available: true, Text: fmt.Sprintf("in %d days", days)}, nil
	}

	return ETA{Available: true, Text: staticEstimate(sh.Status())}, nil
}

func staticEstimate(status shipment.Status) string {
	switch status {
	case shipment.Pending, shipment.PickupAssigned:
		return "3-5 days"
	case shipment.PickedUp, shipment.InHub, shipment.InTransit:
		return "2-4 days"
	case shipment.OutForDelivery:
		return "by end of day"
	case shipment.FailedDelivery:
		return "1-2 days"
	default:
		return "2-5 days"
	}
}
