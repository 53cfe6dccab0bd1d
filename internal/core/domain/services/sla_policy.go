package services

import (
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"
)

// ViolationKind identifies which service-level rule a shipment breached.
type ViolationKind int

const (
	ViolationUnknown ViolationKind = iota
	// PickupOverdue fires when a shipment sits in pending past the pickup threshold.
	PickupOverdue
	// DeliveryOverdue fires when a shipment in the delivery leg exceeds the
	// end-to-end delivery threshold since creation.
	DeliveryOverdue
	// InTransitStale fires when an in-transit shipment has not been scanned
	// or otherwise updated within the staleness threshold.
	InTransitStale
)

func violationStrings() map[ViolationKind]string {
	return map[ViolationKind]string{
		PickupOverdue:   "pickup_overdue",
		DeliveryOverdue: "delivery_overdue",
		InTransitStale:  "in_transit_stale",
	}
}

// String returns the wire name of the violation kind.
func (k ViolationKind) String() string {
	if s, ok := violationStrings()[k]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// Validate checks the kind is one of the known rule identifiers.
func (k ViolationKind) Validate() error {
	if _, ok := violationStrings()[k]; !ok {
		return errs.NewValueIsInvalidError("violation kind")
	}
	return nil
}

// Violation is a single breached rule for a single shipment.
type Violation struct {
	Kind       ViolationKind
	ShipmentID string
	AWB        string
	MerchantID string
	// Overdue is how far past the threshold the shipment is.
	Overdue time.Duration
}

// SLAPolicy evaluates the three service-level rules against shipments.
// Evaluation is pure: it reads only the shipment's own timestamps and the
// supplied clock, never the deduplication cache.
type SLAPolicy struct {
	pickupThreshold   time.Duration
	deliveryThreshold time.Duration
	staleThreshold    time.Duration
}

// NewSLAPolicy creates a policy with the given thresholds. All thresholds
// must be positive.
func NewSLAPolicy(pickupThreshold, deliveryThreshold, staleThreshold time.Duration) (SLAPolicy, error) {
	if pickupThreshold <= 0 {
		return SLAPolicy{}, errs.NewValueIsRequiredError("pickup threshold")
	}
	if deliveryThreshold <= 0 {
		return SLAPolicy{}, errs.NewValueIsRequiredError("delivery threshold")
	}
	if staleThreshold <= 0 {
		return SLAPolicy{}, errs.NewValueIsRequiredError("stale threshold")
	}

	return SLAPolicy{
		pickupThreshold:   pickupThreshold,
		deliveryThreshold: deliveryThreshold,
		staleThreshold:    staleThreshold,
	}, nil
}

// PickupThreshold returns the maximum age a pending shipment may reach.
func (p SLAPolicy) PickupThreshold() time.Duration { return p.pickupThreshold }

// DeliveryThreshold returns the maximum age a shipment in the delivery leg may reach.
func (p SLAPolicy) DeliveryThreshold() time.Duration { return p.deliveryThreshold }

// StaleThreshold returns the maximum silence allowed for an in-transit shipment.
func (p SLAPolicy) StaleThreshold() time.Duration { return p.staleThreshold }

// Evaluate runs all three rules against one shipment and returns every
// breached rule. A shipment can breach the delivery and staleness rules
// at the same time.
func (p SLAPolicy) Evaluate(sh *shipment.Shipment, now time.Time) ([]Violation, error) {
	if err := sh.Validate(); err != nil {
		return nil, err
	}

	var out []Violation
	appendViolation := func(kind ViolationKind, overdue time.Duration) {
		out = append(out, Violation{
			Kind:       kind,
			ShipmentID: sh.ID().String(),
			AWB:        sh.AWB().String(),
			MerchantID: sh.MerchantID().String(),
			Overdue:    overdue,
		})
	}

	age := now.Sub(sh.CreatedAt())

	if sh.Status() == shipment.Pending && age > p.pickupThreshold {
		appendViolation(PickupOverdue, age-p.pickupThreshold)
	}

	switch sh.Status() {
	case shipment.PickedUp, shipment.InTransit, shipment.OutForDelivery:
		if age > p.deliveryThreshold {
			appendViolation(DeliveryOverdue, age-p.deliveryThreshold)
		}
	}

	if sh.Status() == shipment.InTransit {
		if silence := now.Sub(sh.UpdatedAt()); silence > p.staleThreshold {
			appendViolation(InTransitStale, silence-p.staleThreshold)
		}
	}

	return out, nil
}

// MarkerKey returns the deduplication cache key for one shipment and rule.
func (p SLAPolicy) MarkerKey(kind ViolationKind, shipmentID string) string {
	return fmt.Sprintf("sla:%s:%s", kind, shipmentID)
}

// MarkerTTL returns the suppression window for one rule. The pickup rule
// keeps its marker for a full day; delivery and staleness markers expire
// sooner so a shipment that resolves and re-violates can alert again.
func (p SLAPolicy) MarkerTTL(kind ViolationKind) time.Duration {
	if kind == PickupOverdue {
		return 24 * time.Hour
	}
	return 12 * time.Hour
}
