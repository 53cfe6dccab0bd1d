package shipment

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
// It implements a state machine with defined transitions so shipments always
// follow the physical movement of the parcel:
//
//	pending → pickup_assigned → picked_up → in_hub ⇄ in_transit
//	                                          │
//	                                          └─> out_for_delivery ──> delivered
//	                                                    │
//	                                                    └─> failed_delivery
//	                                                              │
//	             rto_initiated ──> rto_in_transit ──> rto_delivered
//
// in_hub and in_transit cycle as the parcel hops across hubs. cancelled is
// reachable from every non-terminal state. delivered, rto_delivered, and
// cancelled are terminal: no further status mutation is permitted.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the shipment is booked but not yet
	// handed to a pickup agent.
	Pending

	// PickupAssigned indicates a pickup request covering this shipment has
	// been assigned to an agent.
	PickupAssigned

	// PickedUp indicates the parcel left the merchant with the pickup agent.
	PickedUp

	// InHub indicates the parcel is physically inside a hub.
	InHub

	// InTransit indicates the parcel is moving between two hubs.
	InTransit

	// OutForDelivery indicates a rider holds the parcel for final delivery.
	OutForDelivery

	// Delivered is the successful terminal state.
	Delivered

	// FailedDelivery indicates the last delivery attempt failed; the parcel
	// is back with the rider or hub awaiting another attempt.
	FailedDelivery

	// RTOInitiated indicates the shipment is flagged for return to origin.
	RTOInitiated

	// RTOInTransit indicates the return parcel is moving back through the network.
	RTOInTransit

	// RTODelivered is the terminal state of a completed return.
	RTODelivered

	// Cancelled is the terminal state of an aborted shipment.
	Cancelled
)

// statusStrings maps every Status to its wire/storage name.
func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		PickupAssigned: "pickup_assigned",
		PickedUp:       "picked_up",
		InHub:          "in_hub",
		InTransit:      "in_transit",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		FailedDelivery: "failed_delivery",
		RTOInitiated:   "rto_initiated",
		RTOInTransit:   "rto_in_transit",
		RTODelivered:   "rto_delivered",
		Cancelled:      "cancelled",
	}
}

// allowedPredecessors defines the state machine: for each target status, the
// set of statuses a shipment may currently hold for the transition to be
// legal. Cancelled is handled separately (any non-terminal predecessor).
func allowedPredecessors() map[Status][]Status {
	return map[Status][]Status{
		PickupAssigned: {Pending},
		PickedUp:       {PickupAssigned},
		// InHub allows a self-transition: the same parcel is inbound-scanned
		// again at every hub it passes through.
		InHub:          {PickedUp, InTransit, InHub},
		InTransit:      {InHub},
		OutForDelivery: {InHub},
		Delivered:      {OutForDelivery},
		// FailedDelivery allows a self-transition: every further failed
		// attempt is recorded against the same status until the counter
		// escalates to RTO.
		FailedDelivery: {OutForDelivery, FailedDelivery},
		RTOInitiated:   {OutForDelivery, FailedDelivery},
		RTOInTransit:   {RTOInitiated},
		RTODelivered:   {RTOInTransit},
	}
}

// StatusFromString parses a storage/wire status name into a Status.
// Returns an error for unrecognized names and for "unknown".
func StatusFromString(s string) (Status, error) {
	for status, name := range statusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid shipment status", s))
}

// String returns the storage/wire name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Status value is a defined, non-Unknown status.
func (s Status) Validate() error {
	if _, ok := statusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid shipment status", s))
	}
	return nil
}

// IsTerminal reports whether no further status mutation is permitted.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == RTODelivered || s == Cancelled
}

// IsRTO reports whether the status belongs to the return-to-origin leg.
func (s Status) IsRTO() bool {
	return s == RTOInitiated || s == RTOInTransit || s == RTODelivered
}

// CanTransitionTo reports whether the state machine permits moving from the
// current status to target.
func (s Status) CanTransitionTo(target Status) bool {
	if target == Cancelled {
		return !s.IsTerminal() && s != Unknown
	}

	for _, from := range allowedPredecessors()[target] {
		if s == from {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a status transition.
//
// Returns:
//   - (target, nil) when the transition is legal
//   - (0, *errs.InvalidStateTransitionError) naming current and requested
//     status otherwise; the caller must not retry automatically, since an
//     illegal transition is a caller bug or a lost race, not a transient fault
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return 0, errs.NewInvalidStateTransitionError("shipment", s.String(), target.String())
	}
	return target, nil
}
