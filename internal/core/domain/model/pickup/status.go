package pickup

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// Status represents the lifecycle state of a pickup request.
//
// State transitions:
//
//	pending ──> assigned ──> in_progress ──> completed
//	   │            │             │
//	   └────────────┴─────────────┴──> cancelled
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status: the merchant requested a pickup but no
	// agent holds it yet.
	Pending

	// Assigned indicates an agent has been assigned to the request.
	Assigned

	// InProgress indicates the agent is collecting parcels at the merchant.
	InProgress

	// Completed is the successful terminal state; member shipments have been
	// picked up.
	Completed

	// Cancelled is the terminal state of an aborted request.
	Cancelled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Assigned:   "assigned",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// StatusFromString parses a storage/wire status name into a Status.
func StatusFromString(s string) (Status, error) {
	for status, name := range statusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid pickup status", s))
}

// String returns the storage/wire name of the status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Status value is a defined, non-Unknown status.
func (s Status) Validate() error {
	if _, ok := statusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid pickup status", s))
	}
	return nil
}

// IsTerminal reports whether no further status mutation is permitted.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// TransitionTo validates and performs a status transition.
func (s Status) TransitionTo(target Status) (Status, error) {
	allowed := map[Status][]Status{
		Assigned:   {Pending},
		InProgress: {Assigned},
		Completed:  {InProgress},
		Cancelled:  {Pending, Assigned, InProgress},
	}

	for _, from := range allowed[target] {
		if s == from {
			return target, nil
		}
	}
	return 0, errs.NewInvalidStateTransitionError("pickup", s.String(), target.String())
}
