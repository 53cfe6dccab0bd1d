package manifest

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// Status represents the lifecycle state of a manifest.
//
// State transitions:
//
//	created ──> in_transit ──> received ──> closed
//
// created is transitioned to in_transit inside the constructor and is never
// observable externally; it stays in the enum so historical rows still parse.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Created is the nominal initial status. A manifest never rests here:
	// creation and dispatch happen in one operation.
	Created

	// InTransit indicates the batch is moving between the two hubs.
	InTransit

	// Received indicates the destination hub has run the receiving
	// reconciliation, with or without discrepancies.
	Received

	// Closed is the terminal state after the receiving hub retires the manifest.
	Closed
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Created:   "created",
		InTransit: "in_transit",
		Received:  "received",
		Closed:    "closed",
	}
}

// StatusFromString parses a storage/wire status name into a Status.
func StatusFromString(s string) (Status, error) {
	for status, name := range statusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid manifest status", s))
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
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid manifest status", s))
	}
	return nil
}

// TransitionTo validates and performs a status transition along
// created → in_transit → received → closed.
func (s Status) TransitionTo(target Status) (Status, error) {
	valid := map[Status]Status{
		InTransit: Created,
		Received:  InTransit,
		Closed:    Received,
	}

	if from, ok := valid[target]; !ok || s != from {
		return 0, errs.NewInvalidStateTransitionError("manifest", s.String(), target.String())
	}
	return target, nil
}
