package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrMarkRTOCommandIsNotConstructed = errors.New(
		"MarkRTOCommand must be created via NewMarkRTOCommand constructor",
	)
	ErrRTOReasonIsRequired = errors.New("rto reason is required")
)

// MarkRTOCommand manually sends a shipment back to its origin, bypassing
// the attempt counter. Only the assigned rider may trigger it.
type MarkRTOCommand struct { //nolint:recvcheck //using for validation
	awb     shipment.AWB
	riderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewMarkRTOCommand creates a command to initiate a manual return.
func NewMarkRTOCommand(awb shipment.AWB, riderID kernel.UUID, reason string) (MarkRTOCommand, error) {
	cmd := MarkRTOCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(awb.Validate(), riderID.Validate()); err != nil {
		return MarkRTOCommand{}, err
	}
	if reason == "" {
		return MarkRTOCommand{}, ErrRTOReasonIsRequired
	}

	cmd.awb = awb
	cmd.riderID = riderID
	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkRTOCommand) Validate() error {
	return c.guard.Validate(ErrMarkRTOCommandIsNotConstructed)
}

// AWB returns the shipment's tracking number.
func (c MarkRTOCommand) AWB() shipment.AWB { return c.awb }

// RiderID returns the requesting rider.
func (c MarkRTOCommand) RiderID() kernel.UUID { return c.riderID }

// Reason returns why the shipment is going back.
func (c MarkRTOCommand) Reason() string { return c.reason }
