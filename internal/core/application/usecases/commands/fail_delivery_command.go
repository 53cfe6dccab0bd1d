package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrFailDeliveryCommandIsNotConstructed = errors.New(
		"FailDeliveryCommand must be created via NewFailDeliveryCommand constructor",
	)
	ErrFailureReasonIsRequired = errors.New("failure reason is required")
)

// FailDeliveryCommand records an unsuccessful delivery attempt.
type FailDeliveryCommand struct { //nolint:recvcheck //using for validation
	awb     shipment.AWB
	riderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewFailDeliveryCommand creates a command to record a failed attempt.
func NewFailDeliveryCommand(awb shipment.AWB, riderID kernel.UUID, reason string) (FailDeliveryCommand, error) {
	cmd := FailDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(awb.Validate(), riderID.Validate()); err != nil {
		return FailDeliveryCommand{}, err
	}
	if reason == "" {
		return FailDeliveryCommand{}, ErrFailureReasonIsRequired
	}

	cmd.awb = awb
	cmd.riderID = riderID
	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FailDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrFailDeliveryCommandIsNotConstructed)
}

// AWB returns the shipment's tracking number.
func (c FailDeliveryCommand) AWB() shipment.AWB { return c.awb }

// RiderID returns the rider who attempted delivery.
func (c FailDeliveryCommand) RiderID() kernel.UUID { return c.riderID }

// Reason returns the rider-supplied failure reason.
func (c FailDeliveryCommand) Reason() string { return c.reason }
