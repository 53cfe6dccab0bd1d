package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"
)

var ErrCancelShipmentCommandIsNotConstructed = errors.New(
	"CancelShipmentCommand must be created via NewCancelShipmentCommand constructor",
)

// CancelShipmentCommand cancels a shipment that has not reached a terminal state.
type CancelShipmentCommand struct { //nolint:recvcheck //using for validation
	awb shipment.AWB

	guard guard.ConstructorGuard
}

// NewCancelShipmentCommand creates a command to cancel a shipment.
func NewCancelShipmentCommand(awb shipment.AWB) (CancelShipmentCommand, error) {
	cmd := CancelShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := awb.Validate(); err != nil {
		return CancelShipmentCommand{}, err
	}

	cmd.awb = awb
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelShipmentCommandIsNotConstructed)
}

// AWB returns the shipment's tracking number.
func (c CancelShipmentCommand) AWB() shipment.AWB { return c.awb }
