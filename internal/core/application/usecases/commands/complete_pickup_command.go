package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrCompletePickupCommandIsNotConstructed = errors.New(
	"CompletePickupCommand must be created via NewCompletePickupCommand constructor",
)

// CompletePickupCommand records that a pickup agent collected the shipment
// from the sender.
type CompletePickupCommand struct { //nolint:recvcheck //using for validation
	pickupID   kernel.UUID
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompletePickupCommand creates a command to complete a pickup.
func NewCompletePickupCommand(pickupID, shipmentID kernel.UUID) (CompletePickupCommand, error) {
	cmd := CompletePickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(pickupID.Validate(), shipmentID.Validate()); err != nil {
		return CompletePickupCommand{}, err
	}

	cmd.pickupID = pickupID
	cmd.shipmentID = shipmentID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePickupCommand) Validate() error {
	return c.guard.Validate(ErrCompletePickupCommandIsNotConstructed)
}

// PickupID returns the pickup request being completed.
func (c CompletePickupCommand) PickupID() kernel.UUID { return c.pickupID }

// ShipmentID returns the collected shipment.
func (c CompletePickupCommand) ShipmentID() kernel.UUID { return c.shipmentID }
