package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrAssignPickupCommandIsNotConstructed = errors.New(
	"AssignPickupCommand must be created via NewAssignPickupCommand constructor",
)

// AssignPickupCommand assigns a pickup agent to an open pickup request and
// links the request to the shipment it will collect.
type AssignPickupCommand struct { //nolint:recvcheck //using for validation
	pickupID   kernel.UUID
	shipmentID kernel.UUID
	agentID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignPickupCommand creates a command to assign an agent to a pickup.
func NewAssignPickupCommand(pickupID, shipmentID, agentID kernel.UUID) (AssignPickupCommand, error) {
	cmd := AssignPickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(pickupID.Validate(), shipmentID.Validate(), agentID.Validate()); err != nil {
		return AssignPickupCommand{}, err
	}

	cmd.pickupID = pickupID
	cmd.shipmentID = shipmentID
	cmd.agentID = agentID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignPickupCommand) Validate() error {
	return c.guard.Validate(ErrAssignPickupCommandIsNotConstructed)
}

// PickupID returns the pickup request to assign.
func (c AssignPickupCommand) PickupID() kernel.UUID { return c.pickupID }

// ShipmentID returns the shipment the pickup will collect.
func (c AssignPickupCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// AgentID returns the assigned pickup agent.
func (c AssignPickupCommand) AgentID() kernel.UUID { return c.agentID }
