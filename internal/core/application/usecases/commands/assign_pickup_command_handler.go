package commands

import (
	"context"
	"time"
)

// AssignPickupCommandHandler assigns an agent to a pickup request and moves
// the linked shipment to pickup_assigned within the same transaction.
type AssignPickupCommandHandler struct {
	uowFactory PickupUoWFactory
}

// NewAssignPickupCommandHandler creates a handler for pickup assignment.
func NewAssignPickupCommandHandler(uowFactory PickupUoWFactory) AssignPickupCommandHandler {
	return AssignPickupCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment.
func (h *AssignPickupCommandHandler) Handle(ctx context.Context, cmd AssignPickupCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pk, err := uow.PickupRepository().Get(ctx, cmd.PickupID())
	if err != nil {
		return err
	}

	sh, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = pk.Assign(cmd.AgentID()); err != nil {
		return err
	}

	if err = sh.AssignPickup(cmd.PickupID(), now); err != nil {
		return err
	}

	if err = uow.PickupRepository().Update(ctx, pk); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, sh); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
