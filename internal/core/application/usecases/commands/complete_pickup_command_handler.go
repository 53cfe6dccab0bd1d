package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/pickup"
)

// CompletePickupCommandHandler marks a pickup completed and moves the
// shipment to picked_up in the same transaction. An assigned pickup that
// never recorded an explicit start is started implicitly: the completion
// scan at the sender's door proves the agent was in progress.
type CompletePickupCommandHandler struct {
	uowFactory PickupUoWFactory
}

// NewCompletePickupCommandHandler creates a handler for pickup completion.
func NewCompletePickupCommandHandler(uowFactory PickupUoWFactory) CompletePickupCommandHandler {
	return CompletePickupCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the completion.
func (h *CompletePickupCommandHandler) Handle(ctx context.Context, cmd CompletePickupCommand) error {
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

	if pk.Status() == pickup.Assigned {
		if err = pk.Start(); err != nil {
			return err
		}
	}

	if err = pk.Complete(now); err != nil {
		return err
	}

	if err = sh.MarkPickedUp(now); err != nil {
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
