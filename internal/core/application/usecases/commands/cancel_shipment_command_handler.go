package commands

import (
	"context"
	"time"
)

// CancelShipmentCommandHandler cancels shipments.
type CancelShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewCancelShipmentCommandHandler creates a handler for cancellation.
func NewCancelShipmentCommandHandler(uowFactory ShipmentUoWFactory) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle cancels the shipment. Terminal shipments cannot be cancelled.
func (h *CancelShipmentCommandHandler) Handle(ctx context.Context, cmd CancelShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sh, err := uow.ShipmentRepository().GetByAWB(ctx, cmd.AWB())
	if err != nil {
		return err
	}

	if err = sh.Cancel(time.Now().UTC()); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, sh); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
