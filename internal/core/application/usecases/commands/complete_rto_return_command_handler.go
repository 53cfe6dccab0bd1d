package commands

import (
	"context"
	"time"
)

// CompleteRTOReturnCommandHandler closes return legs.
type CompleteRTOReturnCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewCompleteRTOReturnCommandHandler creates a handler for return closure.
func NewCompleteRTOReturnCommandHandler(uowFactory ShipmentUoWFactory) CompleteRTOReturnCommandHandler {
	return CompleteRTOReturnCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks the shipment returned to its sender.
func (h *CompleteRTOReturnCommandHandler) Handle(ctx context.Context, cmd CompleteRTOReturnCommand) error {
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

	if err = sh.CompleteRTOReturn(time.Now().UTC()); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, sh); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
