package commands

import (
	"context"

	"parcelhub/internal/core/domain/model/riderloc"
)

// RecordRiderLocationCommandHandler appends rider GPS pings.
type RecordRiderLocationCommandHandler struct {
	uowFactory RiderLocationUoWFactory
}

// NewRecordRiderLocationCommandHandler creates a handler for ping writes.
func NewRecordRiderLocationCommandHandler(uowFactory RiderLocationUoWFactory) RecordRiderLocationCommandHandler {
	return RecordRiderLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle appends the ping.
func (h *RecordRiderLocationCommandHandler) Handle(ctx context.Context, cmd RecordRiderLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ping, err := riderloc.NewRiderLocation(
		cmd.PingID(), cmd.RiderID(), cmd.ShipmentID(),
		cmd.Point(), cmd.RecordedAt(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RiderLocationRepository().Add(ctx, ping); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
