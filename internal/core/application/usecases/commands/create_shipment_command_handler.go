package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/pickup"
	"parcelhub/internal/core/domain/model/shipment"
)

// CreateShipmentCommandHandler books new shipments. The shipment row and its
// pickup request are written in one transaction so a booking can never exist
// without a pickup to move it.
type CreateShipmentCommandHandler struct {
	uowFactory PickupUoWFactory
}

// NewCreateShipmentCommandHandler creates a handler for shipment booking.
func NewCreateShipmentCommandHandler(uowFactory PickupUoWFactory) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle books the shipment and opens its pickup request.
// Returns the generated tracking number on success.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (shipment.AWB, error) {
	if err := cmd.Validate(); err != nil {
		return shipment.AWB{}, err
	}

	now := time.Now().UTC()

	sh, err := shipment.NewShipment(
		cmd.ShipmentID(), cmd.MerchantID(),
		cmd.ReceiverName(), cmd.ReceiverPhone(), cmd.ReceiverAddress(),
		cmd.PaymentMethod(), cmd.CODAmount(),
		cmd.ExpectedDeliveryDate(), now,
	)
	if err != nil {
		return shipment.AWB{}, err
	}

	pk, err := pickup.NewPickup(cmd.PickupID(), cmd.MerchantID(), cmd.PickupScheduledDate())
	if err != nil {
		return shipment.AWB{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return shipment.AWB{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, sh); err != nil {
		return shipment.AWB{}, err
	}

	if err = uow.PickupRepository().Add(ctx, pk); err != nil {
		return shipment.AWB{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return shipment.AWB{}, err
	}

	return sh.AWB(), nil
}
