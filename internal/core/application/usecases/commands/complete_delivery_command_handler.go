package commands

import (
	"context"
	"log/slog"
	"time"

	"parcelhub/internal/core/ports"
)

// CompleteDeliveryCommandHandler records successful handovers. The state
// transition commits first; audit, notification and broadcast follow as
// side channels whose failures are logged and swallowed.
type CompleteDeliveryCommandHandler struct {
	uowFactory ShipmentUoWFactory
	notifier   ports.NotificationSender
	audit      ports.AuditLogger
	events     ports.EventPublisher
	logger     *slog.Logger
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory ShipmentUoWFactory,
	notifier ports.NotificationSender,
	audit ports.AuditLogger,
	events ports.EventPublisher,
	logger *slog.Logger,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		audit:      audit,
		events:     events,
		logger:     logger,
	}
}

// Handle completes the delivery. The aggregate enforces OTP equality and,
// for COD, exact collected-amount match.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	sh, err := uow.ShipmentRepository().GetByAWB(ctx, cmd.AWB())
	if err != nil {
		return err
	}

	before := sh.Status().String()

	if err = sh.CompleteDelivery(
		cmd.RiderID(), cmd.OTP(), cmd.CollectedAmount(),
		cmd.ReceivedBy(), cmd.PODNote(), now,
	); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, sh); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	awb := sh.AWB().String()

	if err = h.audit.Append(ctx, ports.AuditEntry{
		Actor:       cmd.RiderID().String(),
		EntityType:  "shipment",
		EntityID:    sh.ID().String(),
		Action:      "complete_delivery",
		Before:      before,
		After:       sh.Status().String(),
		Description: "delivered to " + cmd.ReceivedBy(),
	}); err != nil {
		h.logger.Warn("audit append failed", "awb", awb, "error", err)
	}

	if err = h.notifier.Send(ctx, ports.Notification{
		Recipient: sh.ReceiverPhone(),
		Channel:   ports.ChannelSMS,
		Title:     "Parcel delivered",
		Body:      "Your parcel " + awb + " was delivered.",
		Data:      map[string]string{"awb": awb},
	}); err != nil {
		h.logger.Warn("delivery notification failed", "awb", awb, "error", err)
	}

	for _, topic := range []string{"shipment." + awb, "merchant." + sh.MerchantID().String()} {
		if err = h.events.Publish(ctx, ports.Event{
			Topic: topic,
			Kind:  "shipment.delivered",
			Payload: map[string]string{
				"awb":    awb,
				"status": sh.Status().String(),
			},
		}); err != nil {
			h.logger.Warn("event publish failed", "topic", topic, "error", err)
		}
	}

	return nil
}
