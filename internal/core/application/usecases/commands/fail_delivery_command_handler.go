package commands

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"parcelhub/internal/core/ports"
)

// FailDeliveryCommandHandler records failed delivery attempts. The attempt
// counter and any auto-escalation to return-to-origin commit as one write;
// there is never a persisted state with the counter at the threshold and the
// shipment still in failed_delivery. Escalations are audited under the
// system actor, not the rider who happened to make the last attempt.
type FailDeliveryCommandHandler struct {
	uowFactory ShipmentUoWFactory
	notifier   ports.NotificationSender
	audit      ports.AuditLogger
	events     ports.EventPublisher
	logger     *slog.Logger
}

// NewFailDeliveryCommandHandler creates a handler for failed attempts.
func NewFailDeliveryCommandHandler(
	uowFactory ShipmentUoWFactory,
	notifier ports.NotificationSender,
	audit ports.AuditLogger,
	events ports.EventPublisher,
	logger *slog.Logger,
) FailDeliveryCommandHandler {
	return FailDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		audit:      audit,
		events:     events,
		logger:     logger,
	}
}

// Handle records the attempt and reports whether it escalated the shipment
// to return-to-origin.
func (h *FailDeliveryCommandHandler) Handle(ctx context.Context, cmd FailDeliveryCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sh, err := uow.ShipmentRepository().GetByAWB(ctx, cmd.AWB())
	if err != nil {
		return false, err
	}

	before := sh.Status().String()

	escalated, err := sh.FailDelivery(cmd.RiderID(), cmd.Reason(), now)
	if err != nil {
		return false, err
	}

	if err = uow.ShipmentRepository().Update(ctx, sh); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	awb := sh.AWB().String()

	actor := cmd.RiderID().String()
	action := "fail_delivery"
	description := cmd.Reason()
	if escalated {
		actor = ports.SystemActor
		action = "auto_rto"
		description = sh.RTOReason()
	}
	if err = h.audit.Append(ctx, ports.AuditEntry{
		Actor:       actor,
		EntityType:  "shipment",
		EntityID:    sh.ID().String(),
		Action:      action,
		Before:      before,
		After:       sh.Status().String(),
		Description: description,
	}); err != nil {
		h.logger.Warn("audit append failed", "awb", awb, "error", err)
	}

	kind := "shipment.delivery_failed"
	if escalated {
		kind = "shipment.rto_initiated"
	}
	for _, topic := range []string{"shipment." + awb, "merchant." + sh.MerchantID().String()} {
		if err = h.events.Publish(ctx, ports.Event{
			Topic: topic,
			Kind:  kind,
			Payload: map[string]string{
				"awb":      awb,
				"status":   sh.Status().String(),
				"attempts": strconv.Itoa(sh.DeliveryAttempts()),
			},
		}); err != nil {
			h.logger.Warn("event publish failed", "topic", topic, "error", err)
		}
	}

	if escalated {
		if err = h.notifier.Send(ctx, ports.Notification{
			Recipient: sh.MerchantID().String(),
			Channel:   ports.ChannelEmail,
			Title:     "Shipment returning to origin",
			Body:      "Shipment " + awb + " exhausted its delivery attempts and is being returned.",
			Data:      map[string]string{"awb": awb},
		}); err != nil {
			h.logger.Warn("rto notification failed", "awb", awb, "error", err)
		}
	}

	return escalated, nil
}
