package commands

import (
	"context"
	"log/slog"
	"time"

	"parcelhub/internal/core/ports"
)

// MarkRTOCommandHandler processes manual return-to-origin requests.
type MarkRTOCommandHandler struct {
	uowFactory ShipmentUoWFactory
	audit      ports.AuditLogger
	events     ports.EventPublisher
	logger     *slog.Logger
}

// NewMarkRTOCommandHandler creates a handler for manual returns.
func NewMarkRTOCommandHandler(
	uowFactory ShipmentUoWFactory,
	audit ports.AuditLogger,
	events ports.EventPublisher,
	logger *slog.Logger,
) MarkRTOCommandHandler {
	return MarkRTOCommandHandler{
		uowFactory: uowFactory,
		audit:      audit,
		events:     events,
		logger:     logger,
	}
}

// Handle marks the shipment for return.
func (h *MarkRTOCommandHandler) Handle(ctx context.Context, cmd MarkRTOCommand) error {
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

	if err = sh.MarkRTO(cmd.RiderID(), cmd.Reason(), now); err != nil {
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
		Action:      "mark_rto",
		Before:      before,
		After:       sh.Status().String(),
		Description: cmd.Reason(),
	}); err != nil {
		h.logger.Warn("audit append failed", "awb", awb, "error", err)
	}

	for _, topic := range []string{"shipment." + awb, "merchant." + sh.MerchantID().String()} {
		if err = h.events.Publish(ctx, ports.Event{
			Topic: topic,
			Kind:  "shipment.rto_initiated",
			Payload: map[string]string{
				"awb":    awb,
				"status": sh.Status().String(),
				"reason": cmd.Reason(),
			},
		}); err != nil {
			h.logger.Warn("event publish failed", "topic", topic, "error", err)
		}
	}

	return nil
}
