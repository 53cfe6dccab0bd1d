package commands

import (
	"context"
	"log/slog"
	"time"

	"parcelhub/internal/core/ports"
)

// GenerateOtpCommandHandler issues delivery codes. The committed code is
// texted to the receiver's phone; a failed send is logged and swallowed so
// the rider can retry generation without the shipment being stuck.
type GenerateOtpCommandHandler struct {
	uowFactory ShipmentUoWFactory
	notifier   ports.NotificationSender
	logger     *slog.Logger
}

// NewGenerateOtpCommandHandler creates a handler for delivery code issuance.
func NewGenerateOtpCommandHandler(
	uowFactory ShipmentUoWFactory,
	notifier ports.NotificationSender,
	logger *slog.Logger,
) GenerateOtpCommandHandler {
	return GenerateOtpCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle issues the code and notifies the receiver.
func (h *GenerateOtpCommandHandler) Handle(ctx context.Context, cmd GenerateOtpCommand) error {
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

	code, err := sh.IssueOTP(cmd.RiderID(), now)
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, sh); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.notifier.Send(ctx, ports.Notification{
		Recipient: sh.ReceiverPhone(),
		Channel:   ports.ChannelSMS,
		Title:     "Delivery confirmation code",
		Body:      "Share this code with the rider to receive your parcel: " + code,
		Data:      map[string]string{"awb": sh.AWB().String()},
	}); err != nil {
		h.logger.Warn("otp notification failed",
			"awb", sh.AWB().String(), "error", err)
	}

	return nil
}
