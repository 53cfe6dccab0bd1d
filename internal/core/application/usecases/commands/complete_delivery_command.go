package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
		"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
	)
	ErrOtpIsRequired        = errors.New("otp is required")
	ErrReceivedByIsRequired = errors.New("received by is required")
)

// CompleteDeliveryCommand records a successful handover at the door.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	awb             shipment.AWB
	riderID         kernel.UUID
	otp             string
	collectedAmount decimal.Decimal
	receivedBy      string
	podNote         string

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to complete a delivery.
// collectedAmount is the cash the rider took at the door, zero for prepaid.
func NewCompleteDeliveryCommand(
	awb shipment.AWB,
	riderID kernel.UUID,
	otp string,
	collectedAmount decimal.Decimal,
	receivedBy, podNote string,
) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(awb.Validate(), riderID.Validate()); err != nil {
		return CompleteDeliveryCommand{}, err
	}
	if otp == "" {
		return CompleteDeliveryCommand{}, ErrOtpIsRequired
	}
	if receivedBy == "" {
		return CompleteDeliveryCommand{}, ErrReceivedByIsRequired
	}

	cmd.awb = awb
	cmd.riderID = riderID
	cmd.otp = otp
	cmd.collectedAmount = collectedAmount
	cmd.receivedBy = receivedBy
	cmd.podNote = podNote
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// AWB returns the shipment's tracking number.
func (c CompleteDeliveryCommand) AWB() shipment.AWB { return c.awb }

// RiderID returns the delivering rider.
func (c CompleteDeliveryCommand) RiderID() kernel.UUID { return c.riderID }

// OTP returns the code the receiver shared with the rider.
func (c CompleteDeliveryCommand) OTP() string { return c.otp }

// CollectedAmount returns the cash taken at the door.
func (c CompleteDeliveryCommand) CollectedAmount() decimal.Decimal { return c.collectedAmount }

// ReceivedBy returns who accepted the parcel.
func (c CompleteDeliveryCommand) ReceivedBy() string { return c.receivedBy }

// PODNote returns the rider's free-text proof-of-delivery note.
func (c CompleteDeliveryCommand) PODNote() string { return c.podNote }
