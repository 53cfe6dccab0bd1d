package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"
)

var ErrGenerateOtpCommandIsNotConstructed = errors.New(
	"GenerateOtpCommand must be created via NewGenerateOtpCommand constructor",
)

// GenerateOtpCommand issues a delivery confirmation code for a shipment the
// requesting rider is about to hand over. The code goes to the receiver,
// never back to the rider.
type GenerateOtpCommand struct { //nolint:recvcheck //using for validation
	awb     shipment.AWB
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGenerateOtpCommand creates a command to issue a delivery code.
func NewGenerateOtpCommand(awb shipment.AWB, riderID kernel.UUID) (GenerateOtpCommand, error) {
	cmd := GenerateOtpCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(awb.Validate(), riderID.Validate()); err != nil {
		return GenerateOtpCommand{}, err
	}

	cmd.awb = awb
	cmd.riderID = riderID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateOtpCommand) Validate() error {
	return c.guard.Validate(ErrGenerateOtpCommandIsNotConstructed)
}

// AWB returns the shipment's tracking number.
func (c GenerateOtpCommand) AWB() shipment.AWB { return c.awb }

// RiderID returns the requesting rider.
func (c GenerateOtpCommand) RiderID() kernel.UUID { return c.riderID }
