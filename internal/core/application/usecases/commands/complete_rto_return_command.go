package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"
)

var ErrCompleteRTOReturnCommandIsNotConstructed = errors.New(
	"CompleteRTOReturnCommand must be created via NewCompleteRTOReturnCommand constructor",
)

// CompleteRTOReturnCommand closes the return leg: the parcel is back with
// the sender.
type CompleteRTOReturnCommand struct { //nolint:recvcheck //using for validation
	awb shipment.AWB

	guard guard.ConstructorGuard
}

// NewCompleteRTOReturnCommand creates a command to close a return.
func NewCompleteRTOReturnCommand(awb shipment.AWB) (CompleteRTOReturnCommand, error) {
	cmd := CompleteRTOReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := awb.Validate(); err != nil {
		return CompleteRTOReturnCommand{}, err
	}

	cmd.awb = awb
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteRTOReturnCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRTOReturnCommandIsNotConstructed)
}

// AWB returns the shipment's tracking number.
func (c CompleteRTOReturnCommand) AWB() shipment.AWB { return c.awb }
