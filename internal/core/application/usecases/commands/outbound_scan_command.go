package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrOutboundScanCommandIsNotConstructed = errors.New(
		"OutboundScanCommand must be created via NewOutboundScanCommand constructor",
	)
	ErrOutboundDestinationIsAmbiguous = errors.New(
		"exactly one of next hub or rider must be stated",
	)
)

// OutboundScanCommand releases a batch of shipments from a hub, either
// toward another hub or to a rider for the last mile. Exactly one
// destination kind must be stated for the whole batch.
type OutboundScanCommand struct { //nolint:recvcheck //using for validation
	awbs    []shipment.AWB
	origin  kernel.HubCode
	nextHub *kernel.HubCode
	riderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewOutboundScanCommand creates a command for an outbound hub scan.
func NewOutboundScanCommand(
	awbs []shipment.AWB,
	origin kernel.HubCode,
	nextHub *kernel.HubCode,
	riderID *kernel.UUID,
) (OutboundScanCommand, error) {
	cmd := OutboundScanCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAWBs(awbs),
		cmd.setOrigin(origin),
		cmd.setDestination(nextHub, riderID),
	); err != nil {
		return OutboundScanCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OutboundScanCommand) Validate() error {
	return c.guard.Validate(ErrOutboundScanCommandIsNotConstructed)
}

// AWBs returns the scanned tracking numbers.
func (c OutboundScanCommand) AWBs() []shipment.AWB { return c.awbs }

// Origin returns the hub releasing the batch.
func (c OutboundScanCommand) Origin() kernel.HubCode { return c.origin }

// NextHub returns the destination hub for a linehaul release, if stated.
func (c OutboundScanCommand) NextHub() *kernel.HubCode { return c.nextHub }

// RiderID returns the rider for a last-mile release, if stated.
func (c OutboundScanCommand) RiderID() *kernel.UUID { return c.riderID }

func (c *OutboundScanCommand) setAWBs(awbs []shipment.AWB) error {
	if len(awbs) == 0 {
		return ErrNoAWBsInBatch
	}

	for _, awb := range awbs {
		if err := awb.Validate(); err != nil {
			return err
		}
	}

	c.awbs = awbs
	return nil
}

func (c *OutboundScanCommand) setOrigin(origin kernel.HubCode) error {
	if err := origin.Validate(); err != nil {
		return err
	}

	c.origin = origin
	return nil
}

func (c *OutboundScanCommand) setDestination(nextHub *kernel.HubCode, riderID *kernel.UUID) error {
	if (nextHub == nil) == (riderID == nil) {
		return ErrOutboundDestinationIsAmbiguous
	}

	if nextHub != nil {
		if err := nextHub.Validate(); err != nil {
			return err
		}
	}
	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return err
		}
	}

	c.nextHub = nextHub
	c.riderID = riderID
	return nil
}
