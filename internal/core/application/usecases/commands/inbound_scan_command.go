package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrInboundScanCommandIsNotConstructed = errors.New(
		"InboundScanCommand must be created via NewInboundScanCommand constructor",
	)
	ErrNoAWBsInBatch = errors.New("at least one tracking number is required")
)

// InboundScanCommand registers the arrival of a batch of shipments at a hub.
// The whole batch is validated before any shipment moves; a single unknown
// or mis-stated tracking number rejects every shipment in the request.
// When the batch arrived on a manifest, supplying the manifest id marks it
// received and records any reconciliation discrepancies in its notes.
type InboundScanCommand struct { //nolint:recvcheck //using for validation
	awbs       []shipment.AWB
	hub        kernel.HubCode
	manifestID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewInboundScanCommand creates a command for an inbound hub scan.
// manifestID is optional.
func NewInboundScanCommand(awbs []shipment.AWB, hub kernel.HubCode, manifestID *kernel.UUID) (InboundScanCommand, error) {
	cmd := InboundScanCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAWBs(awbs),
		cmd.setHub(hub),
		cmd.setManifestID(manifestID),
	); err != nil {
		return InboundScanCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c InboundScanCommand) Validate() error {
	return c.guard.Validate(ErrInboundScanCommandIsNotConstructed)
}

// AWBs returns the scanned tracking numbers.
func (c InboundScanCommand) AWBs() []shipment.AWB { return c.awbs }

// Hub returns the hub performing the scan.
func (c InboundScanCommand) Hub() kernel.HubCode { return c.hub }

// ManifestID returns the manifest the batch arrived on, if stated.
func (c InboundScanCommand) ManifestID() *kernel.UUID { return c.manifestID }

func (c *InboundScanCommand) setAWBs(awbs []shipment.AWB) error {
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

func (c *InboundScanCommand) setHub(hub kernel.HubCode) error {
	if err := hub.Validate(); err != nil {
		return err
	}

	c.hub = hub
	return nil
}

func (c *InboundScanCommand) setManifestID(manifestID *kernel.UUID) error {
	if manifestID != nil {
		if err := manifestID.Validate(); err != nil {
			return err
		}
	}

	c.manifestID = manifestID
	return nil
}
