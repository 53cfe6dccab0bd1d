package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrCreateManifestCommandIsNotConstructed = errors.New(
		"CreateManifestCommand must be created via NewCreateManifestCommand constructor",
	)
	ErrManifestHubsAreEqual = errors.New("origin and destination hubs must differ")
)

// CreateManifestCommand batches shipments for a linehaul between two hubs.
// Creation is the moment of physical dispatch: the new manifest goes
// straight to in_transit and every attached shipment leaves with it.
type CreateManifestCommand struct { //nolint:recvcheck //using for validation
	manifestID     kernel.UUID
	awbs           []shipment.AWB
	originHub      kernel.HubCode
	destinationHub kernel.HubCode

	guard guard.ConstructorGuard
}

// NewCreateManifestCommand creates a command to dispatch a manifest.
func NewCreateManifestCommand(
	manifestID kernel.UUID,
	awbs []shipment.AWB,
	originHub, destinationHub kernel.HubCode,
) (CreateManifestCommand, error) {
	cmd := CreateManifestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setManifestID(manifestID),
		cmd.setAWBs(awbs),
		cmd.setHubs(originHub, destinationHub),
	); err != nil {
		return CreateManifestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateManifestCommand) Validate() error {
	return c.guard.Validate(ErrCreateManifestCommandIsNotConstructed)
}

// ManifestID returns the identifier for the new manifest.
func (c CreateManifestCommand) ManifestID() kernel.UUID { return c.manifestID }

// AWBs returns the tracking numbers to attach.
func (c CreateManifestCommand) AWBs() []shipment.AWB { return c.awbs }

// OriginHub returns the dispatching hub.
func (c CreateManifestCommand) OriginHub() kernel.HubCode { return c.originHub }

// DestinationHub returns the receiving hub.
func (c CreateManifestCommand) DestinationHub() kernel.HubCode { return c.destinationHub }

func (c *CreateManifestCommand) setManifestID(manifestID kernel.UUID) error {
	if err := manifestID.Validate(); err != nil {
		return err
	}

	c.manifestID = manifestID
	return nil
}

func (c *CreateManifestCommand) setAWBs(awbs []shipment.AWB) error {
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

func (c *CreateManifestCommand) setHubs(origin, destination kernel.HubCode) error {
	if err := errors.Join(origin.Validate(), destination.Validate()); err != nil {
		return err
	}

	if origin.IsEqual(destination) {
		return ErrManifestHubsAreEqual
	}

	c.originHub = origin
	c.destinationHub = destination
	return nil
}
