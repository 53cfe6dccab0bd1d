package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"
)

var ErrReceiveManifestCommandIsNotConstructed = errors.New(
	"ReceiveManifestCommand must be created via NewReceiveManifestCommand constructor",
)

// ReceiveManifestCommand reconciles an arriving manifest against the
// tracking numbers actually scanned at the destination dock. An empty
// scanned list is legal: it records a manifest that arrived with nothing on
// it, every expected shipment flagged as not received.
type ReceiveManifestCommand struct { //nolint:recvcheck //using for validation
	manifestID kernel.UUID
	scanned    []shipment.AWB

	guard guard.ConstructorGuard
}

// NewReceiveManifestCommand creates a command to receive a manifest.
func NewReceiveManifestCommand(manifestID kernel.UUID, scanned []shipment.AWB) (ReceiveManifestCommand, error) {
	cmd := ReceiveManifestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := manifestID.Validate(); err != nil {
		return ReceiveManifestCommand{}, err
	}

	for _, awb := range scanned {
		if err := awb.Validate(); err != nil {
			return ReceiveManifestCommand{}, err
		}
	}

	cmd.manifestID = manifestID
	cmd.scanned = scanned
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveManifestCommand) Validate() error {
	return c.guard.Validate(ErrReceiveManifestCommandIsNotConstructed)
}

// ManifestID returns the manifest being received.
func (c ReceiveManifestCommand) ManifestID() kernel.UUID { return c.manifestID }

// Scanned returns the tracking numbers scanned at the dock.
func (c ReceiveManifestCommand) Scanned() []shipment.AWB { return c.scanned }
