package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrCloseManifestCommandIsNotConstructed = errors.New(
	"CloseManifestCommand must be created via NewCloseManifestCommand constructor",
)

// CloseManifestCommand archives a received manifest once its discrepancies
// have been worked off.
type CloseManifestCommand struct { //nolint:recvcheck //using for validation
	manifestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCloseManifestCommand creates a command to close a manifest.
func NewCloseManifestCommand(manifestID kernel.UUID) (CloseManifestCommand, error) {
	cmd := CloseManifestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := manifestID.Validate(); err != nil {
		return CloseManifestCommand{}, err
	}

	cmd.manifestID = manifestID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CloseManifestCommand) Validate() error {
	return c.guard.Validate(ErrCloseManifestCommandIsNotConstructed)
}

// ManifestID returns the manifest being closed.
func (c CloseManifestCommand) ManifestID() kernel.UUID { return c.manifestID }
