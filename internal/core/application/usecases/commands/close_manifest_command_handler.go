package commands

import (
	"context"
)

// CloseManifestCommandHandler closes received manifests.
type CloseManifestCommandHandler struct {
	uowFactory ManifestUoWFactory
}

// NewCloseManifestCommandHandler creates a handler for manifest closing.
func NewCloseManifestCommandHandler(uowFactory ManifestUoWFactory) CloseManifestCommandHandler {
	return CloseManifestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle closes the manifest. Closing is permitted only from received.
func (h *CloseManifestCommandHandler) Handle(ctx context.Context, cmd CloseManifestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	mf, err := uow.ManifestRepository().Get(ctx, cmd.ManifestID())
	if err != nil {
		return err
	}

	if err = mf.Close(); err != nil {
		return err
	}

	if err = uow.ManifestRepository().Update(ctx, mf); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
