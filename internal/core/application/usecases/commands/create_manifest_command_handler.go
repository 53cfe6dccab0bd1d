package commands

import (
	"context"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/domain/model/shipment"
)

// CreateManifestCommandHandler dispatches new manifests. The manifest number
// is reserved inside the same transaction that writes the manifest row, so
// the per-day sequence stays gapless under concurrent creation: the
// repository serializes the reservation and a conflict surfaces instead of
// ever assigning a duplicate.
type CreateManifestCommandHandler struct {
	uowFactory ManifestUoWFactory
}

// NewCreateManifestCommandHandler creates a handler for manifest dispatch.
func NewCreateManifestCommandHandler(uowFactory ManifestUoWFactory) CreateManifestCommandHandler {
	return CreateManifestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates every shipment in the batch before attaching any, then
// dispatches the manifest. Returns the assigned manifest number.
func (h *CreateManifestCommandHandler) Handle(ctx context.Context, cmd CreateManifestCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipments, err := uow.ShipmentRepository().GetAllByAWBs(ctx, cmd.AWBs())
	if err != nil {
		return "", err
	}

	byAWB := make(map[string]*shipment.Shipment, len(shipments))
	for _, sh := range shipments {
		byAWB[sh.AWB().String()] = sh
	}

	var failures []BatchFailure
	for _, awb := range cmd.AWBs() {
		sh, ok := byAWB[awb.String()]
		if !ok {
			failures = append(failures, BatchFailure{AWB: awb.String(), Reason: "not found"})
			continue
		}

		if sh.Status() != shipment.InHub {
			failures = append(failures, BatchFailure{
				AWB:    awb.String(),
				Reason: fmt.Sprintf("cannot be manifested from %s", sh.Status()),
			})
			continue
		}
		if sh.CurrentHub() == nil || !sh.CurrentHub().IsEqual(cmd.OriginHub()) {
			failures = append(failures, BatchFailure{
				AWB:    awb.String(),
				Reason: fmt.Sprintf("is not at hub %s", cmd.OriginHub()),
			})
		}
	}
	if len(failures) > 0 {
		return "", NewBatchValidationError(failures)
	}

	number, err := uow.ManifestRepository().NextNumberForDay(ctx, now)
	if err != nil {
		return "", err
	}

	mf, err := manifest.NewManifest(
		cmd.ManifestID(), number,
		cmd.OriginHub(), cmd.DestinationHub(),
		len(cmd.AWBs()), now,
	)
	if err != nil {
		return "", err
	}

	if err = uow.ManifestRepository().Add(ctx, mf); err != nil {
		return "", err
	}

	for _, awb := range cmd.AWBs() {
		sh := byAWB[awb.String()]
		if err = sh.AttachToManifest(cmd.ManifestID(), cmd.DestinationHub(), now); err != nil {
			return "", err
		}

		if err = uow.ShipmentRepository().Update(ctx, sh); err != nil {
			return "", err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return number, nil
}
