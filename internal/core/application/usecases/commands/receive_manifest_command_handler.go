package commands

import (
	"context"
	"sort"
	"time"

	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/domain/model/shipment"
)

// ReceiveManifestCommandHandler completes a manifest's journey. Only the
// intersection of expected and scanned shipments changes status; the
// manifest itself always reaches received once the operation completes,
// discrepancies recorded in its notes. The discrepancy lists are the
// operation's result, not an error.
type ReceiveManifestCommandHandler struct {
	uowFactory ManifestUoWFactory
}

// NewReceiveManifestCommandHandler creates a handler for manifest receipt.
func NewReceiveManifestCommandHandler(uowFactory ManifestUoWFactory) ReceiveManifestCommandHandler {
	return ReceiveManifestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle reconciles and receives the manifest.
func (h *ReceiveManifestCommandHandler) Handle(
	ctx context.Context, cmd ReceiveManifestCommand,
) (manifest.ReconciliationResult, error) {
	if err := cmd.Validate(); err != nil {
		return manifest.ReconciliationResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return manifest.ReconciliationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	mf, err := uow.ManifestRepository().Get(ctx, cmd.ManifestID())
	if err != nil {
		return manifest.ReconciliationResult{}, err
	}

	expectedShipments, err := uow.ShipmentRepository().GetAllByManifest(ctx, cmd.ManifestID())
	if err != nil {
		return manifest.ReconciliationResult{}, err
	}

	byAWB := make(map[string]*shipment.Shipment, len(expectedShipments))
	expected := make([]string, 0, len(expectedShipments))
	for _, sh := range expectedShipments {
		byAWB[sh.AWB().String()] = sh
		expected = append(expected, sh.AWB().String())
	}

	scanned := make([]string, 0, len(cmd.Scanned()))
	for _, awb := range cmd.Scanned() {
		scanned = append(scanned, awb.String())
	}

	result := manifest.Reconcile(expected, scanned)

	// A member cancelled after dispatch can still turn up on the dock, but
	// it never enters hub stock. Report it with the missing goods so the
	// receipt completes instead of failing on its dead status.
	receivable := make([]string, 0, len(result.Received))
	for _, awb := range result.Received {
		if byAWB[awb].Status() == shipment.Cancelled {
			result.NotReceived = append(result.NotReceived, awb)
			continue
		}
		receivable = append(receivable, awb)
	}
	result.Received = receivable
	sort.Strings(result.NotReceived)

	if err = mf.Receive(result, now); err != nil {
		return manifest.ReconciliationResult{}, err
	}

	for _, awb := range result.Received {
		sh := byAWB[awb]
		if err = sh.ScanInbound(mf.DestinationHub(), now); err != nil {
			return manifest.ReconciliationResult{}, err
		}

		if err = uow.ShipmentRepository().Update(ctx, sh); err != nil {
			return manifest.ReconciliationResult{}, err
		}
	}

	if err = uow.ManifestRepository().Update(ctx, mf); err != nil {
		return manifest.ReconciliationResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return manifest.ReconciliationResult{}, err
	}

	return result, nil
}
