package commands

import (
	"context"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/domain/model/shipment"
)

// InboundScanCommandHandler processes inbound hub scans. Regular shipments
// move to in_hub at the scanning hub; shipments on the return leg move to
// rto_in_transit. When a manifest id accompanies the batch and that manifest
// is still in transit, the scan doubles as its receipt: the scanned numbers
// are reconciled against the manifest's expected set and the result lands in
// the manifest's notes.
type InboundScanCommandHandler struct {
	uowFactory ManifestUoWFactory
}

// NewInboundScanCommandHandler creates a handler for inbound scans.
func NewInboundScanCommandHandler(uowFactory ManifestUoWFactory) InboundScanCommandHandler {
	return InboundScanCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates every shipment in the batch before mutating any.
func (h *InboundScanCommandHandler) Handle(ctx context.Context, cmd InboundScanCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipments, err := uow.ShipmentRepository().GetAllByAWBs(ctx, cmd.AWBs())
	if err != nil {
		return err
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

		switch sh.Status() {
		case shipment.PickedUp, shipment.InTransit, shipment.InHub, shipment.RTOInitiated:
		default:
			failures = append(failures, BatchFailure{
				AWB:    awb.String(),
				Reason: fmt.Sprintf("cannot be scanned inbound from %s", sh.Status()),
			})
		}
	}
	if len(failures) > 0 {
		return NewBatchValidationError(failures)
	}

	// The receipt reconciles against the membership as dispatched. Arrival
	// detaches each shipment from its manifest, so the expected set must be
	// read before any of them move.
	if cmd.ManifestID() != nil {
		if err = h.receiveManifest(ctx, uow, cmd, now); err != nil {
			return err
		}
	}

	for _, awb := range cmd.AWBs() {
		sh := byAWB[awb.String()]
		if sh.Status() == shipment.RTOInitiated {
			err = sh.ScanInboundRTO(cmd.Hub(), now)
		} else {
			err = sh.ScanInbound(cmd.Hub(), now)
		}
		if err != nil {
			return err
		}

		if err = uow.ShipmentRepository().Update(ctx, sh); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h *InboundScanCommandHandler) receiveManifest(
	ctx context.Context, uow ManifestUoW, cmd InboundScanCommand, now time.Time,
) error {
	mf, err := uow.ManifestRepository().Get(ctx, *cmd.ManifestID())
	if err != nil {
		return err
	}

	if mf.Status() != manifest.InTransit {
		return nil
	}

	expectedShipments, err := uow.ShipmentRepository().GetAllByManifest(ctx, *cmd.ManifestID())
	if err != nil {
		return err
	}

	expected := make([]string, 0, len(expectedShipments))
	for _, sh := range expectedShipments {
		expected = append(expected, sh.AWB().String())
	}
	scanned := make([]string, 0, len(cmd.AWBs()))
	for _, awb := range cmd.AWBs() {
		scanned = append(scanned, awb.String())
	}

	if err = mf.Receive(manifest.Reconcile(expected, scanned), now); err != nil {
		return err
	}

	return uow.ManifestRepository().Update(ctx, mf)
}
