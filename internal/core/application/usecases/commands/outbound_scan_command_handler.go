package commands

import (
	"context"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/shipment"
)

// OutboundScanCommandHandler processes outbound hub scans. Every shipment in
// the batch must sit in_hub at the stated origin; a single mismatch rejects
// the whole batch before anything moves.
type OutboundScanCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewOutboundScanCommandHandler creates a handler for outbound scans.
func NewOutboundScanCommandHandler(uowFactory ShipmentUoWFactory) OutboundScanCommandHandler {
	return OutboundScanCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates every shipment in the batch before mutating any.
func (h *OutboundScanCommandHandler) Handle(ctx context.Context, cmd OutboundScanCommand) error {
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

		if sh.Status() != shipment.InHub {
			failures = append(failures, BatchFailure{
				AWB:    awb.String(),
				Reason: fmt.Sprintf("cannot be released from %s", sh.Status()),
			})
			continue
		}
		if sh.CurrentHub() == nil || !sh.CurrentHub().IsEqual(cmd.Origin()) {
			failures = append(failures, BatchFailure{
				AWB:    awb.String(),
				Reason: fmt.Sprintf("is not at hub %s", cmd.Origin()),
			})
		}
	}
	if len(failures) > 0 {
		return NewBatchValidationError(failures)
	}

	for _, awb := range cmd.AWBs() {
		sh := byAWB[awb.String()]
		if cmd.RiderID() != nil {
			err = sh.ScanOutboundToRider(cmd.Origin(), *cmd.RiderID(), now)
		} else {
			err = sh.ScanOutboundToHub(cmd.Origin(), *cmd.NextHub(), now)
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
