package manifest

import (
	"errors"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
)

// ErrManifestIsNotConstructed is returned when a Manifest instance was not
// created through NewManifest or RestoreManifest.
var ErrManifestIsNotConstructed = errors.New("Manifest must be created via NewManifest or RestoreManifest")

// Manifest is the aggregate root for a hub-to-hub batch transfer.
//
// Invariants:
//   - number and totalShipments never change after creation; the set of
//     shipments referencing this manifest is the expected set used for
//     receiving reconciliation
//   - status follows created → in_transit → received → closed, with created
//     consumed inside the constructor (a manifest exists only because parcels
//     left on a vehicle)
//   - origin and destination hubs differ
type Manifest struct {
	id             kernel.UUID
	number         string
	originHub      kernel.HubCode
	destinationHub kernel.HubCode
	status         Status
	totalShipments int
	dispatchDate   time.Time
	receivedDate   *time.Time
	notes          string
	version        int
	isConstructed  bool
}

// NewManifest creates and immediately dispatches a manifest: the returned
// aggregate is already in_transit with dispatchDate set to now. number must
// be a day-scoped number for the dispatch day, allocated by the repository
// under a conflict-safe read.
func NewManifest(
	id kernel.UUID,
	number string,
	originHub, destinationHub kernel.HubCode,
	totalShipments int,
	now time.Time,
) (*Manifest, error) {
	if err := errors.Join(id.Validate(), originHub.Validate(), destinationHub.Validate()); err != nil {
		return nil, err
	}

	if _, err := ParseSequence(now, number); err != nil {
		return nil, err
	}

	if originHub.IsEqual(destinationHub) {
		return nil, errs.NewValueIsInvalidErrorWithCause("destination hub",
			fmt.Errorf("manifest cannot loop at %s", originHub))
	}

	if totalShipments < 1 {
		return nil, errs.NewValueIsRequiredError("manifest shipments")
	}

	m := &Manifest{
		id:             id,
		number:         number,
		originHub:      originHub,
		destinationHub: destinationHub,
		status:         Created,
		totalShipments: totalShipments,
		dispatchDate:   now,
		version:        1,
		isConstructed:  true,
	}

	// dispatch-on-create: created is never observable from outside
	status, err := m.status.TransitionTo(InTransit)
	if err != nil {
		return nil, err
	}
	m.status = status

	return m, nil
}

// RestoreManifest reconstructs a manifest from persistence.
func RestoreManifest(
	id kernel.UUID,
	number string,
	originHub, destinationHub kernel.HubCode,
	status Status,
	totalShipments int,
	dispatchDate time.Time,
	receivedDate *time.Time,
	notes string,
	version int,
) (*Manifest, error) {
	if err := errors.Join(
		id.Validate(),
		originHub.Validate(),
		destinationHub.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("manifest version",
			fmt.Errorf("%d is not positive", version))
	}

	return &Manifest{
		id:             id,
		number:         number,
		originHub:      originHub,
		destinationHub: destinationHub,
		status:         status,
		totalShipments: totalShipments,
		dispatchDate:   dispatchDate,
		receivedDate:   receivedDate,
		notes:          notes,
		version:        version,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Manifest instance was properly constructed.
func (m *Manifest) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrManifestIsNotConstructed
	}
	return nil
}

// ID returns the manifest's unique identifier.
func (m *Manifest) ID() kernel.UUID { return m.id }

// Number returns the externally visible manifest number. It is stable once
// assigned.
func (m *Manifest) Number() string { return m.number }

// OriginHub returns the dispatching hub.
func (m *Manifest) OriginHub() kernel.HubCode { return m.originHub }

// DestinationHub returns the receiving hub.
func (m *Manifest) DestinationHub() kernel.HubCode { return m.destinationHub }

// Status returns the current lifecycle status.
func (m *Manifest) Status() Status { return m.status }

// TotalShipments returns the expected count, frozen at creation.
func (m *Manifest) TotalShipments() int { return m.totalShipments }

// DispatchDate returns the dispatch time (equal to the creation time).
func (m *Manifest) DispatchDate() time.Time { return m.dispatchDate }

// ReceivedDate returns the receipt time, nil until received.
func (m *Manifest) ReceivedDate() *time.Time { return m.receivedDate }

// Notes returns the reconciliation notes recorded at receipt.
func (m *Manifest) Notes() string { return m.notes }

// Version returns the optimistic-lock version of the loaded row.
func (m *Manifest) Version() int { return m.version }

// IsEqual compares two manifests by identifier.
func (m *Manifest) IsEqual(other *Manifest) bool {
	return other != nil && m.id.IsEqual(other.id)
}

// Receive marks the manifest received at the destination hub and records the
// reconciliation outcome in its notes. Receipt completes regardless of
// discrepancies; the result lists are the caller's actionable output.
func (m *Manifest) Receive(result ReconciliationResult, now time.Time) error {
	status, err := m.status.TransitionTo(Received)
	if err != nil {
		return err
	}

	m.status = status
	m.receivedDate = &now
	m.notes = result.Notes()
	return nil
}

// Close retires a received manifest.
func (m *Manifest) Close() error {
	status, err := m.status.TransitionTo(Closed)
	if err != nil {
		return err
	}

	m.status = status
	return nil
}
