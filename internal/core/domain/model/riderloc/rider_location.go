package riderloc

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
)

// ErrRiderLocationIsNotConstructed is returned when a RiderLocation
// was created via the default constructor.
var ErrRiderLocationIsNotConstructed = errors.New("rider location is not constructed")

// RiderLocation is an append-only GPS ping reported by a rider's device.
// Rows are never updated; the latest ping per rider wins for display.
type RiderLocation struct {
	id         kernel.UUID
	riderID    kernel.UUID
	shipmentID *kernel.UUID
	point      kernel.GeoPoint
	recordedAt time.Time

	isConstructed bool
}

// NewRiderLocation records a fresh ping. shipmentID is optional and only
// present while the rider is actively carrying a shipment.
func NewRiderLocation(
	id, riderID kernel.UUID,
	shipmentID *kernel.UUID,
	point kernel.GeoPoint,
	recordedAt time.Time,
) (*RiderLocation, error) {
	if err := errors.Join(id.Validate(), riderID.Validate(), point.Validate()); err != nil {
		return nil, err
	}

	if shipmentID != nil {
		if err := shipmentID.Validate(); err != nil {
			return nil, err
		}
	}

	if recordedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("recorded at")
	}

	return &RiderLocation{
		id:            id,
		riderID:       riderID,
		shipmentID:    shipmentID,
		point:         point,
		recordedAt:    recordedAt,
		isConstructed: true,
	}, nil
}

// RestoreRiderLocation reconstructs a ping from persistence.
func RestoreRiderLocation(
	id, riderID kernel.UUID,
	shipmentID *kernel.UUID,
	point kernel.GeoPoint,
	recordedAt time.Time,
) (*RiderLocation, error) {
	return NewRiderLocation(id, riderID, shipmentID, point, recordedAt)
}

// Validate ensures the RiderLocation instance was properly constructed.
func (l *RiderLocation) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrRiderLocationIsNotConstructed
	}
	return nil
}

// ID returns the ping's unique identifier.
func (l *RiderLocation) ID() kernel.UUID { return l.id }

// RiderID returns the rider that reported the ping.
func (l *RiderLocation) RiderID() kernel.UUID { return l.riderID }

// ShipmentID returns the shipment the rider was carrying, if any.
func (l *RiderLocation) ShipmentID() *kernel.UUID { return l.shipmentID }

// Point returns the reported coordinates.
func (l *RiderLocation) Point() kernel.GeoPoint { return l.point }

// RecordedAt returns the device timestamp of the ping.
func (l *RiderLocation) RecordedAt() time.Time { return l.recordedAt }
