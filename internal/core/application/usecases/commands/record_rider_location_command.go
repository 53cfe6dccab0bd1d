package commands

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrRecordRiderLocationCommandIsNotConstructed = errors.New(
		"RecordRiderLocationCommand must be created via NewRecordRiderLocationCommand constructor",
	)
	ErrRecordedAtIsRequired = errors.New("recorded at is required")
)

// RecordRiderLocationCommand appends one GPS ping from a rider's device.
type RecordRiderLocationCommand struct { //nolint:recvcheck //using for validation
	pingID     kernel.UUID
	riderID    kernel.UUID
	shipmentID *kernel.UUID
	point      kernel.GeoPoint
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewRecordRiderLocationCommand creates a command to record a ping.
// shipmentID is optional; it is set while the rider carries a shipment.
func NewRecordRiderLocationCommand(
	pingID, riderID kernel.UUID,
	shipmentID *kernel.UUID,
	point kernel.GeoPoint,
	recordedAt time.Time,
) (RecordRiderLocationCommand, error) {
	cmd := RecordRiderLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(pingID.Validate(), riderID.Validate(), point.Validate()); err != nil {
		return RecordRiderLocationCommand{}, err
	}
	if shipmentID != nil {
		if err := shipmentID.Validate(); err != nil {
			return RecordRiderLocationCommand{}, err
		}
	}
	if recordedAt.IsZero() {
		return RecordRiderLocationCommand{}, ErrRecordedAtIsRequired
	}

	cmd.pingID = pingID
	cmd.riderID = riderID
	cmd.shipmentID = shipmentID
	cmd.point = point
	cmd.recordedAt = recordedAt
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordRiderLocationCommand) Validate() error {
	return c.guard.Validate(ErrRecordRiderLocationCommandIsNotConstructed)
}

// PingID returns the identifier for the new ping.
func (c RecordRiderLocationCommand) PingID() kernel.UUID { return c.pingID }

// RiderID returns the reporting rider.
func (c RecordRiderLocationCommand) RiderID() kernel.UUID { return c.riderID }

// ShipmentID returns the carried shipment, if any.
func (c RecordRiderLocationCommand) ShipmentID() *kernel.UUID { return c.shipmentID }

// Point returns the reported coordinates.
func (c RecordRiderLocationCommand) Point() kernel.GeoPoint { return c.point }

// RecordedAt returns the device timestamp.
func (c RecordRiderLocationCommand) RecordedAt() time.Time { return c.recordedAt }
