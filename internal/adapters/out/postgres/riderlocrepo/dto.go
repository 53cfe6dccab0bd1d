// Package riderlocrepo provides data transfer objects and mapping functions
// for the append-only rider GPS ping store.
package riderlocrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/riderloc"

	"github.com/google/uuid"
)

// RiderLocationDTO represents the database structure for persisting rider GPS
// pings. Rows are insert-only.
type RiderLocationDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RiderID    uuid.UUID  `gorm:"type:uuid;index"`
	ShipmentID *uuid.UUID `gorm:"type:uuid;index"`
	Lat        float64
	Lng        float64
	RecordedAt time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming convention to use "rider_locations".
func (RiderLocationDTO) TableName() string {
	return "rider_locations"
}

func fromDomain(ping *riderloc.RiderLocation) RiderLocationDTO {
	var shipmentID *uuid.UUID
	if id := ping.ShipmentID(); id != nil {
		raw := id.Bytes()
		shipmentID = &raw
	}

	return RiderLocationDTO{
		ID:         ping.ID().Bytes(),
		RiderID:    ping.RiderID().Bytes(),
		ShipmentID: shipmentID,
		Lat:        ping.Point().Lat(),
		Lng:        ping.Point().Lng(),
		RecordedAt: ping.RecordedAt(),
	}
}

func toDomain(dto RiderLocationDTO) (*riderloc.RiderLocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return nil, err
	}

	var shipmentID *kernel.UUID
	if dto.ShipmentID != nil {
		sID, shipmentErr := kernel.UUIDFromBytes((*dto.ShipmentID)[:])
		if shipmentErr != nil {
			return nil, shipmentErr
		}

		shipmentID = &sID
	}

	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}

	return riderloc.RestoreRiderLocation(id, riderID, shipmentID, point, dto.RecordedAt)
}
