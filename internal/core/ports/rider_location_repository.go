package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/riderloc"
)

// RiderLocationRepository defines the persistence contract for rider GPS pings.
// The store is append-only; pings are never updated or deleted.
type RiderLocationRepository interface {
	// Add persists a new ping.
	Add(ctx context.Context, ping *riderloc.RiderLocation) error

	// GetFirstForShipment retrieves the earliest ping tied to a shipment,
	// or a not-found error when the rider never reported one.
	GetFirstForShipment(ctx context.Context, shipmentID kernel.UUID) (*riderloc.RiderLocation, error)

	// GetTrailForShipment retrieves all pings tied to a shipment,
	// ordered by recording time ascending.
	GetTrailForShipment(ctx context.Context, shipmentID kernel.UUID) ([]*riderloc.RiderLocation, error)
}
