package ports

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
// Updates enforce the aggregate's optimistic version: a write that matches an
// older version fails with a concurrent-modification error.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByAWB retrieves a shipment aggregate by its tracking number.
	GetByAWB(ctx context.Context, awb shipment.AWB) (*shipment.Shipment, error)

	// GetAllByAWBs retrieves the shipments for a batch of tracking numbers.
	// Unknown numbers are simply absent from the result; callers detect and
	// report them against the request.
	GetAllByAWBs(ctx context.Context, awbs []shipment.AWB) ([]*shipment.Shipment, error)

	// GetAllByManifest retrieves all shipments attached to a manifest.
	GetAllByManifest(ctx context.Context, manifestID kernel.UUID) ([]*shipment.Shipment, error)

	// GetAllPendingOlderThan retrieves pending shipments created before the cutoff.
	GetAllPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*shipment.Shipment, error)

	// GetAllInDeliveryOlderThan retrieves picked-up, in-transit and
	// out-for-delivery shipments created before the cutoff.
	GetAllInDeliveryOlderThan(ctx context.Context, cutoff time.Time) ([]*shipment.Shipment, error)

	// GetAllInTransitNotUpdatedSince retrieves in-transit shipments whose last
	// update is older than the cutoff.
	GetAllInTransitNotUpdatedSince(ctx context.Context, cutoff time.Time) ([]*shipment.Shipment, error)
}
