package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/pickup"
)

// PickupRepository defines the persistence contract for pickup requests.
type PickupRepository interface {
	// Add persists a new pickup request to storage.
	Add(ctx context.Context, aggregate *pickup.Pickup) error

	// Update persists changes to an existing pickup request.
	Update(ctx context.Context, aggregate *pickup.Pickup) error

	// Get retrieves a pickup request by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*pickup.Pickup, error)
}
