package ports

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
)

// ManifestRepository defines the persistence contract for manifest aggregates.
type ManifestRepository interface {
	// Add persists a new manifest aggregate to storage.
	Add(ctx context.Context, aggregate *manifest.Manifest) error

	// Update persists changes to an existing manifest aggregate.
	Update(ctx context.Context, aggregate *manifest.Manifest) error

	// Get retrieves a manifest aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*manifest.Manifest, error)

	// GetByNumber retrieves a manifest aggregate by its manifest number.
	GetByNumber(ctx context.Context, number string) (*manifest.Manifest, error)

	// NextNumberForDay reserves the next gapless manifest number for the day.
	// The read is serialized per day prefix; callers must hold an open
	// transaction so the reservation survives until the manifest row lands.
	NextNumberForDay(ctx context.Context, day time.Time) (string, error)
}
