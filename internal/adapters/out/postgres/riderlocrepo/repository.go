package riderlocrepo

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/riderloc"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRiderLocationRepository implements RiderLocationRepository using GORM.
type GormRiderLocationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRiderLocationRepository creates a new GORM rider location repository.
func NewGormRiderLocationRepository(db *gorm.DB, tracker aggregateTracker) *GormRiderLocationRepository {
	return &GormRiderLocationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends a new ping. Pings are never updated.
func (r *GormRiderLocationRepository) Add(ctx context.Context, ping *riderloc.RiderLocation) error {
	if err := ping.Validate(); err != nil {
		return err
	}

	dto := fromDomain(ping)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(ping.ID(), ping)
	return nil
}

// GetFirstForShipment retrieves the earliest ping tied to a shipment.
func (r *GormRiderLocationRepository) GetFirstForShipment(
	ctx context.Context,
	shipmentID kernel.UUID,
) (*riderloc.RiderLocation, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dto RiderLocationDTO
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("recorded_at ASC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider location", shipmentID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetTrailForShipment retrieves all pings tied to a shipment, ordered by
// recording time ascending.
func (r *GormRiderLocationRepository) GetTrailForShipment(
	ctx context.Context,
	shipmentID kernel.UUID,
) ([]*riderloc.RiderLocation, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RiderLocationDTO
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("recorded_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	pings := make([]*riderloc.RiderLocation, 0, len(dtos))
	for _, dto := range dtos {
		ping, pingErr := toDomain(dto)
		if pingErr != nil {
			return nil, pingErr
		}
		pings = append(pings, ping)
	}

	return pings, nil
}
