package shipmentrepo

import (
	"context"
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment to the database.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment under an optimistic version check. The
// write only lands when the stored row still carries the version the
// aggregate was loaded with; a stale aggregate fails with a
// concurrent-modification error so the caller can reload and retry.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("shipment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByAWB retrieves a shipment by its tracking number.
func (r *GormShipmentRepository) GetByAWB(ctx context.Context, awb shipment.AWB) (*shipment.Shipment, error) {
	if err := awb.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "awb = ?", awb.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", awb.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByAWBs retrieves the shipments for a batch of tracking numbers.
// Unknown numbers are absent from the result.
func (r *GormShipmentRepository) GetAllByAWBs(
	ctx context.Context,
	awbs []shipment.AWB,
) ([]*shipment.Shipment, error) {
	raw := make([]string, 0, len(awbs))
	for _, awb := range awbs {
		if err := awb.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, awb.String())
	}

	var dtos []ShipmentDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "awb IN ?", raw).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllByManifest retrieves all shipments attached to a manifest.
func (r *GormShipmentRepository) GetAllByManifest(
	ctx context.Context,
	manifestID kernel.UUID,
) ([]*shipment.Shipment, error) {
	if err := manifestID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShipmentDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "manifest_id = ?", manifestID.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllPendingOlderThan retrieves pending shipments created before the cutoff.
func (r *GormShipmentRepository) GetAllPendingOlderThan(
	ctx context.Context,
	cutoff time.Time,
) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND created_at < ?", shipment.Pending.String(), cutoff).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllInDeliveryOlderThan retrieves picked-up, in-transit and
// out-for-delivery shipments created before the cutoff.
func (r *GormShipmentRepository) GetAllInDeliveryOlderThan(
	ctx context.Context,
	cutoff time.Time,
) ([]*shipment.Shipment, error) {
	statuses := []string{
		shipment.PickedUp.String(),
		shipment.InTransit.String(),
		shipment.OutForDelivery.String(),
	}

	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status IN ? AND created_at < ?", statuses, cutoff).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllInTransitNotUpdatedSince retrieves in-transit shipments whose last
// update is older than the cutoff.
func (r *GormShipmentRepository) GetAllInTransitNotUpdatedSince(
	ctx context.Context,
	cutoff time.Time,
) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND updated_at < ?", shipment.InTransit.String(), cutoff).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []ShipmentDTO) ([]*shipment.Shipment, error) {
	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		sh, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, sh)
	}
	return shipments, nil
}
