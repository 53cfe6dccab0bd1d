// Package pickuprepo provides data transfer objects and mapping functions for
// pickup request persistence.
package pickuprepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/pickup"

	"github.com/google/uuid"
)

// PickupDTO represents the database structure for persisting pickup requests.
type PickupDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MerchantID    uuid.UUID  `gorm:"type:uuid;index"`
	AgentID       *uuid.UUID `gorm:"type:uuid;index"`
	Status        string     `gorm:"type:varchar(16);index"`
	ScheduledDate time.Time
	CompletedAt   *time.Time
	Version       int
}

// TableName overrides GORM's default naming convention to use "pickups".
func (PickupDTO) TableName() string {
	return "pickups"
}

func fromDomain(p *pickup.Pickup) PickupDTO {
	var agentID *uuid.UUID
	if id := p.AgentID(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	return PickupDTO{
		ID:            p.ID().Bytes(),
		MerchantID:    p.MerchantID().Bytes(),
		AgentID:       agentID,
		Status:        p.Status().String(),
		ScheduledDate: p.ScheduledDate(),
		CompletedAt:   p.CompletedAt(),
		Version:       p.Version(),
	}
}

func toDomain(dto PickupDTO) (*pickup.Pickup, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}

		agentID = &aID
	}

	status, err := pickup.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return pickup.RestorePickup(
		id,
		merchantID,
		agentID,
		status,
		dto.ScheduledDate,
		dto.CompletedAt,
		dto.Version,
	)
}
