// Package manifestrepo provides data transfer objects and mapping functions
// for manifest persistence, including the serialized allocation of day-scoped
// manifest numbers.
package manifestrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"

	"github.com/google/uuid"
)

// ManifestDTO represents the database structure for persisting manifest
// aggregates.
type ManifestDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number         string    `gorm:"type:varchar(16);uniqueIndex"`
	OriginHub      string    `gorm:"type:varchar(16);index"`
	DestinationHub string    `gorm:"type:varchar(16);index"`
	Status         string    `gorm:"type:varchar(16);index"`
	TotalShipments int
	DispatchDate   time.Time `gorm:"index"`
	ReceivedDate   *time.Time
	Notes          string `gorm:"type:text"`
	Version        int
}

// TableName overrides GORM's default naming convention to use "manifests".
func (ManifestDTO) TableName() string {
	return "manifests"
}

func fromDomain(m *manifest.Manifest) ManifestDTO {
	return ManifestDTO{
		ID:             m.ID().Bytes(),
		Number:         m.Number(),
		OriginHub:      m.OriginHub().String(),
		DestinationHub: m.DestinationHub().String(),
		Status:         m.Status().String(),
		TotalShipments: m.TotalShipments(),
		DispatchDate:   m.DispatchDate(),
		ReceivedDate:   m.ReceivedDate(),
		Notes:          m.Notes(),
		Version:        m.Version(),
	}
}

func toDomain(dto ManifestDTO) (*manifest.Manifest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	origin, err := kernel.NewHubCode(dto.OriginHub)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewHubCode(dto.DestinationHub)
	if err != nil {
		return nil, err
	}

	status, err := manifest.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return manifest.RestoreManifest(
		id,
		dto.Number,
		origin,
		destination,
		status,
		dto.TotalShipments,
		dto.DispatchDate,
		dto.ReceivedDate,
		dto.Notes,
		dto.Version,
	)
}
