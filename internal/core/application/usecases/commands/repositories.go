// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, authorization,
// transaction management, and persistence. Side channels (notifications,
// audit, broadcast events) never fail the primary transition.
package commands

import (
	"context"

	"parcelhub/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// ManifestRepoFactory provides access to the manifest repository within a transaction.
	ManifestRepoFactory interface {
		ManifestRepository() ports.ManifestRepository
	}

	// PickupRepoFactory provides access to the pickup repository within a transaction.
	PickupRepoFactory interface {
		PickupRepository() ports.PickupRepository
	}

	// RiderLocationRepoFactory provides access to the rider ping store within a transaction.
	RiderLocationRepoFactory interface {
		RiderLocationRepository() ports.RiderLocationRepository
	}

	// ShipmentUoW manages transactions for shipment-only operations.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// ManifestUoW manages transactions spanning manifests and their shipments.
	// Every manifest operation also touches the attached shipment rows.
	ManifestUoW interface {
		TxManager
		ManifestRepoFactory
		ShipmentRepoFactory
	}

	// ManifestUoWFactory creates new manifest unit of work instances.
	ManifestUoWFactory interface {
		Create() ManifestUoW
	}

	// PickupUoW manages transactions spanning pickups and their shipments.
	PickupUoW interface {
		TxManager
		PickupRepoFactory
		ShipmentRepoFactory
	}

	// PickupUoWFactory creates new pickup unit of work instances.
	PickupUoWFactory interface {
		Create() PickupUoW
	}

	// RiderLocationUoW manages transactions for rider ping writes.
	RiderLocationUoW interface {
		TxManager
		RiderLocationRepoFactory
	}

	// RiderLocationUoWFactory creates new rider ping unit of work instances.
	RiderLocationUoWFactory interface {
		Create() RiderLocationUoW
	}
)
