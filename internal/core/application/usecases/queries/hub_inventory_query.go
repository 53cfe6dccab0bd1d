package queries

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrGetHubInventoryQueryIsNotConstructed = errors.New(
	"GetHubInventoryQuery must be created via NewGetHubInventoryQuery constructor",
)

// GetHubInventoryQuery retrieves the parcels currently sitting at a hub:
// everything inbound-scanned there and not yet scanned out. Hub staff use it
// to reconcile the physical floor against the system.
type GetHubInventoryQuery struct { //nolint:recvcheck //using for validation
	hub kernel.HubCode

	guard guard.ConstructorGuard
}

// NewGetHubInventoryQuery creates a hub inventory query.
func NewGetHubInventoryQuery(hub kernel.HubCode) (GetHubInventoryQuery, error) {
	q := GetHubInventoryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := hub.Validate(); err != nil {
		return GetHubInventoryQuery{}, err
	}

	q.hub = hub
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetHubInventoryQuery) Validate() error {
	return q.guard.Validate(ErrGetHubInventoryQueryIsNotConstructed)
}

// Hub returns the hub being inventoried.
func (q GetHubInventoryQuery) Hub() kernel.HubCode { return q.hub }

// HubInventoryItem is one parcel on the hub floor.
type HubInventoryItem struct {
	AWB       string
	IsRTO     bool
	ArrivedAt time.Time
}

// GetHubInventoryQueryResponse is the hub floor read model. RTOCount counts
// the subset of Total that is on the return leg.
type GetHubInventoryQueryResponse struct {
	Hub      string
	Total    int
	RTOCount int
	Items    []HubInventoryItem
}
