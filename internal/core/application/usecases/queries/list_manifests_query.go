package queries

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/pkg/guard"
)

var ErrListManifestsQueryIsNotConstructed = errors.New(
	"ListManifestsQuery must be created via NewListManifestsQuery constructor",
)

// ListManifestsQuery retrieves manifests filtered by hub, status and dispatch
// day. All filters are optional; an empty query lists everything, newest
// dispatch first.
type ListManifestsQuery struct { //nolint:recvcheck //using for validation
	originHub      *kernel.HubCode
	destinationHub *kernel.HubCode
	status         *manifest.Status
	day            *time.Time

	guard guard.ConstructorGuard
}

// NewListManifestsQuery creates a manifest listing query. Nil filters are
// skipped.
func NewListManifestsQuery(
	originHub, destinationHub *kernel.HubCode,
	status *manifest.Status,
	day *time.Time,
) (ListManifestsQuery, error) {
	q := ListManifestsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if originHub != nil {
		if err := originHub.Validate(); err != nil {
			return ListManifestsQuery{}, err
		}
	}

	if destinationHub != nil {
		if err := destinationHub.Validate(); err != nil {
			return ListManifestsQuery{}, err
		}
	}

	if status != nil {
		if err := status.Validate(); err != nil {
			return ListManifestsQuery{}, err
		}
	}

	q.originHub = originHub
	q.destinationHub = destinationHub
	q.status = status
	q.day = day
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListManifestsQuery) Validate() error {
	return q.guard.Validate(ErrListManifestsQueryIsNotConstructed)
}

// OriginHub returns the origin filter, nil when unset.
func (q ListManifestsQuery) OriginHub() *kernel.HubCode { return q.originHub }

// DestinationHub returns the destination filter, nil when unset.
func (q ListManifestsQuery) DestinationHub() *kernel.HubCode { return q.destinationHub }

// Status returns the status filter, nil when unset.
func (q ListManifestsQuery) Status() *manifest.Status { return q.status }

// Day returns the dispatch-day filter, nil when unset.
func (q ListManifestsQuery) Day() *time.Time { return q.day }

// ListManifestsQueryResponse is one manifest in the listing read model.
type ListManifestsQueryResponse struct {
	ID             kernel.UUID
	Number         string
	OriginHub      string
	DestinationHub string
	Status         string
	TotalShipments int
	DispatchDate   time.Time
	ReceivedDate   *time.Time
	Notes          string
}
