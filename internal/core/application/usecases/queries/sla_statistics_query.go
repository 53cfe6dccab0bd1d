package queries

import (
	"errors"
	"time"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrGetSLAStatisticsQueryIsNotConstructed = errors.New(
	"GetSLAStatisticsQuery must be created via NewGetSLAStatisticsQuery constructor",
)

// GetSLAStatisticsQuery retrieves the current service-level backlog: how many
// shipments are breaching each rule right now. The counts are computed
// directly against the database, independent of the sweep's dedup markers, so
// the dashboard shows the real backlog even between sweeps.
type GetSLAStatisticsQuery struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewGetSLAStatisticsQuery creates a statistics query evaluated at now.
func NewGetSLAStatisticsQuery(now time.Time) (GetSLAStatisticsQuery, error) {
	q := GetSLAStatisticsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if now.IsZero() {
		return GetSLAStatisticsQuery{}, errs.NewValueIsRequiredError("evaluation time")
	}

	q.now = now
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSLAStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetSLAStatisticsQueryIsNotConstructed)
}

// Now returns the evaluation time.
func (q GetSLAStatisticsQuery) Now() time.Time { return q.now }

// GetSLAStatisticsQueryResponse is the service-level dashboard read model.
type GetSLAStatisticsQueryResponse struct {
	PickupOverdue   int
	DeliveryOverdue int
	InTransitStale  int
	GeneratedAt     time.Time
}

// TotalBreaching returns the combined backlog across all rules. A shipment
// breaching two rules is counted in both, matching how the sweep alerts.
func (r GetSLAStatisticsQueryResponse) TotalBreaching() int {
	return r.PickupOverdue + r.DeliveryOverdue + r.InTransitStale
}
