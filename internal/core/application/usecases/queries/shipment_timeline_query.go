package queries

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"
)

var ErrGetShipmentTimelineQueryIsNotConstructed = errors.New(
	"GetShipmentTimelineQuery must be created via NewGetShipmentTimelineQuery constructor",
)

// GetShipmentTimelineQuery retrieves the detailed tracking timeline of a
// shipment: every reconstructed milestone plus the rider's GPS trail when one
// exists. This is the authenticated operational view; callers are authorized
// before the handler runs.
type GetShipmentTimelineQuery struct { //nolint:recvcheck //using for validation
	awb shipment.AWB

	guard guard.ConstructorGuard
}

// NewGetShipmentTimelineQuery creates a timeline query.
func NewGetShipmentTimelineQuery(awb shipment.AWB) (GetShipmentTimelineQuery, error) {
	q := GetShipmentTimelineQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := awb.Validate(); err != nil {
		return GetShipmentTimelineQuery{}, err
	}

	q.awb = awb
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentTimelineQueryIsNotConstructed)
}

// AWB returns the tracking number being looked up.
func (q GetShipmentTimelineQuery) AWB() shipment.AWB { return q.awb }

// TimelineEventResponse is one milestone in the reconstructed history.
type TimelineEventResponse struct {
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Approximate bool      `json:"approximate"`
	At          time.Time `json:"at"`
}

// RiderPingResponse is one sample of the rider's GPS trail.
type RiderPingResponse struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recordedAt"`
}

// GetShipmentTimelineQueryResponse is the detailed tracking read model. The
// struct is JSON-tagged because responses are cached serialized.
type GetShipmentTimelineQueryResponse struct {
	AWB               string                  `json:"awb"`
	Status            string                  `json:"status"`
	IsRTO             bool                    `json:"isRto"`
	Events            []TimelineEventResponse `json:"events"`
	RiderTrail        []RiderPingResponse     `json:"riderTrail,omitempty"`
	EstimateAvailable bool                    `json:"estimateAvailable"`
	Estimate          string                  `json:"estimate,omitempty"`
}
