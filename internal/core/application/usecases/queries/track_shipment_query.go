// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases and bypass the
// write-side unit of work; handlers read straight from the database.
package queries

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"
)

var ErrTrackShipmentQueryIsNotConstructed = errors.New(
	"TrackShipmentQuery must be created via NewTrackShipmentQuery constructor",
)

// TrackShipmentQuery retrieves the public tracking view of a shipment by its
// AWB number. This is the unauthenticated receiver-facing lookup: anyone who
// knows the tracking number sees the coarse status, and supplying the last
// four digits of the receiver's phone unlocks the personal details.
type TrackShipmentQuery struct { //nolint:recvcheck //using for validation
	awb        shipment.AWB
	phoneLast4 string

	guard guard.ConstructorGuard
}

// NewTrackShipmentQuery creates a tracking query. phoneLast4 may be empty for
// the public view.
func NewTrackShipmentQuery(awb shipment.AWB, phoneLast4 string) (TrackShipmentQuery, error) {
	q := TrackShipmentQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := awb.Validate(); err != nil {
		return TrackShipmentQuery{}, err
	}

	q.awb = awb
	q.phoneLast4 = phoneLast4
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackShipmentQuery) Validate() error {
	return q.guard.Validate(ErrTrackShipmentQueryIsNotConstructed)
}

// AWB returns the tracking number being looked up.
func (q TrackShipmentQuery) AWB() shipment.AWB { return q.awb }

// PhoneLast4 returns the verification digits, empty for the public view.
func (q TrackShipmentQuery) PhoneLast4() string { return q.phoneLast4 }

// TrackShipmentQueryResponse is the receiver-facing tracking read model.
// The fields after Verified are only populated when the phone check passed.
type TrackShipmentQueryResponse struct {
	AWB               string
	Status            string
	IsRTO             bool
	CurrentHub        string
	BookedAt          time.Time
	DeliveredAt       *time.Time
	EstimateAvailable bool
	Estimate          string

	Verified         bool
	ReceiverName     string
	ReceiverAddress  string
	PaymentMethod    string
	CODAmount        string
	DeliveryAttempts int
	RTOReason        string
}
