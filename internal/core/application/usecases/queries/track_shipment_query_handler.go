package queries

import (
	"context"
	"strings"
	"time"

	"parcelhub/internal/core/domain/services"

	"gorm.io/gorm"
)

// TrackShipmentQueryHandler serves the public tracking lookup. The shipment
// row is restored to the domain aggregate so the delivery estimate comes from
// the same service the operational views use.
type TrackShipmentQueryHandler struct {
	db      *gorm.DB
	builder services.TimelineBuilder
}

// NewTrackShipmentQueryHandler creates a handler for tracking lookups.
func NewTrackShipmentQueryHandler(db *gorm.DB) TrackShipmentQueryHandler {
	return TrackShipmentQueryHandler{
		db:      db,
		builder: services.NewTimelineBuilder(),
	}
}

// Handle executes the tracking lookup. A wrong phone suffix does not fail the
// query; the caller simply gets the public view with Verified false, so the
// endpoint leaks nothing about which digits were wrong.
func (h TrackShipmentQueryHandler) Handle(
	ctx context.Context,
	query TrackShipmentQuery,
) (TrackShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackShipmentQueryResponse{}, err
	}

	sh, err := loadShipmentByAWB(ctx, h.db, query.AWB().String())
	if err != nil {
		return TrackShipmentQueryResponse{}, err
	}

	eta, err := h.builder.EstimateDelivery(sh, time.Now().UTC())
	if err != nil {
		return TrackShipmentQueryResponse{}, err
	}

	resp := TrackShipmentQueryResponse{
		AWB:               sh.AWB().String(),
		Status:            sh.Status().String(),
		IsRTO:             sh.IsRTO(),
		BookedAt:          sh.CreatedAt(),
		DeliveredAt:       sh.ActualDeliveryDate(),
		EstimateAvailable: eta.Available,
		Estimate:          eta.Text,
	}
	if hub := sh.CurrentHub(); hub != nil {
		resp.CurrentHub = hub.String()
	}

	if phoneMatches(sh.ReceiverPhone(), query.PhoneLast4()) {
		resp.Verified = true
		resp.ReceiverName = sh.ReceiverName()
		resp.ReceiverAddress = sh.ReceiverAddress()
		resp.PaymentMethod = sh.PaymentMethod().String()
		resp.CODAmount = sh.CODAmount().String()
		resp.DeliveryAttempts = sh.DeliveryAttempts()
		resp.RTOReason = sh.RTOReason()
	}

	return resp, nil
}

func phoneMatches(phone, last4 string) bool {
	return len(last4) == 4 && strings.HasSuffix(phone, last4)
}
