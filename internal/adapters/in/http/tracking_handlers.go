package http

import (
	"net/http"
	"time"

	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// TrackShipmentHandler handles GET /api/v1/tracking/:awb. The route is
// public; passing phone_last4 matching the receiver's number unlocks the
// personal details.
func (s *Server) TrackShipmentHandler(ctx echo.Context) error {
	awb, err := shipment.AWBFromString(ctx.Param("awb"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewTrackShipmentQuery(awb, ctx.QueryParam("phone_last4"))
	if err != nil {
		return writeError(ctx, err)
	}

	tracking, err := s.handlers.TrackShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, trackShipmentResponse{
		AWB:               tracking.AWB,
		Status:            tracking.Status,
		IsRTO:             tracking.IsRTO,
		CurrentHub:        tracking.CurrentHub,
		BookedAt:          tracking.BookedAt,
		DeliveredAt:       tracking.DeliveredAt,
		EstimateAvailable: tracking.EstimateAvailable,
		Estimate:          tracking.Estimate,
		Verified:          tracking.Verified,
		ReceiverName:      tracking.ReceiverName,
		ReceiverAddress:   tracking.ReceiverAddress,
		PaymentMethod:     tracking.PaymentMethod,
		CODAmount:         tracking.CODAmount,
		DeliveryAttempts:  tracking.DeliveryAttempts,
		RTOReason:         tracking.RTOReason,
	})
}

// ShipmentTimelineHandler handles GET /api/v1/shipments/:awb/timeline. This
// is the authenticated detailed view with the full event timeline and the
// rider's location trail.
func (s *Server) ShipmentTimelineHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionViewTracking, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	awb, err := shipment.AWBFromString(ctx.Param("awb"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetShipmentTimelineQuery(awb)
	if err != nil {
		return writeError(ctx, err)
	}

	timeline, err := s.handlers.ShipmentTimeline.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, timeline)
}

// SLAStatisticsHandler handles GET /api/v1/sla/statistics.
func (s *Server) SLAStatisticsHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionCheckSLA, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetSLAStatisticsQuery(time.Now().UTC())
	if err != nil {
		return writeError(ctx, err)
	}

	stats, err := s.handlers.SLAStatistics.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, slaStatisticsResponse{
		PickupOverdue:   stats.PickupOverdue,
		DeliveryOverdue: stats.DeliveryOverdue,
		InTransitStale:  stats.InTransitStale,
		TotalBreaching:  stats.TotalBreaching(),
		GeneratedAt:     stats.GeneratedAt,
	})
}

// CheckShipmentSLAHandler handles GET /api/v1/shipments/:awb/sla.
func (s *Server) CheckShipmentSLAHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionCheckSLA, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	awb, err := shipment.AWBFromString(ctx.Param("awb"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewCheckShipmentSLAQuery(awb, time.Now().UTC())
	if err != nil {
		return writeError(ctx, err)
	}

	check, err := s.handlers.CheckShipmentSLA.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	violations := make([]slaViolationResponse, 0, len(check.Violations))
	for _, v := range check.Violations {
		violations = append(violations, slaViolationResponse{
			Rule:           v.Rule,
			OverdueSeconds: int64(v.Overdue.Seconds()),
		})
	}

	return ctx.JSON(http.StatusOK, shipmentSLAResponse{
		AWB:        check.AWB,
		Status:     check.Status,
		Violations: violations,
	})
}
