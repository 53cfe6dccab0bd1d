package http

import (
	"net/http"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// CreateShipmentHandler handles POST /api/v1/shipments.
func (s *Server) CreateShipmentHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionCreateShipment, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	var req createShipmentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	merchantID, err := kernel.UUIDFromString(req.MerchantID)
	if err != nil {
		return writeError(ctx, err)
	}

	method, err := shipment.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return badRequest(ctx, "invalid payment method: "+req.PaymentMethod)
	}

	codAmount := decimal.Zero
	if req.CODAmount != "" {
		codAmount, err = decimal.NewFromString(req.CODAmount)
		if err != nil {
			return badRequest(ctx, "invalid cod amount: "+req.CODAmount)
		}
	}

	cmd, err := commands.NewCreateShipmentCommand(
		kernel.NewUUID(),
		kernel.NewUUID(),
		merchantID,
		req.ReceiverName,
		req.ReceiverPhone,
		req.ReceiverAddress,
		method,
		codAmount,
		req.PickupScheduledDate,
		req.ExpectedDeliveryDate,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	awb, err := s.handlers.CreateShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createShipmentResponse{AWB: awb.String()})
}

// CancelShipmentHandler handles POST /api/v1/shipments/:awb/cancel.
func (s *Server) CancelShipmentHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionCancelShipment, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	awb, err := shipment.AWBFromString(ctx.Param("awb"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelShipmentCommand(awb)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.CancelShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GenerateOtpHandler handles POST /api/v1/shipments/:awb/otp. The code is
// delivered to the receiver, never returned to the rider.
func (s *Server) GenerateOtpHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionGenerateOTP, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	awb, err := shipment.AWBFromString(ctx.Param("awb"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewGenerateOtpCommand(awb, actor.ID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.GenerateOtp.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDeliveryHandler handles POST /api/v1/shipments/:awb/delivery.
func (s *Server) CompleteDeliveryHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionCompleteDelivery, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	awb, err := shipment.AWBFromString(ctx.Param("awb"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req completeDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	collected := decimal.Zero
	if req.CollectedAmount != "" {
		collected, err = decimal.NewFromString(req.CollectedAmount)
		if err != nil {
			return badRequest(ctx, "invalid collected amount: "+req.CollectedAmount)
		}
	}

	cmd, err := commands.NewCompleteDeliveryCommand(awb, actor.ID, req.OTP, collected, req.ReceivedBy, req.PODNote)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.CompleteDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FailDeliveryHandler handles POST /api/v1/shipments/:awb/delivery-failures.
// The response reports whether the attempt escalated to return-to-origin.
func (s *Server) FailDeliveryHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionFailDelivery, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	awb, err := shipment.AWBFromString(ctx.Param("awb"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req failDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewFailDeliveryCommand(awb, actor.ID, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	autoRTO, err := s.handlers.FailDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, failDeliveryResponse{AutoRTO: autoRTO})
}

// MarkRTOHandler handles POST /api/v1/shipments/:awb/rto.
func (s *Server) MarkRTOHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionMarkRTO, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	awb, err := shipment.AWBFromString(ctx.Param("awb"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req markRTORequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewMarkRTOCommand(awb, actor.ID, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.MarkRTO.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteRTOReturnHandler handles POST /api/v1/shipments/:awb/rto-return.
func (s *Server) CompleteRTOReturnHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionCompleteRTOReturn, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	awb, err := shipment.AWBFromString(ctx.Param("awb"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCompleteRTOReturnCommand(awb)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.CompleteRTOReturn.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignPickupHandler handles POST /api/v1/pickups/:pickupId/assign.
func (s *Server) AssignPickupHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionAssignPickup, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	pickupID, err := kernel.UUIDFromString(ctx.Param("pickupId"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req assignPickupRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	shipmentID, err := kernel.UUIDFromString(req.ShipmentID)
	if err != nil {
		return writeError(ctx, err)
	}
	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignPickupCommand(pickupID, shipmentID, agentID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.AssignPickup.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompletePickupHandler handles POST /api/v1/pickups/:pickupId/complete.
func (s *Server) CompletePickupHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionCompletePickup, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	pickupID, err := kernel.UUIDFromString(ctx.Param("pickupId"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req completePickupRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	shipmentID, err := kernel.UUIDFromString(req.ShipmentID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCompletePickupCommand(pickupID, shipmentID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.CompletePickup.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordRiderLocationHandler handles POST /api/v1/riders/:riderId/locations.
func (s *Server) RecordRiderLocationHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionRecordLocation, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	riderID, err := kernel.UUIDFromString(ctx.Param("riderId"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req recordRiderLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var shipmentID *kernel.UUID
	if req.ShipmentID != nil {
		id, idErr := kernel.UUIDFromString(*req.ShipmentID)
		if idErr != nil {
			return writeError(ctx, idErr)
		}
		shipmentID = &id
	}

	point, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRecordRiderLocationCommand(
		kernel.NewUUID(),
		riderID,
		shipmentID,
		point,
		req.RecordedAt,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.RecordRiderLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}
