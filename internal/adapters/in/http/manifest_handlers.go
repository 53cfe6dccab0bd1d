package http

import (
	"net/http"
	"time"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// InboundScanHandler handles POST /api/v1/hubs/:hub/scans/inbound. The batch
// is all-or-nothing: one invalid number rejects the whole scan.
func (s *Server) InboundScanHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionScanInbound, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	hub, err := kernel.NewHubCode(ctx.Param("hub"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req inboundScanRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	awbs, err := parseAWBs(req.AWBs)
	if err != nil {
		return writeError(ctx, err)
	}

	var manifestID *kernel.UUID
	if req.ManifestID != nil {
		id, idErr := kernel.UUIDFromString(*req.ManifestID)
		if idErr != nil {
			return writeError(ctx, idErr)
		}
		manifestID = &id
	}

	cmd, err := commands.NewInboundScanCommand(awbs, hub, manifestID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.InboundScan.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// OutboundScanHandler handles POST /api/v1/hubs/:hub/scans/outbound. Exactly
// one of next_hub and rider_id names the destination for the whole batch.
func (s *Server) OutboundScanHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionScanOutbound, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	origin, err := kernel.NewHubCode(ctx.Param("hub"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req outboundScanRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	awbs, err := parseAWBs(req.AWBs)
	if err != nil {
		return writeError(ctx, err)
	}

	var nextHub *kernel.HubCode
	if req.NextHub != nil {
		code, hubErr := kernel.NewHubCode(*req.NextHub)
		if hubErr != nil {
			return writeError(ctx, hubErr)
		}
		nextHub = &code
	}

	var riderID *kernel.UUID
	if req.RiderID != nil {
		id, idErr := kernel.UUIDFromString(*req.RiderID)
		if idErr != nil {
			return writeError(ctx, idErr)
		}
		riderID = &id
	}

	cmd, err := commands.NewOutboundScanCommand(awbs, origin, nextHub, riderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.OutboundScan.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateManifestHandler handles POST /api/v1/manifests.
func (s *Server) CreateManifestHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionCreateManifest, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	var req createManifestRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	awbs, err := parseAWBs(req.AWBs)
	if err != nil {
		return writeError(ctx, err)
	}

	originHub, err := kernel.NewHubCode(req.OriginHub)
	if err != nil {
		return writeError(ctx, err)
	}
	destinationHub, err := kernel.NewHubCode(req.DestinationHub)
	if err != nil {
		return writeError(ctx, err)
	}

	manifestID := kernel.NewUUID()
	cmd, err := commands.NewCreateManifestCommand(manifestID, awbs, originHub, destinationHub)
	if err != nil {
		return writeError(ctx, err)
	}

	number, err := s.handlers.CreateManifest.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createManifestResponse{
		ID:     manifestID.String(),
		Number: number,
	})
}

// ReceiveManifestHandler handles POST /api/v1/manifests/:manifestId/receive.
// The response partitions expected against scanned tracking numbers.
func (s *Server) ReceiveManifestHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionReceiveManifest, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	manifestID, err := kernel.UUIDFromString(ctx.Param("manifestId"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req receiveManifestRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	scanned, err := parseAWBs(req.ScannedAWBs)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewReceiveManifestCommand(manifestID, scanned)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.handlers.ReceiveManifest.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, receiveManifestResponse{
		Received:      result.Received,
		NotInManifest: result.NotInManifest,
		NotReceived:   result.NotReceived,
	})
}

// CloseManifestHandler handles POST /api/v1/manifests/:manifestId/close.
func (s *Server) CloseManifestHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionCloseManifest, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	manifestID, err := kernel.UUIDFromString(ctx.Param("manifestId"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCloseManifestCommand(manifestID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.CloseManifest.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListManifestsHandler handles GET /api/v1/manifests. All query parameters
// are optional filters; day takes YYYY-MM-DD.
func (s *Server) ListManifestsHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionViewTracking, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	var originHub, destinationHub *kernel.HubCode
	if raw := ctx.QueryParam("origin_hub"); raw != "" {
		code, hubErr := kernel.NewHubCode(raw)
		if hubErr != nil {
			return writeError(ctx, hubErr)
		}
		originHub = &code
	}
	if raw := ctx.QueryParam("destination_hub"); raw != "" {
		code, hubErr := kernel.NewHubCode(raw)
		if hubErr != nil {
			return writeError(ctx, hubErr)
		}
		destinationHub = &code
	}

	var status *manifest.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		st, stErr := manifest.StatusFromString(raw)
		if stErr != nil {
			return badRequest(ctx, "invalid manifest status: "+raw)
		}
		status = &st
	}

	var day *time.Time
	if raw := ctx.QueryParam("day"); raw != "" {
		parsed, dayErr := time.Parse("2006-01-02", raw)
		if dayErr != nil {
			return badRequest(ctx, "invalid day, expected YYYY-MM-DD: "+raw)
		}
		day = &parsed
	}

	query, err := queries.NewListManifestsQuery(originHub, destinationHub, status, day)
	if err != nil {
		return writeError(ctx, err)
	}

	manifests, err := s.handlers.ListManifests.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]manifestListItemResponse, 0, len(manifests))
	for _, m := range manifests {
		response = append(response, manifestListItemResponse{
			ID:             m.ID.String(),
			Number:         m.Number,
			OriginHub:      m.OriginHub,
			DestinationHub: m.DestinationHub,
			Status:         m.Status,
			TotalShipments: m.TotalShipments,
			DispatchDate:   m.DispatchDate,
			ReceivedDate:   m.ReceivedDate,
			Notes:          m.Notes,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// HubInventoryHandler handles GET /api/v1/hubs/:hub/inventory.
func (s *Server) HubInventoryHandler(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	if err = services.Authorize(actor, services.ActionViewTracking, services.Target{}); err != nil {
		return writeError(ctx, err)
	}

	hub, err := kernel.NewHubCode(ctx.Param("hub"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetHubInventoryQuery(hub)
	if err != nil {
		return writeError(ctx, err)
	}

	inventory, err := s.handlers.HubInventory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]hubInventoryItemResponse, 0, len(inventory.Items))
	for _, item := range inventory.Items {
		items = append(items, hubInventoryItemResponse{
			AWB:       item.AWB,
			IsRTO:     item.IsRTO,
			ArrivedAt: item.ArrivedAt,
		})
	}

	return ctx.JSON(http.StatusOK, hubInventoryResponse{
		Hub:      inventory.Hub,
		Total:    inventory.Total,
		RTOCount: inventory.RTOCount,
		Items:    items,
	})
}

// parseAWBs converts raw tracking numbers, stopping at the first invalid one.
func parseAWBs(raw []string) ([]shipment.AWB, error) {
	awbs := make([]shipment.AWB, 0, len(raw))
	for _, r := range raw {
		awb, err := shipment.AWBFromString(r)
		if err != nil {
			return nil, err
		}
		awbs = append(awbs, awb)
	}
	return awbs, nil
}
