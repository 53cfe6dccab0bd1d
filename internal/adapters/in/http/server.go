// Package http exposes the application's use cases over a REST API. Handlers
// translate between wire DTOs and commands or queries, authorize the caller
// against the identity headers, and map error classes onto HTTP statuses.
package http

import (
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the command and query handlers the server dispatches to.
type Handlers struct {
	CreateShipment      commands.CreateShipmentCommandHandler
	CancelShipment      commands.CancelShipmentCommandHandler
	AssignPickup        commands.AssignPickupCommandHandler
	CompletePickup      commands.CompletePickupCommandHandler
	InboundScan         commands.InboundScanCommandHandler
	OutboundScan        commands.OutboundScanCommandHandler
	GenerateOtp         commands.GenerateOtpCommandHandler
	CompleteDelivery    commands.CompleteDeliveryCommandHandler
	FailDelivery        commands.FailDeliveryCommandHandler
	MarkRTO             commands.MarkRTOCommandHandler
	CompleteRTOReturn   commands.CompleteRTOReturnCommandHandler
	CreateManifest      commands.CreateManifestCommandHandler
	ReceiveManifest     commands.ReceiveManifestCommandHandler
	CloseManifest       commands.CloseManifestCommandHandler
	RecordRiderLocation commands.RecordRiderLocationCommandHandler

	TrackShipment    queries.TrackShipmentQueryHandler
	ShipmentTimeline queries.GetShipmentTimelineQueryHandler
	ListManifests    queries.ListManifestsQueryHandler
	HubInventory     queries.GetHubInventoryQueryHandler
	SLAStatistics    queries.GetSLAStatisticsQueryHandler
	CheckShipmentSLA queries.CheckShipmentSLAQueryHandler
}

// Server routes HTTP requests to the application layer.
type Server struct {
	handlers Handlers
}

// NewServer creates a server over the given handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes attaches all endpoints under /api/v1. The tracking summary
// is the only route that works without identity headers.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/shipments", s.CreateShipmentHandler)
	api.POST("/shipments/:awb/cancel", s.CancelShipmentHandler)
	api.POST("/shipments/:awb/otp", s.GenerateOtpHandler)
	api.POST("/shipments/:awb/delivery", s.CompleteDeliveryHandler)
	api.POST("/shipments/:awb/delivery-failures", s.FailDeliveryHandler)
	api.POST("/shipments/:awb/rto", s.MarkRTOHandler)
	api.POST("/shipments/:awb/rto-return", s.CompleteRTOReturnHandler)
	api.GET("/shipments/:awb/timeline", s.ShipmentTimelineHandler)
	api.GET("/shipments/:awb/sla", s.CheckShipmentSLAHandler)

	api.POST("/pickups/:pickupId/assign", s.AssignPickupHandler)
	api.POST("/pickups/:pickupId/complete", s.CompletePickupHandler)

	api.POST("/hubs/:hub/scans/inbound", s.InboundScanHandler)
	api.POST("/hubs/:hub/scans/outbound", s.OutboundScanHandler)
	api.GET("/hubs/:hub/inventory", s.HubInventoryHandler)

	api.POST("/manifests", s.CreateManifestHandler)
	api.POST("/manifests/:manifestId/receive", s.ReceiveManifestHandler)
	api.POST("/manifests/:manifestId/close", s.CloseManifestHandler)
	api.GET("/manifests", s.ListManifestsHandler)

	api.POST("/riders/:riderId/locations", s.RecordRiderLocationHandler)

	api.GET("/sla/statistics", s.SLAStatisticsHandler)

	// Public: the response hides personal details unless the caller proves
	// the receiver's phone suffix.
	api.GET("/tracking/:awb", s.TrackShipmentHandler)
}
