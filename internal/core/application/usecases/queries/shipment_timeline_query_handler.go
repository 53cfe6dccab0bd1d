package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/domain/model/pickup"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// timelineCacheTTL bounds how stale a cached timeline may be. Timelines only
// change on scans, so a minute of staleness is invisible to callers while it
// absorbs the polling traffic tracking pages generate.
const timelineCacheTTL = time.Minute

// GetShipmentTimelineQueryHandler reconstructs the detailed tracking timeline
// from the shipment, its pickup, its manifest and the rider's GPS trail.
// Responses are cached briefly; cache failures degrade to a rebuild, never to
// an error.
type GetShipmentTimelineQueryHandler struct {
	db      *gorm.DB
	cache   ports.Cache
	builder services.TimelineBuilder
	logger  *slog.Logger
}

// NewGetShipmentTimelineQueryHandler creates a handler for timeline queries.
func NewGetShipmentTimelineQueryHandler(
	db *gorm.DB,
	cache ports.Cache,
	logger *slog.Logger,
) GetShipmentTimelineQueryHandler {
	return GetShipmentTimelineQueryHandler{
		db:      db,
		cache:   cache,
		builder: services.NewTimelineBuilder(),
		logger:  logger,
	}
}

// Handle executes the timeline query.
func (h GetShipmentTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentTimelineQuery,
) (GetShipmentTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentTimelineQueryResponse{}, err
	}

	cacheKey := "timeline:" + query.AWB().String()
	if cached, err := h.cache.Get(ctx, cacheKey); err == nil {
		var resp GetShipmentTimelineQueryResponse
		if err = json.Unmarshal([]byte(cached), &resp); err == nil {
			return resp, nil
		}
		h.logger.Warn("discarding unreadable cached timeline",
			slog.String("awb", query.AWB().String()), slog.Any("error", err))
	}

	sh, err := loadShipmentByAWB(ctx, h.db, query.AWB().String())
	if err != nil {
		return GetShipmentTimelineQueryResponse{}, err
	}

	input := services.TimelineInput{Shipment: sh}

	if pickupID := sh.PickupID(); pickupID != nil {
		input.Pickup, err = h.loadPickup(ctx, *pickupID)
		if err != nil {
			return GetShipmentTimelineQueryResponse{}, err
		}
	}

	if manifestID := sh.ManifestID(); manifestID != nil {
		input.Manifest, err = h.loadManifest(ctx, *manifestID)
		if err != nil {
			return GetShipmentTimelineQueryResponse{}, err
		}
	}

	trail, err := h.loadTrail(ctx, sh.ID())
	if err != nil {
		return GetShipmentTimelineQueryResponse{}, err
	}
	if len(trail) > 0 {
		input.FirstRiderPing = &trail[0].RecordedAt
	}

	now := time.Now().UTC()

	events, err := h.builder.Build(input, now)
	if err != nil {
		return GetShipmentTimelineQueryResponse{}, err
	}

	eta, err := h.builder.EstimateDelivery(sh, now)
	if err != nil {
		return GetShipmentTimelineQueryResponse{}, err
	}

	resp := GetShipmentTimelineQueryResponse{
		AWB:               sh.AWB().String(),
		Status:            sh.Status().String(),
		IsRTO:             sh.IsRTO(),
		Events:            make([]TimelineEventResponse, 0, len(events)),
		RiderTrail:        trail,
		EstimateAvailable: eta.Available,
		Estimate:          eta.Text,
	}
	for _, e := range events {
		resp.Events = append(resp.Events, TimelineEventResponse{
			Code:        e.Code,
			Description: e.Description,
			Approximate: e.Approximate,
			At:          e.At,
		})
	}

	h.store(ctx, cacheKey, resp)

	return resp, nil
}

func (h GetShipmentTimelineQueryHandler) store(
	ctx context.Context,
	key string,
	resp GetShipmentTimelineQueryResponse,
) {
	encoded, err := json.Marshal(resp)
	if err != nil {
		h.logger.Warn("timeline cache encode failed", slog.Any("error", err))
		return
	}

	if err = h.cache.SetWithTTL(ctx, key, string(encoded), timelineCacheTTL); err != nil {
		h.logger.Warn("timeline cache store failed",
			slog.String("key", key), slog.Any("error", err))
	}
}

func (h GetShipmentTimelineQueryHandler) loadPickup(
	ctx context.Context,
	id kernel.UUID,
) (*pickup.Pickup, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			merchant_id,
			agent_id,
			status,
			scheduled_date,
			completed_at,
			version
		FROM pickups
		WHERE id = ?
	`, id.Bytes()).Row()

	var (
		pickupID      uuid.UUID
		merchantID    uuid.UUID
		agentID       uuid.NullUUID
		status        string
		scheduledDate time.Time
		completedAt   sql.NullTime
		version       int
	)

	err := row.Scan(&pickupID, &merchantID, &agentID, &status, &scheduledDate, &completedAt, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// A dangling pickup reference only costs timeline detail.
			return nil, nil
		}
		return nil, err
	}

	pID, err := kernel.UUIDFromBytes(pickupID[:])
	if err != nil {
		return nil, err
	}

	mID, err := kernel.UUIDFromBytes(merchantID[:])
	if err != nil {
		return nil, err
	}

	aID, err := nullUUID(agentID)
	if err != nil {
		return nil, err
	}

	statusValue, err := pickup.StatusFromString(status)
	if err != nil {
		return nil, err
	}

	return pickup.RestorePickup(pID, mID, aID, statusValue, scheduledDate, nullTime(completedAt), version)
}

func (h GetShipmentTimelineQueryHandler) loadManifest(
	ctx context.Context,
	id kernel.UUID,
) (*manifest.Manifest, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			origin_hub,
			destination_hub,
			status,
			total_shipments,
			dispatch_date,
			received_date,
			notes,
			version
		FROM manifests
		WHERE id = ?
	`, id.Bytes()).Row()

	var (
		manifestID     uuid.UUID
		number         string
		originHub      string
		destinationHub string
		status         string
		totalShipments int
		dispatchDate   time.Time
		receivedDate   sql.NullTime
		notes          string
		version        int
	)

	err := row.Scan(
		&manifestID, &number, &originHub, &destinationHub,
		&status, &totalShipments, &dispatchDate, &receivedDate, &notes, &version,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	mID, err := kernel.UUIDFromBytes(manifestID[:])
	if err != nil {
		return nil, err
	}

	origin, err := kernel.NewHubCode(originHub)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewHubCode(destinationHub)
	if err != nil {
		return nil, err
	}

	statusValue, err := manifest.StatusFromString(status)
	if err != nil {
		return nil, err
	}

	return manifest.RestoreManifest(
		mID, number, origin, destination, statusValue,
		totalShipments, dispatchDate, nullTime(receivedDate), notes, version,
	)
}

func (h GetShipmentTimelineQueryHandler) loadTrail(
	ctx context.Context,
	shipmentID kernel.UUID,
) ([]RiderPingResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			lat,
			lng,
			recorded_at
		FROM rider_locations
		WHERE shipment_id = ?
		ORDER BY recorded_at
	`, shipmentID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trail := make([]RiderPingResponse, 0)
	for rows.Next() {
		var ping RiderPingResponse
		if err = rows.Scan(&ping.Lat, &ping.Lng, &ping.RecordedAt); err != nil {
			return nil, err
		}
		trail = append(trail, ping)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return trail, nil
}
