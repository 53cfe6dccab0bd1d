package queries

import (
	"context"

	"parcelhub/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

// GetHubInventoryQueryHandler retrieves the current hub floor inventory from
// the database.
type GetHubInventoryQueryHandler struct {
	db *gorm.DB
}

// NewGetHubInventoryQueryHandler creates a handler for hub inventory queries.
func NewGetHubInventoryQueryHandler(db *gorm.DB) GetHubInventoryQueryHandler {
	return GetHubInventoryQueryHandler{db: db}
}

// Handle executes the inventory query. A parcel is on the floor when its
// latest scan placed it at the hub, either inbound on the forward leg or
// inbound on the return leg; updated_at is its arrival scan time. Oldest
// arrivals come first so staff see what has been waiting longest.
func (h GetHubInventoryQueryHandler) Handle(
	ctx context.Context,
	query GetHubInventoryQuery,
) (GetHubInventoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetHubInventoryQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			awb,
			is_rto,
			updated_at
		FROM shipments
		WHERE status IN (?, ?) AND current_hub = ?
		ORDER BY updated_at
	`, shipment.InHub.String(), shipment.RTOInTransit.String(), query.Hub().String()).Rows()
	if err != nil {
		return GetHubInventoryQueryResponse{}, err
	}
	defer rows.Close()

	resp := GetHubInventoryQueryResponse{
		Hub:   query.Hub().String(),
		Items: make([]HubInventoryItem, 0),
	}

	for rows.Next() {
		var item HubInventoryItem
		if err = rows.Scan(&item.AWB, &item.IsRTO, &item.ArrivedAt); err != nil {
			return GetHubInventoryQueryResponse{}, err
		}

		resp.Items = append(resp.Items, item)
		resp.Total++
		if item.IsRTO {
			resp.RTOCount++
		}
	}

	if err = rows.Err(); err != nil {
		return GetHubInventoryQueryResponse{}, err
	}

	return resp, nil
}
