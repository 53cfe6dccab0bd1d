package queries

import (
	"context"
	"database/sql"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListManifestsQueryHandler retrieves manifest listings from the database.
type ListManifestsQueryHandler struct {
	db *gorm.DB
}

// NewListManifestsQueryHandler creates a handler for manifest listings.
func NewListManifestsQueryHandler(db *gorm.DB) ListManifestsQueryHandler {
	return ListManifestsQueryHandler{db: db}
}

// Handle executes the listing. Results are ordered by dispatch date
// descending so the most recent linehauls come first.
func (h ListManifestsQueryHandler) Handle(
	ctx context.Context,
	query ListManifestsQuery,
) ([]ListManifestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	conditions := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if hub := query.OriginHub(); hub != nil {
		conditions = append(conditions, "origin_hub = ?")
		args = append(args, hub.String())
	}

	if hub := query.DestinationHub(); hub != nil {
		conditions = append(conditions, "destination_hub = ?")
		args = append(args, hub.String())
	}

	if status := query.Status(); status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, status.String())
	}

	if day := query.Day(); day != nil {
		// Manifest numbers embed the dispatch day, so the day filter is a
		// prefix match instead of a timezone-sensitive date range.
		conditions = append(conditions, "number LIKE ?")
		args = append(args, manifest.DayPrefix(*day)+"%")
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			origin_hub,
			destination_hub,
			status,
			total_shipments,
			dispatch_date,
			received_date,
			notes
		FROM manifests
		`+where+`
		ORDER BY dispatch_date DESC
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	manifests := make([]ListManifestsQueryResponse, 0)
	for rows.Next() {
		var (
			resp         ListManifestsQueryResponse
			id           uuid.UUID
			receivedDate sql.NullTime
		)

		err = rows.Scan(
			&id,
			&resp.Number,
			&resp.OriginHub,
			&resp.DestinationHub,
			&resp.Status,
			&resp.TotalShipments,
			&resp.DispatchDate,
			&receivedDate,
			&resp.Notes,
		)
		if err != nil {
			return nil, err
		}

		manifestID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = manifestID
		resp.ReceivedDate = nullTime(receivedDate)

		manifests = append(manifests, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return manifests, nil
}
