package queries_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// noopTracker satisfies the repositories' aggregate tracker when the tests
// only care about the stored rows.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// shipmentSeed describes a stored shipment row for read-model tests. Zero
// values fall back to a plain prepaid pending shipment.
type shipmentSeed struct {
	status     shipment.Status
	hub        string
	riderID    *kernel.UUID
	pickupID   *kernel.UUID
	manifestID *kernel.UUID
	attempts   int
	isRTO      bool
	rtoReason  string
	phone      string
	createdAt  time.Time
	updatedAt  time.Time
	delivered  *time.Time
}

func restoreSeedShipment(t *testing.T, seed shipmentSeed) *shipment.Shipment {
	t.Helper()

	status := seed.status
	if status == shipment.Unknown {
		status = shipment.Pending
	}

	phone := seed.phone
	if phone == "" {
		phone = "9876543210"
	}

	createdAt := seed.createdAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC().Add(-2 * time.Hour)
	}

	updatedAt := seed.updatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	var hub *kernel.HubCode
	if seed.hub != "" {
		code, err := kernel.NewHubCode(seed.hub)
		require.NoError(t, err)
		hub = &code
	}

	sh, err := shipment.RestoreShipment(shipment.RestoreShipmentParams{
		ID:                 kernel.NewUUID(),
		AWB:                shipment.NewAWB(),
		MerchantID:         kernel.NewUUID(),
		Status:             status,
		ReceiverName:       "Asha Rao",
		ReceiverPhone:      phone,
		ReceiverAddress:    "12 Lake View Road",
		CurrentHub:         hub,
		RiderID:            seed.riderID,
		PickupID:           seed.pickupID,
		ManifestID:         seed.manifestID,
		DeliveryAttempts:   seed.attempts,
		IsRTO:              seed.isRTO,
		RTOReason:          seed.rtoReason,
		PaymentMethod:      shipment.Prepaid,
		CODAmount:          decimal.Zero,
		PaymentStatus:      shipment.PaymentCollected,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
		ActualDeliveryDate: seed.delivered,
		Version:            1,
	})
	require.NoError(t, err)
	return sh
}
