package services_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func mustPolicy(t *testing.T) services.SLAPolicy {
	t.Helper()

	policy, err := services.NewSLAPolicy(24*time.Hour, 72*time.Hour, 48*time.Hour)
	require.NoError(t, err)
	return policy
}

func restoreShipment(t *testing.T, status shipment.Status, createdAt, updatedAt time.Time) *shipment.Shipment {
	t.Helper()

	awb, err := shipment.AWBFromString("PH0000000042")
	require.NoError(t, err)

	sh, err := shipment.RestoreShipment(shipment.RestoreShipmentParams{
		ID:              kernel.NewUUID(),
		AWB:             awb,
		MerchantID:      kernel.NewUUID(),
		Status:          status,
		ReceiverName:    "Asha Rao",
		ReceiverPhone:   "9876543210",
		ReceiverAddress: "12 Lake View Road",
		PaymentMethod:   shipment.Prepaid,
		PaymentStatus:   shipment.PaymentCollected,
		CODAmount:       decimal.Zero,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
		Version:         1,
	})
	require.NoError(t, err)
	return sh
}

func TestNewSLAPolicy(t *testing.T) {
	t.Run("rejects non positive thresholds", func(t *testing.T) {
		_, err := services.NewSLAPolicy(0, 72*time.Hour, 48*time.Hour)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = services.NewSLAPolicy(24*time.Hour, -time.Hour, 48*time.Hour)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestSLAPolicyEvaluate(t *testing.T) {
	policy := mustPolicy(t)

	t.Run("pending shipment past pickup threshold", func(t *testing.T) {
		sh := restoreShipment(t, shipment.Pending, now.Add(-30*time.Hour), now.Add(-30*time.Hour))

		violations, err := policy.Evaluate(sh, now)

		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, services.PickupOverdue, violations[0].Kind)
		assert.Equal(t, 6*time.Hour, violations[0].Overdue)
		assert.Equal(t, sh.AWB().String(), violations[0].AWB)
	})

	t.Run("fresh pending shipment is clean", func(t *testing.T) {
		sh := restoreShipment(t, shipment.Pending, now.Add(-2*time.Hour), now.Add(-2*time.Hour))

		violations, err := policy.Evaluate(sh, now)

		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("delivery leg past delivery threshold", func(t *testing.T) {
		sh := restoreShipment(t, shipment.OutForDelivery, now.Add(-80*time.Hour), now.Add(-time.Hour))

		violations, err := policy.Evaluate(sh, now)

		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, services.DeliveryOverdue, violations[0].Kind)
	})

	t.Run("stale in transit shipment breaches two rules", func(t *testing.T) {
		sh := restoreShipment(t, shipment.InTransit, now.Add(-100*time.Hour), now.Add(-50*time.Hour))

		violations, err := policy.Evaluate(sh, now)

		require.NoError(t, err)
		require.Len(t, violations, 2)
		assert.Equal(t, services.DeliveryOverdue, violations[0].Kind)
		assert.Equal(t, services.InTransitStale, violations[1].Kind)
	})

	t.Run("recently scanned in transit shipment only breaches delivery", func(t *testing.T) {
		sh := restoreShipment(t, shipment.InTransit, now.Add(-100*time.Hour), now.Add(-time.Hour))

		violations, err := policy.Evaluate(sh, now)

		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, services.DeliveryOverdue, violations[0].Kind)
	})

	t.Run("delivered shipment is never evaluated as late", func(t *testing.T) {
		sh := restoreShipment(t, shipment.Delivered, now.Add(-200*time.Hour), now.Add(-time.Hour))

		violations, err := policy.Evaluate(sh, now)

		require.NoError(t, err)
		assert.Empty(t, violations)
	})
}

func TestSLAPolicyMarkers(t *testing.T) {
	policy := mustPolicy(t)

	t.Run("key combines rule and shipment id", func(t *testing.T) {
		key := policy.MarkerKey(services.PickupOverdue, "abc-123")

		assert.Equal(t, "sla:pickup_overdue:abc-123", key)
	})

	t.Run("pickup markers last a full day", func(t *testing.T) {
		assert.Equal(t, 24*time.Hour, policy.MarkerTTL(services.PickupOverdue))
		assert.Equal(t, 12*time.Hour, policy.MarkerTTL(services.DeliveryOverdue))
		assert.Equal(t, 12*time.Hour, policy.MarkerTTL(services.InTransitStale))
	})
}
