package services_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/domain/model/pickup"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventCodes(events []services.TimelineEvent) []string {
	codes := make([]string, 0, len(events))
	for _, e := range events {
		codes = append(codes, e.Code)
	}
	return codes
}

func TestTimelineBuilderBuild(t *testing.T) {
	builder := services.NewTimelineBuilder()
	day := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("fully delivered shipment is non decreasing end to end", func(t *testing.T) {
		hubA, err := kernel.NewHubCode("BLR-01")
		require.NoError(t, err)
		hubB, err := kernel.NewHubCode("MAA-01")
		require.NoError(t, err)

		pickedUpAt := day.Add(2 * time.Hour)
		dispatchAt := day.Add(5 * time.Hour)
		receivedAt := day.Add(11 * time.Hour)
		firstPing := day.Add(12 * time.Hour)
		deliveredAt := day.Add(13 * time.Hour)

		awb, err := shipment.AWBFromString("PH0000000007")
		require.NoError(t, err)
		sh, err := shipment.RestoreShipment(shipment.RestoreShipmentParams{
			ID:                 kernel.NewUUID(),
			AWB:                awb,
			MerchantID:         kernel.NewUUID(),
			Status:             shipment.Delivered,
			ReceiverName:       "Asha Rao",
			ReceiverPhone:      "9876543210",
			ReceiverAddress:    "12 Lake View Road",
			CurrentHub:         &hubB,
			PaymentMethod:      shipment.Prepaid,
			PaymentStatus:      shipment.PaymentCollected,
			CODAmount:          decimal.Zero,
			CreatedAt:          day,
			UpdatedAt:          deliveredAt,
			ActualDeliveryDate: &deliveredAt,
			Version:            9,
		})
		require.NoError(t, err)

		agent := kernel.NewUUID()
		pk, err := pickup.RestorePickup(
			kernel.NewUUID(), sh.MerchantID(), &agent,
			pickup.Completed, day.Add(time.Hour), &pickedUpAt, 3,
		)
		require.NoError(t, err)

		mf, err := manifest.RestoreManifest(
			kernel.NewUUID(), manifest.FormatNumber(dispatchAt, 1),
			hubA, hubB, manifest.Received, 1,
			dispatchAt, &receivedAt, "", 2,
		)
		require.NoError(t, err)

		events, err := builder.Build(services.TimelineInput{
			Shipment:       sh,
			Pickup:         pk,
			Manifest:       mf,
			FirstRiderPing: &firstPing,
		}, deliveredAt)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"created", "pickup_assigned", "picked_up", "hub_arrival",
			"dispatched", "manifest_received", "out_for_delivery", "delivered",
		}, eventCodes(events))

		for i := 1; i < len(events); i++ {
			assert.False(t, events[i].At.Before(events[i-1].At),
				"event %s precedes %s", events[i].Code, events[i-1].Code)
		}
	})

	t.Run("failed attempts are back computed from the counter", func(t *testing.T) {
		awb, err := shipment.AWBFromString("PH0000000008")
		require.NoError(t, err)
		sh, err := shipment.RestoreShipment(shipment.RestoreShipmentParams{
			ID:               kernel.NewUUID(),
			AWB:              awb,
			MerchantID:       kernel.NewUUID(),
			Status:           shipment.FailedDelivery,
			ReceiverName:     "Asha Rao",
			ReceiverPhone:    "9876543210",
			ReceiverAddress:  "12 Lake View Road",
			DeliveryAttempts: 2,
			PaymentMethod:    shipment.Prepaid,
			PaymentStatus:    shipment.PaymentCollected,
			CODAmount:        decimal.Zero,
			CreatedAt:        day,
			UpdatedAt:        day.Add(30 * time.Hour),
			Version:          5,
		})
		require.NoError(t, err)

		buildNow := day.Add(48 * time.Hour)
		events, err := builder.Build(services.TimelineInput{Shipment: sh}, buildNow)

		require.NoError(t, err)
		require.Equal(t, []string{"created", "failed_delivery", "failed_delivery"}, eventCodes(events))
		assert.Equal(t, buildNow.Add(-8*time.Hour), events[1].At)
		assert.Equal(t, buildNow.Add(-4*time.Hour), events[2].At)
		assert.True(t, events[1].Approximate)
	})
}

func TestTimelineBuilderEstimateDelivery(t *testing.T) {
	builder := services.NewTimelineBuilder()
	day := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	restore := func(t *testing.T, status shipment.Status, expected *time.Time, isRTO bool) *shipment.Shipment {
		t.Helper()

		awb, err := shipment.AWBFromString("PH0000000009")
		require.NoError(t, err)
		rtoReason := ""
		if isRTO {
			rtoReason = "refused"
		}
		sh, err := shipment.RestoreShipment(shipment.RestoreShipmentParams{
			ID:                   kernel.NewUUID(),
			AWB:                  awb,
			MerchantID:           kernel.NewUUID(),
			Status:               status,
			ReceiverName:         "Asha Rao",
			ReceiverPhone:        "9876543210",
			ReceiverAddress:      "12 Lake View Road",
			IsRTO:                isRTO,
			RTOReason:            rtoReason,
			PaymentMethod:        shipment.Prepaid,
			PaymentStatus:        shipment.PaymentCollected,
			CODAmount:            decimal.Zero,
			CreatedAt:            day,
			UpdatedAt:            day,
			ExpectedDeliveryDate: expected,
			Version:              1,
		})
		require.NoError(t, err)
		return sh
	}

	t.Run("no eta once delivered", func(t *testing.T) {
		sh := restore(t, shipment.Delivered, nil, false)

		eta, err := builder.EstimateDelivery(sh, day)

		require.NoError(t, err)
		assert.False(t, eta.Available)
	})

	t.Run("no eta for returns", func(t *testing.T) {
		sh := restore(t, shipment.RTOInTransit, nil, true)

		eta, err := builder.EstimateDelivery(sh, day)

		require.NoError(t, err)
		assert.False(t, eta.Available)
	})

	t.Run("near expected date is expressed in hours", func(t *testing.T) {
		expected := day.Add(6 * time.Hour)
		sh := restore(t, shipment.OutForDelivery, &expected, false)

		eta, err := builder.EstimateDelivery(sh, day)

		require.NoError(t, err)
		require.True(t, eta.Available)
		assert.Equal(t, "within 6 hours", eta.Text)
	})

	t.Run("far expected date is expressed in days", func(t *testing.T) {
		expected := day.Add(60 * time.Hour)
		sh := restore(t, shipment.InTransit, &expected, false)

		eta, err := builder.EstimateDelivery(sh, day)

		require.NoError(t, err)
		require.True(t, eta.Available)
		assert.Equal(t, "in 3 days", eta.Text)
	})

	t.Run("past expected date falls back to the static range", func(t *testing.T) {
		expected := day.Add(-time.Hour)
		sh := restore(t, shipment.OutForDelivery, &expected, false)

		eta, err := builder.EstimateDelivery(sh, day)

		require.NoError(t, err)
		require.True(t, eta.Available)
		assert.Equal(t, "by end of day", eta.Text)
	})

	t.Run("no expected date falls back to the static range", func(t *testing.T) {
		sh := restore(t, shipment.Pending, nil, false)

		eta, err := builder.EstimateDelivery(sh, day)

		require.NoError(t, err)
		require.True(t, eta.Available)
		assert.Equal(t, "3-5 days", eta.Text)
	})
}
