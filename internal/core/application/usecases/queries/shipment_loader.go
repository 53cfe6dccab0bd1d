package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// loadShipmentByAWB reads a full shipment row and restores the domain
// aggregate. Read handlers that feed domain services (timeline, SLA policy)
// use this instead of joining hand-picked columns so the services see the
// same validated state the write side works with.
func loadShipmentByAWB(ctx context.Context, db *gorm.DB, awb string) (*shipment.Shipment, error) {
	row := db.WithContext(ctx).Raw(`
		SELECT
			id,
			awb,
			merchant_id,
			status,
			receiver_name,
			receiver_phone,
			receiver_address,
			current_hub,
			next_hub,
			rider_id,
			pickup_id,
			manifest_id,
			delivery_attempts,
			is_rto,
			rto_reason,
			otp_code,
			payment_method,
			cod_amount,
			payment_status,
			received_by,
			pod_note,
			created_at,
			updated_at,
			expected_delivery_date,
			actual_delivery_date,
			version
		FROM shipments
		WHERE awb = ?
	`, awb).Row()

	var (
		id                   uuid.UUID
		rawAWB               string
		merchantID           uuid.UUID
		status               string
		receiverName         string
		receiverPhone        string
		receiverAddress      string
		currentHub           sql.NullString
		nextHub              sql.NullString
		riderID              uuid.NullUUID
		pickupID             uuid.NullUUID
		manifestID           uuid.NullUUID
		deliveryAttempts     int
		isRTO                bool
		rtoReason            string
		otpCode              sql.NullString
		paymentMethod        string
		codAmount            decimal.Decimal
		paymentStatus        string
		receivedBy           string
		podNote              string
		createdAt            time.Time
		updatedAt            time.Time
		expectedDeliveryDate sql.NullTime
		actualDeliveryDate   sql.NullTime
		version              int
	)

	err := row.Scan(
		&id, &rawAWB, &merchantID, &status,
		&receiverName, &receiverPhone, &receiverAddress,
		&currentHub, &nextHub, &riderID, &pickupID, &manifestID,
		&deliveryAttempts, &isRTO, &rtoReason, &otpCode,
		&paymentMethod, &codAmount, &paymentStatus,
		&receivedBy, &podNote,
		&createdAt, &updatedAt, &expectedDeliveryDate, &actualDeliveryDate,
		&version,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("shipment", awb)
		}
		return nil, err
	}

	shipmentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	awbValue, err := shipment.AWBFromString(rawAWB)
	if err != nil {
		return nil, err
	}

	merchant, err := kernel.UUIDFromBytes(merchantID[:])
	if err != nil {
		return nil, err
	}

	statusValue, err := shipment.StatusFromString(status)
	if err != nil {
		return nil, err
	}

	method, err := shipment.PaymentMethodFromString(paymentMethod)
	if err != nil {
		return nil, err
	}

	payStatus, err := shipment.PaymentStatusFromString(paymentStatus)
	if err != nil {
		return nil, err
	}

	currentHubValue, err := nullHub(currentHub)
	if err != nil {
		return nil, err
	}

	nextHubValue, err := nullHub(nextHub)
	if err != nil {
		return nil, err
	}

	riderIDValue, err := nullUUID(riderID)
	if err != nil {
		return nil, err
	}

	pickupIDValue, err := nullUUID(pickupID)
	if err != nil {
		return nil, err
	}

	manifestIDValue, err := nullUUID(manifestID)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(shipment.RestoreShipmentParams{
		ID:                   shipmentID,
		AWB:                  awbValue,
		MerchantID:           merchant,
		Status:               statusValue,
		ReceiverName:         receiverName,
		ReceiverPhone:        receiverPhone,
		ReceiverAddress:      receiverAddress,
		CurrentHub:           currentHubValue,
		NextHub:              nextHubValue,
		RiderID:              riderIDValue,
		PickupID:             pickupIDValue,
		ManifestID:           manifestIDValue,
		DeliveryAttempts:     deliveryAttempts,
		IsRTO:                isRTO,
		RTOReason:            rtoReason,
		OTPCode:              nullString(otpCode),
		PaymentMethod:        method,
		CODAmount:            codAmount,
		PaymentStatus:        payStatus,
		ReceivedBy:           receivedBy,
		PODNote:              podNote,
		CreatedAt:            createdAt,
		UpdatedAt:            updatedAt,
		ExpectedDeliveryDate: nullTime(expectedDeliveryDate),
		ActualDeliveryDate:   nullTime(actualDeliveryDate),
		Version:              version,
	})
}

func nullHub(s sql.NullString) (*kernel.HubCode, error) {
	if !s.Valid {
		return nil, nil
	}
	hub, err := kernel.NewHubCode(s.String)
	if err != nil {
		return nil, err
	}
	return &hub, nil
}

func nullUUID(n uuid.NullUUID) (*kernel.UUID, error) {
	if !n.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(n.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
