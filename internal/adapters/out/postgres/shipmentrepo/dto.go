// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. It implements the repository pattern for the
// shipment aggregate, converting between the domain model and the relational
// representation.
package shipmentrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. Statuses and hub codes are stored as their string forms so the
// read side can filter on them without joining a lookup table.
type ShipmentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AWB        string    `gorm:"type:varchar(16);uniqueIndex"`
	MerchantID uuid.UUID `gorm:"type:uuid;index"`
	Status     string    `gorm:"type:varchar(32);index"`

	ReceiverName    string `gorm:"type:varchar(255)"`
	ReceiverPhone   string `gorm:"type:varchar(32)"`
	ReceiverAddress string `gorm:"type:text"`

	CurrentHub *string    `gorm:"type:varchar(16);index"`
	NextHub    *string    `gorm:"type:varchar(16)"`
	RiderID    *uuid.UUID `gorm:"type:uuid;index"`
	PickupID   *uuid.UUID `gorm:"type:uuid"`
	ManifestID *uuid.UUID `gorm:"type:uuid;index"`

	DeliveryAttempts int
	IsRTO            bool    `gorm:"column:is_rto"`
	RTOReason        string  `gorm:"column:rto_reason;type:text"`
	OTPCode          *string `gorm:"column:otp_code;type:varchar(6)"`

	PaymentMethod string          `gorm:"type:varchar(16)"`
	CODAmount     decimal.Decimal `gorm:"column:cod_amount;type:decimal(12,2)"`
	PaymentStatus string          `gorm:"type:varchar(16)"`

	ReceivedBy string `gorm:"type:varchar(255)"`
	PODNote    string `gorm:"column:pod_note;type:text"`

	CreatedAt            time.Time `gorm:"index"`
	UpdatedAt            time.Time `gorm:"index"`
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time

	Version int
}

// TableName overrides GORM's default naming convention to use "shipments".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(sh *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:                   sh.ID().Bytes(),
		AWB:                  sh.AWB().String(),
		MerchantID:           sh.MerchantID().Bytes(),
		Status:               sh.Status().String(),
		ReceiverName:         sh.ReceiverName(),
		ReceiverPhone:        sh.ReceiverPhone(),
		ReceiverAddress:      sh.ReceiverAddress(),
		CurrentHub:           hubToString(sh.CurrentHub()),
		NextHub:              hubToString(sh.NextHub()),
		RiderID:              uuidToBytes(sh.RiderID()),
		PickupID:             uuidToBytes(sh.PickupID()),
		ManifestID:           uuidToBytes(sh.ManifestID()),
		DeliveryAttempts:     sh.DeliveryAttempts(),
		IsRTO:                sh.IsRTO(),
		RTOReason:            sh.RTOReason(),
		OTPCode:              sh.OTPCode(),
		PaymentMethod:        sh.PaymentMethod().String(),
		CODAmount:            sh.CODAmount(),
		PaymentStatus:        sh.PaymentStatus().String(),
		ReceivedBy:           sh.ReceivedBy(),
		PODNote:              sh.PODNote(),
		CreatedAt:            sh.CreatedAt(),
		UpdatedAt:            sh.UpdatedAt(),
		ExpectedDeliveryDate: sh.ExpectedDeliveryDate(),
		ActualDeliveryDate:   sh.ActualDeliveryDate(),
		Version:              sh.Version(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	awb, err := shipment.AWBFromString(dto.AWB)
	if err != nil {
		return nil, err
	}

	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}

	status, err := shipment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	method, err := shipment.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := shipment.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	currentHub, err := hubFromString(dto.CurrentHub)
	if err != nil {
		return nil, err
	}

	nextHub, err := hubFromString(dto.NextHub)
	if err != nil {
		return nil, err
	}

	riderID, err := uuidFromBytes(dto.RiderID)
	if err != nil {
		return nil, err
	}

	pickupID, err := uuidFromBytes(dto.PickupID)
	if err != nil {
		return nil, err
	}

	manifestID, err := uuidFromBytes(dto.ManifestID)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(shipment.RestoreShipmentParams{
		ID:                   id,
		AWB:                  awb,
		MerchantID:           merchantID,
		Status:               status,
		ReceiverName:         dto.ReceiverName,
		ReceiverPhone:        dto.ReceiverPhone,
		ReceiverAddress:      dto.ReceiverAddress,
		CurrentHub:           currentHub,
		NextHub:              nextHub,
		RiderID:              riderID,
		PickupID:             pickupID,
		ManifestID:           manifestID,
		DeliveryAttempts:     dto.DeliveryAttempts,
		IsRTO:                dto.IsRTO,
		RTOReason:            dto.RTOReason,
		OTPCode:              dto.OTPCode,
		PaymentMethod:        method,
		CODAmount:            dto.CODAmount,
		PaymentStatus:        paymentStatus,
		ReceivedBy:           dto.ReceivedBy,
		PODNote:              dto.PODNote,
		CreatedAt:            dto.CreatedAt,
		UpdatedAt:            dto.UpdatedAt,
		ExpectedDeliveryDate: dto.ExpectedDeliveryDate,
		ActualDeliveryDate:   dto.ActualDeliveryDate,
		Version:              dto.Version,
	})
}

func hubToString(hub *kernel.HubCode) *string {
	if hub == nil {
		return nil
	}
	s := hub.String()
	return &s
}

func hubFromString(s *string) (*kernel.HubCode, error) {
	if s == nil {
		return nil, nil
	}
	hub, err := kernel.NewHubCode(*s)
	if err != nil {
		return nil, err
	}
	return &hub, nil
}

func uuidToBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func uuidFromBytes(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
