package commands

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrReceiverNameIsRequired    = errors.New("receiver name is required")
	ErrReceiverPhoneIsRequired   = errors.New("receiver phone is required")
	ErrReceiverAddressIsRequired = errors.New("receiver address is required")
	ErrPickupDateIsRequired      = errors.New("pickup scheduled date is required")
)

// CreateShipmentCommand represents a merchant booking a new shipment.
// Booking also opens a pickup request for the merchant's address; the
// shipment stays pending until an agent is assigned to that request.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID           kernel.UUID
	pickupID             kernel.UUID
	merchantID           kernel.UUID
	receiverName         string
	receiverPhone        string
	receiverAddress      string
	paymentMethod        shipment.PaymentMethod
	codAmount            decimal.Decimal
	pickupScheduledDate  time.Time
	expectedDeliveryDate *time.Time

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to book a shipment.
// Receiver details must be non-empty and the payment method valid;
// codAmount is validated against the method by the aggregate.
func NewCreateShipmentCommand(
	shipmentID, pickupID, merchantID kernel.UUID,
	receiverName, receiverPhone, receiverAddress string,
	paymentMethod shipment.PaymentMethod,
	codAmount decimal.Decimal,
	pickupScheduledDate time.Time,
	expectedDeliveryDate *time.Time,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(shipmentID, pickupID, merchantID),
		cmd.setReceiver(receiverName, receiverPhone, receiverAddress),
		cmd.setPayment(paymentMethod, codAmount),
		cmd.setDates(pickupScheduledDate, expectedDeliveryDate),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// PickupID returns the identifier for the new pickup request.
func (c CreateShipmentCommand) PickupID() kernel.UUID { return c.pickupID }

// MerchantID returns the booking merchant.
func (c CreateShipmentCommand) MerchantID() kernel.UUID { return c.merchantID }

// ReceiverName returns the receiver's full name.
func (c CreateShipmentCommand) ReceiverName() string { return c.receiverName }

// ReceiverPhone returns the receiver's phone number.
func (c CreateShipmentCommand) ReceiverPhone() string { return c.receiverPhone }

// ReceiverAddress returns the delivery address.
func (c CreateShipmentCommand) ReceiverAddress() string { return c.receiverAddress }

// PaymentMethod returns the booked payment method.
func (c CreateShipmentCommand) PaymentMethod() shipment.PaymentMethod { return c.paymentMethod }

// CODAmount returns the cash due on delivery, zero for prepaid.
func (c CreateShipmentCommand) CODAmount() decimal.Decimal { return c.codAmount }

// PickupScheduledDate returns when the pickup should happen.
func (c CreateShipmentCommand) PickupScheduledDate() time.Time { return c.pickupScheduledDate }

// ExpectedDeliveryDate returns the promised delivery date, if any.
func (c CreateShipmentCommand) ExpectedDeliveryDate() *time.Time { return c.expectedDeliveryDate }

func (c *CreateShipmentCommand) setIDs(shipmentID, pickupID, merchantID kernel.UUID) error {
	if err := errors.Join(shipmentID.Validate(), pickupID.Validate(), merchantID.Validate()); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	c.pickupID = pickupID
	c.merchantID = merchantID
	return nil
}

func (c *CreateShipmentCommand) setReceiver(name, phone, address string) error {
	if name == "" {
		return ErrReceiverNameIsRequired
	}
	if phone == "" {
		return ErrReceiverPhoneIsRequired
	}
	if address == "" {
		return ErrReceiverAddressIsRequired
	}

	c.receiverName = name
	c.receiverPhone = phone
	c.receiverAddress = address
	return nil
}

func (c *CreateShipmentCommand) setPayment(method shipment.PaymentMethod, codAmount decimal.Decimal) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.paymentMethod = method
	c.codAmount = codAmount
	return nil
}

func (c *CreateShipmentCommand) setDates(pickupScheduledDate time.Time, expectedDeliveryDate *time.Time) error {
	if pickupScheduledDate.IsZero() {
		return ErrPickupDateIsRequired
	}

	c.pickupScheduledDate = pickupScheduledDate
	c.expectedDeliveryDate = expectedDeliveryDate
	return nil
}
