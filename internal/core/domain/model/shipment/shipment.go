package shipment

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// MaxDeliveryAttempts is the number of failed delivery attempts after
	// which a shipment is automatically escalated to return-to-origin.
	MaxDeliveryAttempts = 3

	// AutoRTOReason is the system-attributed reason recorded when the
	// attempt counter triggers escalation. It is distinct from any
	// rider-supplied failure reason so audits can tell the two apart.
	AutoRTOReason = "auto-escalated after maximum failed delivery attempts"

	otpDigits = 6
)

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through NewShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

// Shipment is the aggregate root of the parcel lifecycle. It owns the status
// state machine and every invariant attached to it:
//
//   - status moves only along the edges defined by Status.CanTransitionTo
//   - deliveryAttempts is monotonically non-decreasing until a terminal state
//   - isRTO implies the status is on the return-to-origin leg
//   - entering out_for_delivery requires an assigned rider
//   - entering delivered requires a verified OTP and, for COD, an exact
//     collected-amount match
//
// All fields are private; mutation happens only through the behavior methods,
// each of which validates the transition before applying side effects. The
// caller persists the aggregate afterwards under an optimistic version check.
type Shipment struct {
	id         kernel.UUID
	awb        AWB
	merchantID kernel.UUID
	status     Status

	receiverName    string
	receiverPhone   string
	receiverAddress string

	currentHub *kernel.HubCode
	nextHub    *kernel.HubCode
	riderID    *kernel.UUID
	pickupID   *kernel.UUID
	manifestID *kernel.UUID

	deliveryAttempts int
	isRTO            bool
	rtoReason        string
	otpCode          *string

	paymentMethod PaymentMethod
	codAmount     decimal.Decimal
	paymentStatus PaymentStatus

	receivedBy string
	podNote    string

	createdAt            time.Time
	updatedAt            time.Time
	expectedDeliveryDate *time.Time
	actualDeliveryDate   *time.Time

	version int

	isConstructed bool
}

// NewShipment books a new shipment in pending status.
//
// COD shipments start with payment pending; prepaid shipments are considered
// collected from the start. codAmount must be zero for prepaid shipments and
// non-negative for COD.
func NewShipment(
	id kernel.UUID,
	merchantID kernel.UUID,
	receiverName, receiverPhone, receiverAddress string,
	paymentMethod PaymentMethod,
	codAmount decimal.Decimal,
	expectedDeliveryDate *time.Time,
	now time.Time,
) (*Shipment, error) {
	s := &Shipment{
		awb:                  NewAWB(),
		status:               Pending,
		paymentStatus:        PaymentCollected,
		createdAt:            now,
		updatedAt:            now,
		expectedDeliveryDate: expectedDeliveryDate,
		version:              1,
		isConstructed:        true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setMerchantID(merchantID),
		s.setReceiver(receiverName, receiverPhone, receiverAddress),
		s.setPayment(paymentMethod, codAmount),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipmentParams carries the persisted state of a shipment row.
type RestoreShipmentParams struct {
	ID                   kernel.UUID
	AWB                  AWB
	MerchantID           kernel.UUID
	Status               Status
	ReceiverName         string
	ReceiverPhone        string
	ReceiverAddress      string
	CurrentHub           *kernel.HubCode
	NextHub              *kernel.HubCode
	RiderID              *kernel.UUID
	PickupID             *kernel.UUID
	ManifestID           *kernel.UUID
	DeliveryAttempts     int
	IsRTO                bool
	RTOReason            string
	OTPCode              *string
	PaymentMethod        PaymentMethod
	CODAmount            decimal.Decimal
	PaymentStatus        PaymentStatus
	ReceivedBy           string
	PODNote              string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time
	Version              int
}

// RestoreShipment reconstructs a shipment from persistence without applying
// creation-time defaults. Validation is limited to structural checks; the row
// is trusted to have been written through the aggregate.
func RestoreShipment(p RestoreShipmentParams) (*Shipment, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.AWB.Validate(),
		p.MerchantID.Validate(),
		p.Status.Validate(),
		p.PaymentMethod.Validate(),
		p.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if p.Version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("shipment version",
			fmt.Errorf("%d is not positive", p.Version))
	}

	if p.IsRTO && !p.Status.IsRTO() && p.Status != Cancelled {
		return nil, errs.NewValueIsInvalidErrorWithCause("isRto",
			fmt.Errorf("flag set while status is %s", p.Status))
	}

	return &Shipment{
		id:                   p.ID,
		awb:                  p.AWB,
		merchantID:           p.MerchantID,
		status:               p.Status,
		receiverName:         p.ReceiverName,
		receiverPhone:        p.ReceiverPhone,
		receiverAddress:      p.ReceiverAddress,
		currentHub:           p.CurrentHub,
		nextHub:              p.NextHub,
		riderID:              p.RiderID,
		pickupID:             p.PickupID,
		manifestID:           p.ManifestID,
		deliveryAttempts:     p.DeliveryAttempts,
		isRTO:                p.IsRTO,
		rtoReason:            p.RTOReason,
		otpCode:              p.OTPCode,
		paymentMethod:        p.PaymentMethod,
		codAmount:            p.CODAmount,
		paymentStatus:        p.PaymentStatus,
		receivedBy:           p.ReceivedBy,
		podNote:              p.PODNote,
		createdAt:            p.CreatedAt,
		updatedAt:            p.UpdatedAt,
		expectedDeliveryDate: p.ExpectedDeliveryDate,
		actualDeliveryDate:   p.ActualDeliveryDate,
		version:              p.Version,
		isConstructed:        true,
	}, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// AWB returns the immutable tracking number.
func (s *Shipment) AWB() AWB { return s.awb }

// MerchantID returns the booking merchant's identifier.
func (s *Shipment) MerchantID() kernel.UUID { return s.merchantID }

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status { return s.status }

// ReceiverName returns the receiver's name.
func (s *Shipment) ReceiverName() string { return s.receiverName }

// ReceiverPhone returns the receiver's phone number.
func (s *Shipment) ReceiverPhone() string { return s.receiverPhone }

// ReceiverAddress returns the delivery address.
func (s *Shipment) ReceiverAddress() string { return s.receiverAddress }

// CurrentHub returns the hub currently holding the parcel, nil before the
// first inbound scan.
func (s *Shipment) CurrentHub() *kernel.HubCode { return s.currentHub }

// NextHub returns the destination hub of an in-transit leg, nil otherwise.
func (s *Shipment) NextHub() *kernel.HubCode { return s.nextHub }

// RiderID returns the assigned rider, nil if none.
func (s *Shipment) RiderID() *kernel.UUID { return s.riderID }

// PickupID returns the linked pickup request, nil if none.
func (s *Shipment) PickupID() *kernel.UUID { return s.pickupID }

// ManifestID returns the open manifest this shipment travels on, nil if none.
func (s *Shipment) ManifestID() *kernel.UUID { return s.manifestID }

// DeliveryAttempts returns the failed delivery attempt counter.
func (s *Shipment) DeliveryAttempts() int { return s.deliveryAttempts }

// IsRTO reports whether the shipment is flagged for return to origin.
func (s *Shipment) IsRTO() bool { return s.isRTO }

// RTOReason returns the recorded return reason, empty if not flagged.
func (s *Shipment) RTOReason() string { return s.rtoReason }

// OTPCode returns the active delivery confirmation code, nil if none issued.
func (s *Shipment) OTPCode() *string { return s.otpCode }

// PaymentMethod returns the payment method.
func (s *Shipment) PaymentMethod() PaymentMethod { return s.paymentMethod }

// CODAmount returns the cash amount due at the door (zero for prepaid).
func (s *Shipment) CODAmount() decimal.Decimal { return s.codAmount }

// PaymentStatus returns the collection state of the COD amount.
func (s *Shipment) PaymentStatus() PaymentStatus { return s.paymentStatus }

// ReceivedBy returns the proof-of-delivery recipient name.
func (s *Shipment) ReceivedBy() string { return s.receivedBy }

// PODNote returns the proof-of-delivery note.
func (s *Shipment) PODNote() string { return s.podNote }

// CreatedAt returns the booking time.
func (s *Shipment) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the time of the last status mutation.
func (s *Shipment) UpdatedAt() time.Time { return s.updatedAt }

// ExpectedDeliveryDate returns the contractual delivery target, nil if none.
func (s *Shipment) ExpectedDeliveryDate() *time.Time { return s.expectedDeliveryDate }

// ActualDeliveryDate returns the completion time, nil until delivered.
func (s *Shipment) ActualDeliveryDate() *time.Time { return s.actualDeliveryDate }

// Version returns the optimistic-lock version of the loaded row.
func (s *Shipment) Version() int { return s.version }

// IsEqual compares two shipments by identifier.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// AssignPickup links the shipment to a pickup request and moves it to
// pickup_assigned.
func (s *Shipment) AssignPickup(pickupID kernel.UUID, now time.Time) error {
	if err := pickupID.Validate(); err != nil {
		return err
	}

	if err := s.transitionTo(PickupAssigned, now); err != nil {
		return err
	}

	s.pickupID = &pickupID
	return nil
}

// MarkPickedUp records the physical handoff from merchant to pickup agent.
func (s *Shipment) MarkPickedUp(now time.Time) error {
	return s.transitionTo(PickedUp, now)
}

// ScanInbound records arrival at a hub. Legal from picked_up, in_transit, and
// in_hub (the parcel is scanned again at every hub it passes through). Clears
// any manifest association: arrival completes the manifest leg, freeing the
// shipment to join a new manifest for the next hop.
func (s *Shipment) ScanInbound(hub kernel.HubCode, now time.Time) error {
	if err := hub.Validate(); err != nil {
		return err
	}

	if err := s.transitionTo(InHub, now); err != nil {
		return err
	}

	s.currentHub = &hub
	s.nextHub = nil
	s.manifestID = nil
	return nil
}

// AttachToManifest puts the shipment on a dispatched manifest toward
// destination. The shipment must be in_hub and not already on an open
// manifest.
func (s *Shipment) AttachToManifest(manifestID kernel.UUID, destination kernel.HubCode, now time.Time) error {
	if err := errors.Join(manifestID.Validate(), destination.Validate()); err != nil {
		return err
	}

	if s.manifestID != nil {
		return errs.NewValueIsInvalidErrorWithCause("manifest",
			fmt.Errorf("shipment %s already belongs to manifest %s", s.awb, s.manifestID))
	}

	if err := s.transitionTo(InTransit, now); err != nil {
		return err
	}

	s.manifestID = &manifestID
	s.nextHub = &destination
	return nil
}

// ScanOutboundToHub releases the parcel from origin toward another hub
// outside a manifest (single-piece linehaul).
func (s *Shipment) ScanOutboundToHub(origin, next kernel.HubCode, now time.Time) error {
	if err := errors.Join(origin.Validate(), next.Validate()); err != nil {
		return err
	}

	if err := s.requireAtHub(origin); err != nil {
		return err
	}

	if err := s.transitionTo(InTransit, now); err != nil {
		return err
	}

	s.nextHub = &next
	return nil
}

// ScanOutboundToRider hands the parcel to a rider for final delivery.
// Entering out_for_delivery requires a valid rider.
func (s *Shipment) ScanOutboundToRider(origin kernel.HubCode, riderID kernel.UUID, now time.Time) error {
	if err := errors.Join(origin.Validate(), riderID.Validate()); err != nil {
		return err
	}

	if err := s.requireAtHub(origin); err != nil {
		return err
	}

	if err := s.transitionTo(OutForDelivery, now); err != nil {
		return err
	}

	s.riderID = &riderID
	s.nextHub = nil
	return nil
}

// IssueOTP generates a fresh single-use delivery confirmation code for the
// assigned rider. Issuing again replaces the previous code; there is only
// ever one active value and it carries no expiry. A rider who does not hold
// the shipment out for delivery gets NotAssignedError in either leg.
func (s *Shipment) IssueOTP(riderID kernel.UUID, now time.Time) (string, error) {
	if err := s.requireAssignedRider(riderID); err != nil {
		return "", err
	}

	if s.status != OutForDelivery {
		return "", errs.NewNotAssignedError(riderID.String(), s.awb.String())
	}

	code := fmt.Sprintf("%06d", rand.IntN(1_000_000)) //nolint:gosec // short-lived door code
	s.otpCode = &code
	s.updatedAt = now
	return code, nil
}

// CompleteDelivery finishes the shipment at the door.
//
// Requirements, checked in order:
//   - status out_for_delivery and the calling rider holds the shipment
//   - an OTP is active and equals submittedOTP (InvalidOtpError otherwise)
//   - for COD with a nonzero due amount, collected equals the due amount
//     exactly (CodMismatchError otherwise; no partial settlement, no
//     rounding tolerance)
//
// On success: status delivered, actual delivery date recorded, payment marked
// collected for COD, proof-of-delivery stored, OTP cleared.
func (s *Shipment) CompleteDelivery(
	riderID kernel.UUID,
	submittedOTP string,
	collected decimal.Decimal,
	receivedBy, podNote string,
	now time.Time,
) error {
	if err := s.requireAssignedRider(riderID); err != nil {
		return err
	}

	if s.status != OutForDelivery {
		return errs.NewInvalidStateTransitionError("shipment", s.status.String(), Delivered.String())
	}

	if s.otpCode == nil || *s.otpCode != submittedOTP {
		return errs.NewInvalidOtpError(s.awb.String())
	}

	if s.paymentMethod == COD && s.codAmount.IsPositive() && !collected.Equal(s.codAmount) {
		return errs.NewCodMismatchError(s.awb.String(), s.codAmount.String(), collected.String())
	}

	if err := s.transitionTo(Delivered, now); err != nil {
		return err
	}

	s.actualDeliveryDate = &now
	if s.paymentMethod == COD {
		s.paymentStatus = PaymentCollected
	}
	s.receivedBy = receivedBy
	s.podNote = podNote
	s.otpCode = nil
	return nil
}

// FailDelivery records a failed delivery attempt by the assigned rider.
// The attempt counter increments by exactly one and the shipment moves to
// failed_delivery with the rider-supplied reason. When the counter reaches
// MaxDeliveryAttempts the same call escalates to rto_initiated with the
// system-attributed AutoRTOReason; there is never a persisted state with the
// counter at the threshold and the status still failed_delivery.
//
// Returns escalated=true when the auto-RTO fired.
func (s *Shipment) FailDelivery(riderID kernel.UUID, reason string, now time.Time) (bool, error) {
	if err := s.requireAssignedRider(riderID); err != nil {
		return false, err
	}

	if reason == "" {
		return false, errs.NewValueIsRequiredError("failure reason")
	}

	if err := s.transitionTo(FailedDelivery, now); err != nil {
		return false, err
	}

	s.deliveryAttempts++
	s.otpCode = nil

	if s.deliveryAttempts < MaxDeliveryAttempts {
		return false, nil
	}

	if err := s.transitionTo(RTOInitiated, now); err != nil {
		return false, err
	}

	s.isRTO = true
	s.rtoReason = AutoRTOReason
	return true, nil
}

// MarkRTO manually flags the shipment for return to origin, bypassing the
// attempt counter. Available to the assigned rider from out_for_delivery or
// failed_delivery.
func (s *Shipment) MarkRTO(riderID kernel.UUID, reason string, now time.Time) error {
	if err := s.requireAssignedRider(riderID); err != nil {
		return err
	}

	if reason == "" {
		return errs.NewValueIsRequiredError("rto reason")
	}

	if err := s.transitionTo(RTOInitiated, now); err != nil {
		return err
	}

	s.isRTO = true
	s.rtoReason = reason
	return nil
}

// ScanInboundRTO records the returning parcel entering a hub on its way back
// to the origin.
func (s *Shipment) ScanInboundRTO(hub kernel.HubCode, now time.Time) error {
	if err := hub.Validate(); err != nil {
		return err
	}

	if err := s.transitionTo(RTOInTransit, now); err != nil {
		return err
	}

	s.currentHub = &hub
	s.riderID = nil
	return nil
}

// CompleteRTOReturn closes the return leg: the parcel is back with the sender.
func (s *Shipment) CompleteRTOReturn(now time.Time) error {
	return s.transitionTo(RTODelivered, now)
}

// Cancel aborts the shipment from any non-terminal state.
func (s *Shipment) Cancel(now time.Time) error {
	if err := s.transitionTo(Cancelled, now); err != nil {
		return err
	}

	s.otpCode = nil
	return nil
}

// transitionTo applies a validated status change and bumps updatedAt.
func (s *Shipment) transitionTo(target Status, now time.Time) error {
	next, err := s.status.TransitionTo(target)
	if err != nil {
		return err
	}

	s.status = next
	s.updatedAt = now
	return nil
}

// requireAtHub checks that the parcel is physically at the stated hub.
func (s *Shipment) requireAtHub(hub kernel.HubCode) error {
	if s.currentHub == nil || !s.currentHub.IsEqual(hub) {
		at := "nowhere"
		if s.currentHub != nil {
			at = s.currentHub.String()
		}
		return errs.NewValueIsInvalidErrorWithCause("origin hub",
			fmt.Errorf("shipment %s is at %s, not %s", s.awb, at, hub))
	}
	return nil
}

// requireAssignedRider checks that the acting rider holds this shipment.
func (s *Shipment) requireAssignedRider(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	if s.riderID == nil || !s.riderID.IsEqual(riderID) {
		return errs.NewNotAssignedError(riderID.String(), s.awb.String())
	}
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setMerchantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.merchantID = id
	return nil
}

func (s *Shipment) setReceiver(name, phone, address string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("receiver name")
	}
	if phone == "" {
		return errs.NewValueIsRequiredError("receiver phone")
	}
	if address == "" {
		return errs.NewValueIsRequiredError("receiver address")
	}

	s.receiverName = name
	s.receiverPhone = phone
	s.receiverAddress = address
	return nil
}

func (s *Shipment) setPayment(method PaymentMethod, codAmount decimal.Decimal) error {
	if err := method.Validate(); err != nil {
		return err
	}

	if codAmount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("cod amount",
			fmt.Errorf("%s is negative", codAmount))
	}

	if method == Prepaid && codAmount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("cod amount",
			fmt.Errorf("prepaid shipment cannot carry a cod amount of %s", codAmount))
	}

	s.paymentMethod = method
	s.codAmount = codAmount
	if method == COD && codAmount.IsPositive() {
		s.paymentStatus = PaymentPending
	}
	return nil
}
