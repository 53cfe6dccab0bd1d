package shipment

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// PaymentMethod distinguishes prepaid shipments from cash-on-delivery ones.
// Only COD shipments gate delivery completion on collected cash.
type PaymentMethod int

const (
	// PaymentMethodUnknown is an invalid zero value.
	PaymentMethodUnknown PaymentMethod = iota

	// Prepaid shipments carry no cash; the rider collects nothing.
	Prepaid

	// COD shipments require the rider to collect the exact due amount at the door.
	COD
)

// PaymentMethodFromString parses a storage/wire payment method name.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	switch s {
	case "prepaid":
		return Prepaid, nil
	case "cod":
		return COD, nil
	default:
		return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%q is not a valid payment method", s))
	}
}

// String returns the storage/wire name of the payment method.
func (m PaymentMethod) String() string {
	switch m {
	case Prepaid:
		return "prepaid"
	case COD:
		return "cod"
	default:
		return "unknown"
	}
}

// Validate checks if the method is a defined, non-zero value.
func (m PaymentMethod) Validate() error {
	if m != Prepaid && m != COD {
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// PaymentStatus tracks whether COD cash has been collected.
// Prepaid shipments stay PaymentCollected from creation.
type PaymentStatus int

const (
	// PaymentStatusUnknown is an invalid zero value.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPending means COD cash is still owed by the receiver.
	PaymentPending

	// PaymentCollected means the rider has collected the due amount
	// (or nothing was due).
	PaymentCollected
)

// PaymentStatusFromString parses a storage/wire payment status name.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	switch s {
	case "pending":
		return PaymentPending, nil
	case "collected":
		return PaymentCollected, nil
	default:
		return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%q is not a valid payment status", s))
	}
}

// String returns the storage/wire name of the payment status.
func (s PaymentStatus) String() string {
	switch s {
	case PaymentPending:
		return "pending"
	case PaymentCollected:
		return "collected"
	default:
		return "unknown"
	}
}

// Validate checks if the status is a defined, non-zero value.
func (s PaymentStatus) Validate() error {
	if s != PaymentPending && s != PaymentCollected {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}
