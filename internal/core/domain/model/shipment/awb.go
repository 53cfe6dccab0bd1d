package shipment

import (
	"fmt"
	"math/rand/v2"

	"parcelhub/internal/pkg/errs"
)

const (
	// AWBPrefix is the fixed prefix of every air waybill number.
	AWBPrefix = "PH"
	// awbDigits is the number of decimal digits following the prefix.
	awbDigits = 10
)

// ErrAWBIsNotConstructed is returned when validating a zero-value AWB.
var ErrAWBIsNotConstructed = errs.NewValueIsRequiredError("AWB must be created via NewAWB or AWBFromString")

// AWB is the unique tracking number of a shipment. It is assigned once at
// booking and never changes afterwards; it is the only shipment identifier
// exposed to external callers.
//
// Format: "PH" followed by ten decimal digits, e.g. "PH0482917365".
type AWB struct {
	value string
}

// NewAWB generates a fresh random tracking number.
// Uniqueness is enforced by the unique index on the shipments table, not
// here; a collision surfaces as a constraint violation at insert.
func NewAWB() AWB {
	return AWB{value: fmt.Sprintf("%s%010d", AWBPrefix, rand.Int64N(10_000_000_000))} //nolint:gosec // tracking numbers are not secrets
}

// AWBFromString parses and validates a tracking number.
func AWBFromString(s string) (AWB, error) {
	if len(s) != len(AWBPrefix)+awbDigits || s[:len(AWBPrefix)] != AWBPrefix {
		return AWB{}, errs.NewValueIsInvalidErrorWithCause("awb",
			fmt.Errorf("%q does not match %s + %d digits", s, AWBPrefix, awbDigits))
	}
	for _, r := range s[len(AWBPrefix):] {
		if r < '0' || r > '9' {
			return AWB{}, errs.NewValueIsInvalidErrorWithCause("awb",
				fmt.Errorf("%q contains non-digit %q", s, r))
		}
	}
	return AWB{value: s}, nil
}

// String returns the tracking number.
func (a AWB) String() string {
	return a.value
}

// IsEqual compares two tracking numbers.
func (a AWB) IsEqual(other AWB) bool {
	return a.value == other.value
}

// Validate checks if the AWB was constructed via NewAWB or AWBFromString.
func (a AWB) Validate() error {
	if a.value == "" {
		return ErrAWBIsNotConstructed
	}
	return nil
}
