package kernel

import (
	"fmt"
	"strings"

	"parcelhub/internal/pkg/errs"
)

const (
	// HubCodeMinLength is the minimum length of a hub code.
	HubCodeMinLength = 2
	// HubCodeMaxLength is the maximum length of a hub code.
	HubCodeMaxLength = 8
)

// ErrHubCodeIsNotConstructed is returned when validating a zero-value HubCode.
// Hub codes must be created via NewHubCode.
var ErrHubCodeIsNotConstructed = errs.NewValueIsRequiredError("hub code must be created via NewHubCode")

// HubCode identifies a physical hub in the transport network, e.g. "DHK" or
// "CTG-N". Hub codes are short uppercase identifiers assigned by operations;
// this value object normalizes and validates them but does not check that the
// hub actually exists (hub master data is an external collaborator).
//
// HubCode is an immutable value object. The zero value is invalid.
//
// Example:
//
//	hub, err := kernel.NewHubCode("dhk")
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(hub) // Output: DHK
type HubCode struct {
	code string
}

// NewHubCode creates a HubCode from a raw string. The input is trimmed and
// upper-cased; the result must be HubCodeMinLength..HubCodeMaxLength
// characters of letters, digits, or '-'.
func NewHubCode(raw string) (HubCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))

	if len(code) < HubCodeMinLength || len(code) > HubCodeMaxLength {
		return HubCode{}, errs.NewValueIsOutOfRangeError("hub code length", len(code), HubCodeMinLength, HubCodeMaxLength)
	}

	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '-' {
			return HubCode{}, errs.NewValueIsInvalidErrorWithCause("hub code",
				fmt.Errorf("%q contains character %q", code, r))
		}
	}

	return HubCode{code: code}, nil
}

// String returns the normalized hub code.
func (h HubCode) String() string {
	return h.code
}

// IsEqual compares two hub codes for equality.
func (h HubCode) IsEqual(other HubCode) bool {
	return h.code == other.code
}

// Validate checks if the HubCode was constructed via NewHubCode.
func (h HubCode) Validate() error {
	if h.code == "" {
		return ErrHubCodeIsNotConstructed
	}
	return nil
}
