// Package errs provides standardized error types for the parcel logistics
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package covers two groups of errors:
//   - Generic validation errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError, VersionIsInvalidError)
//   - Logistics business-rule errors (InvalidStateTransitionError,
//     NotAssignedError, InvalidOtpError, CodMismatchError,
//     ConcurrentModificationError)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The sentinel errors give callers a stable target for errors.Is, which is
// how the HTTP adapter maps error classes onto response codes: not-found
// errors branch differently from state conflicts, and business-rule
// violations carry expected/actual detail for the caller to correct and
// resubmit.
package errs
