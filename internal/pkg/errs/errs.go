package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as the targets for errors.Is checks. Every typed error
// in this package unwraps to exactly one of these, which lets callers branch
// on the error class without knowing the concrete struct type.
var (
	ErrObjectNotFound         = errors.New("object not found")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsOutOfRange      = errors.New("value is out of range")
	ErrValueIsRequired        = errors.New("value is required")
	ErrVersionIsInvalid       = errors.New("version is invalid")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrNotAssigned            = errors.New("actor is not assigned")
	ErrInvalidOtp             = errors.New("otp is invalid")
	ErrCodMismatch            = errors.New("cod amount mismatch")
	ErrConcurrentModification = errors.New("concurrent modification")
)

// sanitize flattens a value into a single log-safe line.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError indicates that an entity could not be located by its
// identifier. Callers use errors.Is(err, ErrObjectNotFound) to distinguish
// "does not exist" from "exists but in an invalid state".
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a numeric value fell outside its
// permitted bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without an underlying cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a mandatory value was not supplied.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError indicates that an aggregate version read from
// persistence is malformed or negative.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError without an underlying cause.
func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError wrapping an underlying cause.
func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// InvalidStateTransitionError indicates that an entity was asked to move to a
// status its current status does not permit. This is a caller bug or a race,
// not a transient fault; callers must not blindly retry.
type InvalidStateTransitionError struct {
	Entity string
	From   string
	To     string
}

// NewInvalidStateTransitionError creates an InvalidStateTransitionError naming
// the entity kind, its current status, and the requested status.
func NewInvalidStateTransitionError(entity, from, to string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{Entity: entity, From: from, To: to}
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s",
		ErrInvalidStateTransition, e.Entity, e.From, e.To)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// NotAssignedError indicates that an actor attempted an operation on a
// shipment that is not assigned to them.
type NotAssignedError struct {
	ActorID string
	AWB     string
}

// NewNotAssignedError creates a NotAssignedError for an actor/shipment pair.
func NewNotAssignedError(actorID, awb string) *NotAssignedError {
	return &NotAssignedError{ActorID: actorID, AWB: awb}
}

func (e *NotAssignedError) Error() string {
	return fmt.Sprintf("%s: actor is: %s, shipment is: %s", ErrNotAssigned, e.ActorID, e.AWB)
}

func (e *NotAssignedError) Unwrap() error {
	return ErrNotAssigned
}

// InvalidOtpError indicates that a delivery confirmation code was absent or
// did not match the active code for the shipment.
type InvalidOtpError struct {
	AWB string
}

// NewInvalidOtpError creates an InvalidOtpError for a shipment.
func NewInvalidOtpError(awb string) *InvalidOtpError {
	return &InvalidOtpError{AWB: awb}
}

func (e *InvalidOtpError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidOtp, e.AWB)
}

func (e *InvalidOtpError) Unwrap() error {
	return ErrInvalidOtp
}

// CodMismatchError indicates that the amount a rider collected does not equal
// the cash-on-delivery amount due. Settlement is exact: no partial collection,
// no rounding tolerance. Expected and Actual carry enough detail for the
// caller to correct and resubmit.
type CodMismatchError struct {
	AWB      string
	Expected string
	Actual   string
}

// NewCodMismatchError creates a CodMismatchError with the due and collected amounts.
func NewCodMismatchError(awb, expected, actual string) *CodMismatchError {
	return &CodMismatchError{AWB: awb, Expected: expected, Actual: actual}
}

func (e *CodMismatchError) Error() string {
	return fmt.Sprintf("%s: shipment is: %s, expected %s, collected %s",
		ErrCodMismatch, e.AWB, e.Expected, e.Actual)
}

func (e *CodMismatchError) Unwrap() error {
	return ErrCodMismatch
}

// ConcurrentModificationError indicates that an optimistic version check
// failed while persisting an aggregate: another writer updated the row after
// this writer read it. The operation had no effect and may be retried with a
// fresh read.
type ConcurrentModificationError struct {
	Entity string
	ID     any
}

// NewConcurrentModificationError creates a ConcurrentModificationError for an entity row.
func NewConcurrentModificationError(entity string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{Entity: entity, ID: id}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s %s was updated by another writer", ErrConcurrentModification, e.Entity, e.ID)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}
