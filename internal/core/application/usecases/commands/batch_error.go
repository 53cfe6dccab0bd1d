package commands

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBatchRejected is the sentinel wrapped by BatchValidationError.
var ErrBatchRejected = errors.New("batch rejected")

// BatchFailure names one tracking number that failed pre-validation and why.
type BatchFailure struct {
	AWB    string
	Reason string
}

// BatchValidationError rejects an entire scan or manifest batch. No shipment
// in the request was mutated; the caller corrects the listed numbers and
// resubmits the whole batch.
type BatchValidationError struct {
	Failures []BatchFailure
}

// NewBatchValidationError creates a BatchValidationError from the collected
// per-shipment failures.
func NewBatchValidationError(failures []BatchFailure) *BatchValidationError {
	return &BatchValidationError{Failures: failures}
}

// Error implements the error interface.
func (e *BatchValidationError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %s", f.AWB, f.Reason))
	}
	return fmt.Sprintf("%s: %s", ErrBatchRejected, strings.Join(parts, "; "))
}

// Unwrap supports errors.Is checks against ErrBatchRejected.
func (e *BatchValidationError) Unwrap() error {
	return ErrBatchRejected
}
