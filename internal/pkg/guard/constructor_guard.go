// Package guard provides a defensive construction marker for command and
// query objects. Embedding a ConstructorGuard lets a type detect whether it
// was created through its designated constructor or as a zero value, so that
// handlers can refuse unvalidated input objects.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil validation error for a zero-value guard. Validation always fails with a
// meaningful message even when no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having passed through its constructor.
// The zero value is unconstructed; only NewConstructorGuard produces a guard
// that validates successfully.
//
// Example usage:
//
//	type InboundScanCommand struct {
//	    hub  kernel.HubCode
//	    awbs []string
//
//	    guard guard.ConstructorGuard
//	}
//
//	func NewInboundScanCommand(...) (InboundScanCommand, error) {
//	    // validate inputs...
//	    return InboundScanCommand{..., guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c InboundScanCommand) Validate() error {
//	    return c.guard.Validate(ErrInboundScanCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
