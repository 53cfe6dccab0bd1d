// Package kernel contains shared value objects used across all aggregates:
// identifiers, hub codes, and geographic points. Every type in this package is
// immutable once constructed and carries its own validation, so aggregates can
// accept kernel values without re-checking them.
//
// The zero value of every kernel type is invalid. Construct values through
// the provided factory functions and call Validate when reconstructing them
// from persistence or external input.
package kernel
