package commands

import (
	"errors"
	"time"

	"parcelhub/internal/pkg/guard"
)

var (
	ErrCheckSLACommandIsNotConstructed = errors.New(
		"CheckSLACommand must be created via NewCheckSLACommand constructor",
	)
	ErrSweepTimeIsRequired = errors.New("sweep time is required")
)

// CheckSLACommand triggers one sweep of the service-level rules over all
// open shipments. The sweep time is supplied by the caller so the scheduler
// and tests drive the same code path.
type CheckSLACommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewCheckSLACommand creates a command for one sweep at the given time.
func NewCheckSLACommand(now time.Time) (CheckSLACommand, error) {
	cmd := CheckSLACommand{
		guard: guard.NewConstructorGuard(),
	}

	if now.IsZero() {
		return CheckSLACommand{}, ErrSweepTimeIsRequired
	}

	cmd.now = now
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckSLACommand) Validate() error {
	return c.guard.Validate(ErrCheckSLACommandIsNotConstructed)
}

// Now returns the sweep's reference time.
func (c CheckSLACommand) Now() time.Time { return c.now }
