// Package pickup contains the Pickup aggregate, bridging a merchant's
// collection request to the first physical handoff. Completing a pickup is
// what moves its member shipments to picked_up; that coordination happens in
// the application layer, the aggregate here owns only the request lifecycle.
package pickup

import (
	"errors"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
)

// ErrPickupIsNotConstructed is returned when a Pickup instance was not
// created through NewPickup or RestorePickup.
var ErrPickupIsNotConstructed = errors.New("Pickup must be created via NewPickup or RestorePickup")

// Pickup is the aggregate root for a merchant collection request.
type Pickup struct {
	id            kernel.UUID
	merchantID    kernel.UUID
	agentID       *kernel.UUID
	status        Status
	scheduledDate time.Time
	completedAt   *time.Time
	version       int
	isConstructed bool
}

// NewPickup creates a pending pickup request scheduled for scheduledDate.
func NewPickup(id, merchantID kernel.UUID, scheduledDate time.Time) (*Pickup, error) {
	if err := errors.Join(id.Validate(), merchantID.Validate()); err != nil {
		return nil, err
	}

	if scheduledDate.IsZero() {
		return nil, errs.NewValueIsRequiredError("scheduled date")
	}

	return &Pickup{
		id:            id,
		merchantID:    merchantID,
		status:        Pending,
		scheduledDate: scheduledDate,
		version:       1,
		isConstructed: true,
	}, nil
}

// RestorePickup reconstructs a pickup from persistence.
func RestorePickup(
	id, merchantID kernel.UUID,
	agentID *kernel.UUID,
	status Status,
	scheduledDate time.Time,
	completedAt *time.Time,
	version int,
) (*Pickup, error) {
	if err := errors.Join(id.Validate(), merchantID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	if version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("pickup version",
			fmt.Errorf("%d is not positive", version))
	}

	return &Pickup{
		id:            id,
		merchantID:    merchantID,
		agentID:       agentID,
		status:        status,
		scheduledDate: scheduledDate,
		completedAt:   completedAt,
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Pickup instance was properly constructed.
func (p *Pickup) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPickupIsNotConstructed
	}
	return nil
}

// ID returns the pickup's unique identifier.
func (p *Pickup) ID() kernel.UUID { return p.id }

// MerchantID returns the requesting merchant.
func (p *Pickup) MerchantID() kernel.UUID { return p.merchantID }

// AgentID returns the assigned agent, nil while pending.
func (p *Pickup) AgentID() *kernel.UUID { return p.agentID }

// Status returns the current lifecycle status.
func (p *Pickup) Status() Status { return p.status }

// ScheduledDate returns the agreed collection date.
func (p *Pickup) ScheduledDate() time.Time { return p.scheduledDate }

// CompletedAt returns the completion time, nil until completed.
func (p *Pickup) CompletedAt() *time.Time { return p.completedAt }

// Version returns the optimistic-lock version of the loaded row.
func (p *Pickup) Version() int { return p.version }

// Assign hands the request to a pickup agent.
func (p *Pickup) Assign(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	status, err := p.status.TransitionTo(Assigned)
	if err != nil {
		return err
	}

	p.status = status
	p.agentID = &agentID
	return nil
}

// Start records the agent arriving at the merchant.
func (p *Pickup) Start() error {
	status, err := p.status.TransitionTo(InProgress)
	if err != nil {
		return err
	}

	p.status = status
	return nil
}

// Complete finishes the collection. The caller is responsible for moving the
// member shipments to picked_up in the same unit of work.
func (p *Pickup) Complete(now time.Time) error {
	status, err := p.status.TransitionTo(Completed)
	if err != nil {
		return err
	}

	p.status = status
	p.completedAt = &now
	return nil
}

// Cancel aborts the request from any non-terminal state.
func (p *Pickup) Cancel() error {
	status, err := p.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	p.status = status
	return nil
}
