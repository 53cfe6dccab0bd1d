package queries

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrCheckShipmentSLAQueryIsNotConstructed = errors.New(
	"CheckShipmentSLAQuery must be created via NewCheckShipmentSLAQuery constructor",
)

// CheckShipmentSLAQuery evaluates the service-level rules against one
// shipment on demand. Unlike the scheduled sweep this is a pure read: no
// markers are written, no alerts go out, asking twice gives the same answer.
type CheckShipmentSLAQuery struct { //nolint:recvcheck //using for validation
	awb shipment.AWB
	now time.Time

	guard guard.ConstructorGuard
}

// NewCheckShipmentSLAQuery creates an on-demand check evaluated at now.
func NewCheckShipmentSLAQuery(awb shipment.AWB, now time.Time) (CheckShipmentSLAQuery, error) {
	q := CheckShipmentSLAQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := awb.Validate(); err != nil {
		return CheckShipmentSLAQuery{}, err
	}

	if now.IsZero() {
		return CheckShipmentSLAQuery{}, errs.NewValueIsRequiredError("evaluation time")
	}

	q.awb = awb
	q.now = now
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q CheckShipmentSLAQuery) Validate() error {
	return q.guard.Validate(ErrCheckShipmentSLAQueryIsNotConstructed)
}

// AWB returns the tracking number being checked.
func (q CheckShipmentSLAQuery) AWB() shipment.AWB { return q.awb }

// Now returns the evaluation time.
func (q CheckShipmentSLAQuery) Now() time.Time { return q.now }

// SLAViolationResponse is one breached rule in the check read model.
type SLAViolationResponse struct {
	Rule    string
	Overdue time.Duration
}

// CheckShipmentSLAQueryResponse is the on-demand check read model. An empty
// Violations slice means the shipment is within all service levels.
type CheckShipmentSLAQueryResponse struct {
	AWB        string
	Status     string
	Violations []SLAViolationResponse
}
