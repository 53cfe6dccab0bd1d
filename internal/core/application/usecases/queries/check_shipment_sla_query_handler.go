package queries

import (
	"context"

	"parcelhub/internal/core/domain/services"

	"gorm.io/gorm"
)

// CheckShipmentSLAQueryHandler evaluates the service-level policy against one
// shipment without side effects.
type CheckShipmentSLAQueryHandler struct {
	db     *gorm.DB
	policy services.SLAPolicy
}

// NewCheckShipmentSLAQueryHandler creates a handler for on-demand checks.
func NewCheckShipmentSLAQueryHandler(db *gorm.DB, policy services.SLAPolicy) CheckShipmentSLAQueryHandler {
	return CheckShipmentSLAQueryHandler{
		db:     db,
		policy: policy,
	}
}

// Handle executes the check.
func (h CheckShipmentSLAQueryHandler) Handle(
	ctx context.Context,
	query CheckShipmentSLAQuery,
) (CheckShipmentSLAQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckShipmentSLAQueryResponse{}, err
	}

	sh, err := loadShipmentByAWB(ctx, h.db, query.AWB().String())
	if err != nil {
		return CheckShipmentSLAQueryResponse{}, err
	}

	violations, err := h.policy.Evaluate(sh, query.Now())
	if err != nil {
		return CheckShipmentSLAQueryResponse{}, err
	}

	resp := CheckShipmentSLAQueryResponse{
		AWB:        sh.AWB().String(),
		Status:     sh.Status().String(),
		Violations: make([]SLAViolationResponse, 0, len(violations)),
	}
	for _, v := range violations {
		resp.Violations = append(resp.Violations, SLAViolationResponse{
			Rule:    v.Kind.String(),
			Overdue: v.Overdue,
		})
	}

	return resp, nil
}
