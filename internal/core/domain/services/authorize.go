package services

import (
	"errors"
	"fmt"

	"parcelhub/internal/core/domain/model/kernel"
)

// ErrActionNotPermitted is returned when an actor may not perform an action.
var ErrActionNotPermitted = errors.New("action not permitted")

// Role is the coarse category an authenticated actor belongs to.
type Role int

const (
	RoleUnknown Role = iota
	RoleMerchant
	RoleRider
	RoleHubStaff
	RoleAdmin
	// RoleSystem is used by background jobs such as the SLA sweep.
	RoleSystem
)

func roleStrings() map[Role]string {
	return map[Role]string{
		RoleMerchant: "merchant",
		RoleRider:    "rider",
		RoleHubStaff: "hub_staff",
		RoleAdmin:    "admin",
		RoleSystem:   "system",
	}
}

// String returns the role's wire name.
func (r Role) String() string {
	if s, ok := roleStrings()[r]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%d)", int(r))
}

// RoleFromString parses a wire name into a Role.
func RoleFromString(s string) (Role, error) {
	for r, name := range roleStrings() {
		if name == s {
			return r, nil
		}
	}
	return RoleUnknown, fmt.Errorf("unknown role: %s", s)
}

// Action names an operation an actor may attempt.
type Action string

const (
	ActionCreateShipment    Action = "create_shipment"
	ActionCancelShipment    Action = "cancel_shipment"
	ActionAssignPickup      Action = "assign_pickup"
	ActionScanInbound       Action = "scan_inbound"
	ActionScanOutbound      Action = "scan_outbound"
	ActionCompletePickup    Action = "complete_pickup"
	ActionGenerateOTP       Action = "generate_otp"
	ActionCompleteDelivery  Action = "complete_delivery"
	ActionFailDelivery      Action = "fail_delivery"
	ActionMarkRTO           Action = "mark_rto"
	ActionCompleteRTOReturn Action = "complete_rto_return"
	ActionCreateManifest    Action = "create_manifest"
	ActionReceiveManifest   Action = "receive_manifest"
	ActionCloseManifest     Action = "close_manifest"
	ActionRecordLocation    Action = "record_location"
	ActionViewTracking      Action = "view_tracking"
	ActionCheckSLA          Action = "check_sla"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// Target carries the ownership facts the decision may depend on.
// Nil fields mean the fact does not apply to the operation.
type Target struct {
	// MerchantID is the owning merchant of the shipment or manifest.
	MerchantID *kernel.UUID
	// AssignedRiderID is the rider currently assigned to the shipment.
	AssignedRiderID *kernel.UUID
}

// Authorize decides whether an actor may perform an action on a target.
// It is a pure function of its inputs and carries no transport concerns;
// the inbound adapters call it before dispatching a command.
func Authorize(actor Actor, action Action, target Target) error {
	if actor.Role == RoleAdmin || actor.Role == RoleSystem {
		return nil
	}

	deny := func() error {
		return fmt.Errorf("%w: %s may not %s", ErrActionNotPermitted, actor.Role, action)
	}

	switch actor.Role {
	case RoleHubStaff:
		switch action {
		case ActionScanInbound, ActionScanOutbound,
			ActionCreateManifest, ActionReceiveManifest, ActionCloseManifest,
			ActionAssignPickup, ActionCompleteRTOReturn,
			ActionViewTracking, ActionCheckSLA:
			return nil
		}
		return deny()

	case RoleRider:
		switch action {
		case ActionGenerateOTP, ActionCompleteDelivery, ActionFailDelivery, ActionMarkRTO:
			// A nil assignment fact defers to the aggregate, which rejects
			// actions from a rider it is not assigned to.
			if target.AssignedRiderID != nil && !target.AssignedRiderID.IsEqual(actor.ID) {
				return fmt.Errorf("%w: shipment is assigned to another rider", ErrActionNotPermitted)
			}
			return nil
		case ActionCompletePickup, ActionRecordLocation, ActionViewTracking:
			return nil
		}
		return deny()

	case RoleMerchant:
		switch action {
		case ActionCreateShipment:
			return nil
		case ActionCancelShipment, ActionViewTracking, ActionCheckSLA:
			if target.MerchantID != nil && !target.MerchantID.IsEqual(actor.ID) {
				return fmt.Errorf("%w: shipment belongs to another merchant", ErrActionNotPermitted)
			}
			return nil
		}
		return deny()
	}

	return deny()
}
