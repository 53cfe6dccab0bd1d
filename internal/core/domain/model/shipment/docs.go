// Package shipment contains the Shipment aggregate, the authoritative state
// machine of the parcel lifecycle.
//
// A shipment is booked pending, picked up from the merchant, scanned through
// one or more hubs (in_hub and in_transit cycle as the parcel hops across the
// network), handed to a rider, and finishes delivered, or falls onto the
// return-to-origin leg after failed attempts. All status transitions are
// validated against the predecessor sets in status.go; an illegal transition
// is rejected with an InvalidStateTransitionError and leaves the aggregate
// untouched.
//
// Rider-side rules live here too: OTP issuance and verification, the exact
// cash-on-delivery settlement gate, the failed-attempt counter, and the
// atomic auto-escalation to return-to-origin at the attempt threshold.
//
// Shipments are created via NewShipment, reconstructed from persistence via
// RestoreShipment, and persisted by the caller under an optimistic version
// check after each behavior method.
package shipment
