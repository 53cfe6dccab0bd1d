// Package manifest contains the Manifest aggregate: a batch of shipments
// moving together between two hubs.
//
// A manifest exists only because parcels physically left on a vehicle, so the
// constructor dispatches immediately: the created status is transitioned to
// in_transit within the same operation and is never observable from outside.
// Downstream reconciliation relies on an attached manifest always being
// in_transit, so this behavior is deliberate and must not be "fixed".
//
// Receipt at the destination hub runs the reconciliation in reconcile.go:
// the expected set (shipments referencing the manifest) is compared with the
// actually-scanned tracking numbers, and the resulting discrepancy lists are
// first-class output of a successful receipt, not errors. The manifest always
// reaches received, with discrepancies recorded in its notes.
//
// Manifest numbers are day-scoped gapless sequences (MF-YYYYMMDD-NNNN); the
// sequence arithmetic lives in number.go, while serializing concurrent
// allocation is the repository's job.
package manifest
