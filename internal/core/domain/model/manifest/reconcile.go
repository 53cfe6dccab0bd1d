package manifest

import (
	"fmt"
	"sort"
	"strings"
)

// ReconciliationResult is the outcome of comparing a manifest's expected
// shipment set with the tracking numbers actually scanned at receipt. The
// three lists partition the union of both sets:
//
//   - Received: scanned and expected, the only shipments that change status
//   - NotInManifest: scanned but not expected, an anomaly to surface since the
//     parcel is physically present without paperwork
//   - NotReceived: expected but not scanned, a missing or lost goods signal
//
// Discrepancies are first-class output of a successful receipt, never an
// error: real freight reconciliation must complete even with partial
// mismatch, and the mismatch itself is the actionable result.
type ReconciliationResult struct {
	Received      []string
	NotInManifest []string
	NotReceived   []string
}

// Reconcile partitions expected and scanned tracking numbers. Duplicates
// within either input are collapsed; all three output lists are sorted for
// stable notes and responses.
func Reconcile(expected, scanned []string) ReconciliationResult {
	expectedSet := make(map[string]bool, len(expected))
	for _, awb := range expected {
		expectedSet[awb] = true
	}
	scannedSet := make(map[string]bool, len(scanned))
	for _, awb := range scanned {
		scannedSet[awb] = true
	}

	result := ReconciliationResult{
		Received:      make([]string, 0, len(scanned)),
		NotInManifest: make([]string, 0),
		NotReceived:   make([]string, 0),
	}

	for awb := range scannedSet {
		if expectedSet[awb] {
			result.Received = append(result.Received, awb)
		} else {
			result.NotInManifest = append(result.NotInManifest, awb)
		}
	}
	for awb := range expectedSet {
		if !scannedSet[awb] {
			result.NotReceived = append(result.NotReceived, awb)
		}
	}

	sort.Strings(result.Received)
	sort.Strings(result.NotInManifest)
	sort.Strings(result.NotReceived)
	return result
}

// HasDiscrepancies reports whether receipt found anything other than a
// perfect match.
func (r ReconciliationResult) HasDiscrepancies() bool {
	return len(r.NotInManifest) > 0 || len(r.NotReceived) > 0
}

// Notes renders the result for the manifest's notes field.
func (r ReconciliationResult) Notes() string {
	if !r.HasDiscrepancies() {
		return fmt.Sprintf("received %d shipments, no discrepancies", len(r.Received))
	}

	parts := []string{fmt.Sprintf("received %d shipments", len(r.Received))}
	if len(r.NotReceived) > 0 {
		parts = append(parts, fmt.Sprintf("not received: %s", strings.Join(r.NotReceived, ", ")))
	}
	if len(r.NotInManifest) > 0 {
		parts = append(parts, fmt.Sprintf("not in manifest: %s", strings.Join(r.NotInManifest, ", ")))
	}
	return strings.Join(parts, "; ")
}
