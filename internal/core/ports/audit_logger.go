package ports

import (
	"context"
)

// SystemActor attributes audit entries written by background processes,
// such as auto-RTO escalation and the SLA sweep.
const SystemActor = "system"

// AuditEntry records who changed what. Before and After carry serialized
// snapshots of the entity around the change; either may be empty.
type AuditEntry struct {
	Actor       string
	EntityType  string
	EntityID    string
	Action      string
	Before      string
	After       string
	Description string
}

// AuditLogger appends entries to the audit trail. Writes are side channels:
// a failed append is logged by the caller and never fails the operation
// being audited.
type AuditLogger interface {
	Append(ctx context.Context, entry AuditEntry) error
}
