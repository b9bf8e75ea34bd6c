package domain

import "time"

// Audit actions
const (
	AuditPaymentCreated     = "payment.created"
	AuditPaymentVoided      = "payment.voided"
	AuditLedgerRecalculated = "ledger.recalculated"
)

// AuditLog records who did what to which resource. Audit rows are written
// best effort after the mutation commits; they never block the operation.
type AuditLog struct {
	ID           string
	TenantID     string
	Actor        string
	Action       string
	ResourceType string
	ResourceID   string
	Detail       map[string]any
	CreatedAt    time.Time
}

// AuditFilter narrows audit log listings.
type AuditFilter struct {
	TenantID     string
	Action       string
	ResourceType string
	ResourceID   string
	Limit        int
	Offset       int
}
