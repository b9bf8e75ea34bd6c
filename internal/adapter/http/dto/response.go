package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dentora/clinicledger/internal/domain"
)

// BalanceResponse represents a patient balance in API responses.
type BalanceResponse struct {
	TotalDebt   decimal.Decimal `json:"total_debt"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// BalanceFromDomain converts a domain balance to a response.
func BalanceFromDomain(b domain.PatientBalance) BalanceResponse {
	return BalanceResponse{
		TotalDebt:   b.TotalDebt,
		TotalPaid:   b.TotalPaid,
		Outstanding: b.Outstanding,
	}
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID        string          `json:"id"`
	PatientID string          `json:"patient_id"`
	Amount    decimal.Decimal `json:"amount"`
	PaidOn    time.Time       `json:"paid_on"`
	Note      string          `json:"note,omitempty"`
	CreatedBy string          `json:"created_by,omitempty"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:        p.ID,
		PatientID: p.PatientID,
		Amount:    p.Amount,
		PaidOn:    p.PaidOn,
		Note:      p.Note,
		CreatedBy: p.CreatedBy,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// ListPaymentsResponse wraps a page of payments.
type ListPaymentsResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int64              `json:"total"`
}

// StatementItemResponse represents one billable item on a statement.
type StatementItemResponse struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredOn time.Time       `json:"occurred_on"`
	Paid       bool            `json:"paid"`
}

// StatementResponse is the billable item sequence plus the balance.
type StatementResponse struct {
	Items   []StatementItemResponse `json:"items"`
	Balance BalanceResponse         `json:"balance"`
}

// StatementFromDomain converts items and balance to a statement response.
func StatementFromDomain(items []domain.BillableItem, balance domain.PatientBalance) StatementResponse {
	out := make([]StatementItemResponse, len(items))
	for i, it := range items {
		out[i] = StatementItemResponse{
			ID:         it.ID,
			Kind:       string(it.Kind),
			Amount:     it.Amount,
			OccurredOn: it.OccurredOn,
			Paid:       it.Paid,
		}
	}
	return StatementResponse{
		Items:   out,
		Balance: BalanceFromDomain(balance),
	}
}

// RecalculateResponse reports a completed ledger recalculation.
type RecalculateResponse struct {
	ItemsChanged int             `json:"items_changed"`
	Balance      BalanceResponse `json:"balance"`
}

// AuditLogResponse represents one audit trail entry.
type AuditLogResponse struct {
	ID           string         `json:"id"`
	Actor        string         `json:"actor"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	Detail       map[string]any `json:"detail,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// AuditLogsFromDomain converts audit entries to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	out := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		out[i] = &AuditLogResponse{
			ID:           l.ID,
			Actor:        l.Actor,
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			Detail:       l.Detail,
			CreatedAt:    l.CreatedAt,
		}
	}
	return out
}

// ListAuditLogsResponse wraps a page of audit entries.
type ListAuditLogsResponse struct {
	AuditLogs []*AuditLogResponse `json:"audit_logs"`
	Total     int64               `json:"total"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
