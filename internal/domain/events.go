package domain

import "time"

// Event types
const (
	EventTypePaymentCreated     = "payment.created"
	EventTypePaymentVoided      = "payment.voided"
	EventTypeLedgerRecalculated = "ledger.recalculated"
)

// Aggregate types
const (
	AggregateTypePayment = "payment"
	AggregateTypePatient = "patient"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// PaymentCreatedEvent payload
type PaymentCreatedEvent struct {
	PaymentID string `json:"payment_id"`
	TenantID  string `json:"tenant_id"`
	PatientID string `json:"patient_id"`
	Amount    string `json:"amount"`
	PaidOn    string `json:"paid_on"`
}

// PaymentVoidedEvent payload
type PaymentVoidedEvent struct {
	PaymentID string `json:"payment_id"`
	TenantID  string `json:"tenant_id"`
	PatientID string `json:"patient_id"`
	Amount    string `json:"amount"`
}

// LedgerRecalculatedEvent payload
type LedgerRecalculatedEvent struct {
	TenantID     string `json:"tenant_id"`
	PatientID    string `json:"patient_id"`
	ItemsChanged int    `json:"items_changed"`
	TotalPaid    string `json:"total_paid"`
}
