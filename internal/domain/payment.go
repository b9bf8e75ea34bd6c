package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is money received from a patient. Payments are soft-deleted,
// never removed: a voided payment keeps its row with IsActive false and
// stops counting toward the patient's balance.
type Payment struct {
	ID        string
	TenantID  string
	PatientID string
	Amount    decimal.Decimal
	PaidOn    time.Time
	Note      string
	CreatedBy string
	IsActive  bool
	CreatedAt time.Time
}

// Validate checks payment fields before persistence.
func (p *Payment) Validate() error {
	if p.TenantID == "" || p.PatientID == "" {
		return ErrPatientNotFound
	}
	if err := ValidateAmount(p.Amount); err != nil {
		return err
	}
	return ValidateNote(p.Note)
}
