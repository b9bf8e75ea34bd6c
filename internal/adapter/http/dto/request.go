package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dentora/clinicledger/internal/usecase"
)

// CreatePaymentRequest represents a request to record a payment.
type CreatePaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	PaidOn *time.Time      `json:"paid_on,omitempty"`
	Note   string          `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input. Tenant, patient, and actor
// come from the request context and path, not the body.
func (r *CreatePaymentRequest) ToUseCaseInput(tenantID, patientID, createdBy string) usecase.CreatePaymentInput {
	input := usecase.CreatePaymentInput{
		TenantID:  tenantID,
		PatientID: patientID,
		Amount:    r.Amount,
		Note:      r.Note,
		CreatedBy: createdBy,
	}
	if r.PaidOn != nil {
		input.PaidOn = *r.PaidOn
	}
	return input
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
