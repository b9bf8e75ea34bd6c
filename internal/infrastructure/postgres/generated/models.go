package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Appointment struct {
	ID        string             `json:"id"`
	TenantID  string             `json:"tenant_id"`
	PatientID string             `json:"patient_id"`
	Cost      pgtype.Numeric     `json:"cost"`
	StartsAt  pgtype.Timestamptz `json:"starts_at"`
	IsPaid    bool               `json:"is_paid"`
	IsActive  bool               `json:"is_active"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type LabWork struct {
	ID          string             `json:"id"`
	TenantID    string             `json:"tenant_id"`
	PatientID   string             `json:"patient_id"`
	Price       pgtype.Numeric     `json:"price"`
	PerformedOn pgtype.Date        `json:"performed_on"`
	IsPaid      bool               `json:"is_paid"`
	IsActive    bool               `json:"is_active"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

type Patient struct {
	ID        string             `json:"id"`
	TenantID  string             `json:"tenant_id"`
	Name      string             `json:"name"`
	IsActive  bool               `json:"is_active"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type Payment struct {
	ID        string             `json:"id"`
	TenantID  string             `json:"tenant_id"`
	PatientID string             `json:"patient_id"`
	Amount    pgtype.Numeric     `json:"amount"`
	PaidOn    pgtype.Timestamptz `json:"paid_on"`
	Note      string             `json:"note"`
	CreatedBy string             `json:"created_by"`
	IsActive  bool               `json:"is_active"`
	VoidedAt  pgtype.Timestamptz `json:"voided_at"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}
