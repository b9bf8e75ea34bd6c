package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createPayment = `-- name: CreatePayment :one
INSERT INTO payments (id, tenant_id, patient_id, amount, paid_on, note, created_by, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, tenant_id, patient_id, amount, paid_on, note, created_by, is_active, voided_at, created_at
`

type CreatePaymentParams struct {
	ID        string             `json:"id"`
	TenantID  string             `json:"tenant_id"`
	PatientID string             `json:"patient_id"`
	Amount    pgtype.Numeric     `json:"amount"`
	PaidOn    pgtype.Timestamptz `json:"paid_on"`
	Note      string             `json:"note"`
	CreatedBy string             `json:"created_by"`
	IsActive  bool               `json:"is_active"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreatePayment(ctx context.Context, arg CreatePaymentParams) (Payment, error) {
	row := q.db.QueryRow(ctx, createPayment,
		arg.ID,
		arg.TenantID,
		arg.PatientID,
		arg.Amount,
		arg.PaidOn,
		arg.Note,
		arg.CreatedBy,
		arg.IsActive,
		arg.CreatedAt,
	)
	var i Payment
	err := row.Scan(
		&i.ID,
		&i.TenantID,
		&i.PatientID,
		&i.Amount,
		&i.PaidOn,
		&i.Note,
		&i.CreatedBy,
		&i.IsActive,
		&i.VoidedAt,
		&i.CreatedAt,
	)
	return i, err
}

const deactivatePayment = `-- name: DeactivatePayment :execrows
UPDATE payments SET is_active = FALSE, voided_at = $3
WHERE tenant_id = $1 AND id = $2 AND is_active = TRUE
`

type DeactivatePaymentParams struct {
	TenantID string             `json:"tenant_id"`
	ID       string             `json:"id"`
	VoidedAt pgtype.Timestamptz `json:"voided_at"`
}

func (q *Queries) DeactivatePayment(ctx context.Context, arg DeactivatePaymentParams) (int64, error) {
	result, err := q.db.Exec(ctx, deactivatePayment, arg.TenantID, arg.ID, arg.VoidedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getPaymentByID = `-- name: GetPaymentByID :one
SELECT id, tenant_id, patient_id, amount, paid_on, note, created_by, is_active, voided_at, created_at FROM payments
WHERE tenant_id = $1 AND id = $2
`

type GetPaymentByIDParams struct {
	TenantID string `json:"tenant_id"`
	ID       string `json:"id"`
}

func (q *Queries) GetPaymentByID(ctx context.Context, arg GetPaymentByIDParams) (Payment, error) {
	row := q.db.QueryRow(ctx, getPaymentByID, arg.TenantID, arg.ID)
	var i Payment
	err := row.Scan(
		&i.ID,
		&i.TenantID,
		&i.PatientID,
		&i.Amount,
		&i.PaidOn,
		&i.Note,
		&i.CreatedBy,
		&i.IsActive,
		&i.VoidedAt,
		&i.CreatedAt,
	)
	return i, err
}

const listPaymentsByPatient = `-- name: ListPaymentsByPatient :many
SELECT id, tenant_id, patient_id, amount, paid_on, note, created_by, is_active, voided_at, created_at FROM payments
WHERE tenant_id = $1 AND patient_id = $2
ORDER BY created_at DESC, id DESC
LIMIT $3 OFFSET $4
`

type ListPaymentsByPatientParams struct {
	TenantID  string `json:"tenant_id"`
	PatientID string `json:"patient_id"`
	Limit     int32  `json:"limit"`
	Offset    int32  `json:"offset"`
}

func (q *Queries) ListPaymentsByPatient(ctx context.Context, arg ListPaymentsByPatientParams) ([]Payment, error) {
	rows, err := q.db.Query(ctx, listPaymentsByPatient,
		arg.TenantID,
		arg.PatientID,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Payment
	for rows.Next() {
		var i Payment
		if err := rows.Scan(
			&i.ID,
			&i.TenantID,
			&i.PatientID,
			&i.Amount,
			&i.PaidOn,
			&i.Note,
			&i.CreatedBy,
			&i.IsActive,
			&i.VoidedAt,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const sumActivePayments = `-- name: SumActivePayments :one
SELECT COALESCE(SUM(amount), 0)::numeric FROM payments
WHERE tenant_id = $1 AND patient_id = $2 AND is_active = TRUE
`

type SumActivePaymentsParams struct {
	TenantID  string `json:"tenant_id"`
	PatientID string `json:"patient_id"`
}

func (q *Queries) SumActivePayments(ctx context.Context, arg SumActivePaymentsParams) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumActivePayments, arg.TenantID, arg.PatientID)
	var column_1 pgtype.Numeric
	err := row.Scan(&column_1)
	return column_1, err
}
