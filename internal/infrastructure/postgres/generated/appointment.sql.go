package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const listBillableAppointments = `-- name: ListBillableAppointments :many
SELECT id, cost, starts_at, is_paid FROM appointments
WHERE tenant_id = $1 AND patient_id = $2 AND is_active = TRUE AND cost > 0
ORDER BY starts_at, id
`

type ListBillableAppointmentsParams struct {
	TenantID  string `json:"tenant_id"`
	PatientID string `json:"patient_id"`
}

type ListBillableAppointmentsRow struct {
	ID       string             `json:"id"`
	Cost     pgtype.Numeric     `json:"cost"`
	StartsAt pgtype.Timestamptz `json:"starts_at"`
	IsPaid   bool               `json:"is_paid"`
}

func (q *Queries) ListBillableAppointments(ctx context.Context, arg ListBillableAppointmentsParams) ([]ListBillableAppointmentsRow, error) {
	rows, err := q.db.Query(ctx, listBillableAppointments, arg.TenantID, arg.PatientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListBillableAppointmentsRow
	for rows.Next() {
		var i ListBillableAppointmentsRow
		if err := rows.Scan(
			&i.ID,
			&i.Cost,
			&i.StartsAt,
			&i.IsPaid,
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

const setAppointmentsPaid = `-- name: SetAppointmentsPaid :exec
UPDATE appointments SET is_paid = $3
WHERE tenant_id = $1 AND id = ANY($2::text[])
`

type SetAppointmentsPaidParams struct {
	TenantID string   `json:"tenant_id"`
	Ids      []string `json:"ids"`
	IsPaid   bool     `json:"is_paid"`
}

func (q *Queries) SetAppointmentsPaid(ctx context.Context, arg SetAppointmentsPaidParams) error {
	_, err := q.db.Exec(ctx, setAppointmentsPaid, arg.TenantID, arg.Ids, arg.IsPaid)
	return err
}

const createAppointment = `-- name: CreateAppointment :exec
INSERT INTO appointments (id, tenant_id, patient_id, cost, starts_at, is_paid, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type CreateAppointmentParams struct {
	ID        string             `json:"id"`
	TenantID  string             `json:"tenant_id"`
	PatientID string             `json:"patient_id"`
	Cost      pgtype.Numeric     `json:"cost"`
	StartsAt  pgtype.Timestamptz `json:"starts_at"`
	IsPaid    bool               `json:"is_paid"`
	IsActive  bool               `json:"is_active"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateAppointment(ctx context.Context, arg CreateAppointmentParams) error {
	_, err := q.db.Exec(ctx, createAppointment,
		arg.ID,
		arg.TenantID,
		arg.PatientID,
		arg.Cost,
		arg.StartsAt,
		arg.IsPaid,
		arg.IsActive,
		arg.CreatedAt,
	)
	return err
}
