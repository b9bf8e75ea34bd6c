package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const listBillableLabWorks = `-- name: ListBillableLabWorks :many
SELECT id, price, performed_on, is_paid FROM lab_works
WHERE tenant_id = $1 AND patient_id = $2 AND is_active = TRUE AND price > 0
ORDER BY performed_on, id
`

type ListBillableLabWorksParams struct {
	TenantID  string `json:"tenant_id"`
	PatientID string `json:"patient_id"`
}

type ListBillableLabWorksRow struct {
	ID          string         `json:"id"`
	Price       pgtype.Numeric `json:"price"`
	PerformedOn pgtype.Date    `json:"performed_on"`
	IsPaid      bool           `json:"is_paid"`
}

func (q *Queries) ListBillableLabWorks(ctx context.Context, arg ListBillableLabWorksParams) ([]ListBillableLabWorksRow, error) {
	rows, err := q.db.Query(ctx, listBillableLabWorks, arg.TenantID, arg.PatientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListBillableLabWorksRow
	for rows.Next() {
		var i ListBillableLabWorksRow
		if err := rows.Scan(
			&i.ID,
			&i.Price,
			&i.PerformedOn,
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

const setLabWorksPaid = `-- name: SetLabWorksPaid :exec
UPDATE lab_works SET is_paid = $3
WHERE tenant_id = $1 AND id = ANY($2::text[])
`

type SetLabWorksPaidParams struct {
	TenantID string   `json:"tenant_id"`
	Ids      []string `json:"ids"`
	IsPaid   bool     `json:"is_paid"`
}

func (q *Queries) SetLabWorksPaid(ctx context.Context, arg SetLabWorksPaidParams) error {
	_, err := q.db.Exec(ctx, setLabWorksPaid, arg.TenantID, arg.Ids, arg.IsPaid)
	return err
}

const createLabWork = `-- name: CreateLabWork :exec
INSERT INTO lab_works (id, tenant_id, patient_id, price, performed_on, is_paid, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type CreateLabWorkParams struct {
	ID          string             `json:"id"`
	TenantID    string             `json:"tenant_id"`
	PatientID   string             `json:"patient_id"`
	Price       pgtype.Numeric     `json:"price"`
	PerformedOn pgtype.Date        `json:"performed_on"`
	IsPaid      bool               `json:"is_paid"`
	IsActive    bool               `json:"is_active"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateLabWork(ctx context.Context, arg CreateLabWorkParams) error {
	_, err := q.db.Exec(ctx, createLabWork,
		arg.ID,
		arg.TenantID,
		arg.PatientID,
		arg.Price,
		arg.PerformedOn,
		arg.IsPaid,
		arg.IsActive,
		arg.CreatedAt,
	)
	return err
}
