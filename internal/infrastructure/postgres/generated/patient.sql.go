package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const patientExistsActive = `-- name: PatientExistsActive :one
SELECT EXISTS (
    SELECT 1 FROM patients
    WHERE tenant_id = $1 AND id = $2 AND is_active = TRUE
)
`

type PatientExistsActiveParams struct {
	TenantID string `json:"tenant_id"`
	ID       string `json:"id"`
}

func (q *Queries) PatientExistsActive(ctx context.Context, arg PatientExistsActiveParams) (bool, error) {
	row := q.db.QueryRow(ctx, patientExistsActive, arg.TenantID, arg.ID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const createPatient = `-- name: CreatePatient :exec
INSERT INTO patients (id, tenant_id, name, is_active, created_at)
VALUES ($1, $2, $3, $4, $5)
`

type CreatePatientParams struct {
	ID        string             `json:"id"`
	TenantID  string             `json:"tenant_id"`
	Name      string             `json:"name"`
	IsActive  bool               `json:"is_active"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreatePatient(ctx context.Context, arg CreatePatientParams) error {
	_, err := q.db.Exec(ctx, createPatient,
		arg.ID,
		arg.TenantID,
		arg.Name,
		arg.IsActive,
		arg.CreatedAt,
	)
	return err
}
