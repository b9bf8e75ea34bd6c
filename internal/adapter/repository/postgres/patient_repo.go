package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentora/clinicledger/internal/infrastructure/postgres/generated"
)

// PatientRepository implements usecase.PatientRepository.
type PatientRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewPatientRepository creates a new PatientRepository.
func NewPatientRepository(pool *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// ExistsActive reports whether the patient exists, is active, and belongs
// to the tenant.
func (r *PatientRepository) ExistsActive(ctx context.Context, tenantID, patientID string) (bool, error) {
	return r.queries.PatientExistsActive(ctx, generated.PatientExistsActiveParams{
		TenantID: tenantID,
		ID:       patientID,
	})
}
