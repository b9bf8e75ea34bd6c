package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentora/clinicledger/internal/domain"
	"github.com/dentora/clinicledger/internal/infrastructure/postgres/generated"
	"github.com/dentora/clinicledger/internal/usecase"
)

// AppointmentRepository implements usecase.AppointmentRepository.
type AppointmentRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewAppointmentRepository creates a new AppointmentRepository.
func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// ListBillable returns active appointments with a strictly positive cost,
// ascending by start time.
func (r *AppointmentRepository) ListBillable(ctx context.Context, tenantID, patientID string) ([]domain.BillableItem, error) {
	rows, err := r.queries.ListBillableAppointments(ctx, generated.ListBillableAppointmentsParams{
		TenantID:  tenantID,
		PatientID: patientID,
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.BillableItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.BillableItem{
			ID:         row.ID,
			Kind:       domain.KindAppointment,
			Amount:     numericToDecimal(row.Cost),
			OccurredOn: row.StartsAt.Time,
			Paid:       row.IsPaid,
		})
	}

	return items, nil
}

// SetPaidFlags flips is_paid for the given appointments within the
// recalculation transaction.
func (r *AppointmentRepository) SetPaidFlags(ctx context.Context, tx usecase.Transaction, tenantID string, ids []string, paid bool) error {
	if len(ids) == 0 {
		return nil
	}

	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.SetAppointmentsPaid(ctx, generated.SetAppointmentsPaidParams{
		TenantID: tenantID,
		Ids:      ids,
		IsPaid:   paid,
	})
}
