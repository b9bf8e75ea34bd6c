package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentora/clinicledger/internal/domain"
	"github.com/dentora/clinicledger/internal/infrastructure/postgres/generated"
	"github.com/dentora/clinicledger/internal/usecase"
)

// LabWorkRepository implements usecase.LabWorkRepository.
type LabWorkRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLabWorkRepository creates a new LabWorkRepository.
func NewLabWorkRepository(pool *pgxpool.Pool) *LabWorkRepository {
	return &LabWorkRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// ListBillable returns active lab-work items with a strictly positive
// price, ascending by performed date.
func (r *LabWorkRepository) ListBillable(ctx context.Context, tenantID, patientID string) ([]domain.BillableItem, error) {
	rows, err := r.queries.ListBillableLabWorks(ctx, generated.ListBillableLabWorksParams{
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
			Kind:       domain.KindLabWork,
			Amount:     numericToDecimal(row.Price),
			OccurredOn: row.PerformedOn.Time,
			Paid:       row.IsPaid,
		})
	}

	return items, nil
}

// SetPaidFlags flips is_paid for the given lab-work items within the
// recalculation transaction.
func (r *LabWorkRepository) SetPaidFlags(ctx context.Context, tx usecase.Transaction, tenantID string, ids []string, paid bool) error {
	if len(ids) == 0 {
		return nil
	}

	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.SetLabWorksPaid(ctx, generated.SetLabWorksPaidParams{
		TenantID: tenantID,
		Ids:      ids,
		IsPaid:   paid,
	})
}
