package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dentora/clinicledger/internal/domain"
	"github.com/dentora/clinicledger/internal/infrastructure/postgres/generated"
	"github.com/dentora/clinicledger/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts the payment row within a transaction.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreatePayment(ctx, generated.CreatePaymentParams{
		ID:        payment.ID,
		TenantID:  payment.TenantID,
		PatientID: payment.PatientID,
		Amount:    decimalToNumeric(payment.Amount),
		PaidOn:    timeToPgTimestamptz(payment.PaidOn),
		Note:      payment.Note,
		CreatedBy: payment.CreatedBy,
		IsActive:  payment.IsActive,
		CreatedAt: timeToPgTimestamptz(payment.CreatedAt),
	})

	return err
}

// GetByID retrieves a payment by ID within the tenant.
func (r *PaymentRepository) GetByID(ctx context.Context, tenantID, paymentID string) (*domain.Payment, error) {
	row, err := r.queries.GetPaymentByID(ctx, generated.GetPaymentByIDParams{
		TenantID: tenantID,
		ID:       paymentID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	return rowToPayment(row), nil
}

// Deactivate soft-deletes an active payment within a transaction.
func (r *PaymentRepository) Deactivate(ctx context.Context, tx usecase.Transaction, tenantID, paymentID string, at time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	rows, err := queries.DeactivatePayment(ctx, generated.DeactivatePaymentParams{
		TenantID: tenantID,
		ID:       paymentID,
		VoidedAt: timeToPgTimestamptz(at),
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

// SumActiveByPatient returns the total of the patient's active payments.
func (r *PaymentRepository) SumActiveByPatient(ctx context.Context, tenantID, patientID string) (decimal.Decimal, error) {
	sum, err := r.queries.SumActivePayments(ctx, generated.SumActivePaymentsParams{
		TenantID:  tenantID,
		PatientID: patientID,
	})
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

// ListByPatient lists the patient's payments, newest first, active and
// voided alike.
func (r *PaymentRepository) ListByPatient(ctx context.Context, tenantID, patientID string, limit, offset int) ([]*domain.Payment, error) {
	rows, err := r.queries.ListPaymentsByPatient(ctx, generated.ListPaymentsByPatientParams{
		TenantID:  tenantID,
		PatientID: patientID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	payments := make([]*domain.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, rowToPayment(row))
	}

	return payments, nil
}

func rowToPayment(row generated.Payment) *domain.Payment {
	return &domain.Payment{
		ID:        row.ID,
		TenantID:  row.TenantID,
		PatientID: row.PatientID,
		Amount:    numericToDecimal(row.Amount),
		PaidOn:    row.PaidOn.Time,
		Note:      row.Note,
		CreatedBy: row.CreatedBy,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
