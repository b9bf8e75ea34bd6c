package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dentora/clinicledger/internal/domain"
)

// BalanceService is the slice of BalanceUseCase the payment lifecycle
// needs: a fresh balance for the pre-insert check and cache invalidation
// after mutations.
type BalanceService interface {
	ComputeBalance(ctx context.Context, tenantID, patientID string) (domain.PatientBalance, error)
	InvalidateBalance(ctx context.Context, tenantID, patientID string)
}

// Reconciler re-derives paid flags after a payment mutation.
// Implemented by ReconcileUseCase.
type Reconciler interface {
	Recalculate(ctx context.Context, tenantID, patientID string) (int, error)
}

// PaymentUseCase owns the only mutation entry points of the billing
// engine: creating a payment and voiding one. Each mutation validates
// against the current balance, persists the change, and synchronously
// recalculates the patient's ledger before returning.
type PaymentUseCase struct {
	txManager   TransactionManager
	patientRepo PatientRepository
	paymentRepo PaymentRepository
	auditRepo   AuditRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	balances    BalanceService
	reconciler  Reconciler
	locks       *patientLocks
	logger      zerolog.Logger
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	patientRepo PatientRepository,
	paymentRepo PaymentRepository,
	auditRepo AuditRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	balances BalanceService,
	reconciler Reconciler,
	logger zerolog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:   txManager,
		patientRepo: patientRepo,
		paymentRepo: paymentRepo,
		auditRepo:   auditRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		balances:    balances,
		reconciler:  reconciler,
		locks:       newPatientLocks(),
		logger:      logger,
	}
}

// CreatePaymentInput represents input for creating a payment.
type CreatePaymentInput struct {
	TenantID  string
	PatientID string
	Amount    decimal.Decimal
	PaidOn    time.Time
	Note      string
	CreatedBy string
}

// CreatePayment records a payment after checking it does not exceed the
// patient's outstanding balance, then recalculates the ledger. The
// balance check and the insert run under the per-patient lock, so
// concurrent creates for one patient cannot jointly overpay.
//
// The payment row commits before the flag recalculation transaction. If
// recalculation fails the payment stays valid, the error propagates, and
// the flags remain stale until Recalculate is retried.
func (uc *PaymentUseCase) CreatePayment(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error) {
	if err := domain.ValidateID(input.TenantID); err != nil {
		return nil, err
	}
	if err := domain.ValidateID(input.PatientID); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateNote(input.Note); err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(input.TenantID, input.PatientID)
	defer unlock()

	// Fresh read under the lock: no stale-read tolerance on the check.
	balance, err := uc.balances.ComputeBalance(ctx, input.TenantID, input.PatientID)
	if err != nil {
		return nil, err
	}

	if input.Amount.GreaterThan(balance.Outstanding) {
		return nil, domain.ErrExceedsBalance
	}

	now := time.Now().UTC()
	paidOn := input.PaidOn
	if paidOn.IsZero() {
		paidOn = now
	}

	payment := &domain.Payment{
		ID:        uc.idGen.Generate(),
		TenantID:  input.TenantID,
		PatientID: input.PatientID,
		Amount:    input.Amount,
		PaidOn:    paidOn,
		Note:      input.Note,
		CreatedBy: input.CreatedBy,
		IsActive:  true,
		CreatedAt: now,
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if err := uc.persistPayment(ctx, payment); err != nil {
		return nil, err
	}

	uc.balances.InvalidateBalance(ctx, input.TenantID, input.PatientID)

	if _, err := uc.reconciler.Recalculate(ctx, input.TenantID, input.PatientID); err != nil {
		uc.logger.Error().Err(err).
			Str("tenant_id", input.TenantID).
			Str("patient_id", input.PatientID).
			Str("payment_id", payment.ID).
			Msg("recalculation failed after payment creation; retry recalculate")
		return nil, err
	}

	uc.writeAudit(ctx, payment, domain.AuditPaymentCreated, input.CreatedBy)

	return payment, nil
}

// VoidPaymentInput represents input for soft-deleting a payment.
type VoidPaymentInput struct {
	TenantID  string
	PaymentID string
	VoidedBy  string
}

// VoidPayment soft-deletes a payment and recalculates the owning
// patient's ledger, generally flipping previously-paid items back to
// unpaid. Voiding an already-voided payment is an error, not a no-op.
func (uc *PaymentUseCase) VoidPayment(ctx context.Context, input VoidPaymentInput) (*domain.Payment, error) {
	if err := domain.ValidateID(input.TenantID); err != nil {
		return nil, err
	}
	if err := domain.ValidateID(input.PaymentID); err != nil {
		return nil, err
	}

	payment, err := uc.paymentRepo.GetByID(ctx, input.TenantID, input.PaymentID)
	if err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(payment.TenantID, payment.PatientID)
	defer unlock()

	// Re-read under the lock; a concurrent void may have won.
	payment, err = uc.paymentRepo.GetByID(ctx, input.TenantID, input.PaymentID)
	if err != nil {
		return nil, err
	}
	if !payment.IsActive {
		return nil, domain.ErrPaymentInactive
	}

	now := time.Now().UTC()
	if err := uc.deactivatePayment(ctx, payment, now); err != nil {
		return nil, err
	}
	payment.IsActive = false

	uc.balances.InvalidateBalance(ctx, payment.TenantID, payment.PatientID)

	if _, err := uc.reconciler.Recalculate(ctx, payment.TenantID, payment.PatientID); err != nil {
		uc.logger.Error().Err(err).
			Str("tenant_id", payment.TenantID).
			Str("patient_id", payment.PatientID).
			Str("payment_id", payment.ID).
			Msg("recalculation failed after payment void; retry recalculate")
		return nil, err
	}

	uc.writeAudit(ctx, payment, domain.AuditPaymentVoided, input.VoidedBy)

	return payment, nil
}

// ListPaymentsInput represents input for listing a patient's payments.
type ListPaymentsInput struct {
	TenantID  string
	PatientID string
	Limit     int
	Offset    int
}

// ListPayments lists a patient's payments, active and voided, newest
// first.
func (uc *PaymentUseCase) ListPayments(ctx context.Context, input ListPaymentsInput) ([]*domain.Payment, error) {
	exists, err := uc.patientRepo.ExistsActive(ctx, input.TenantID, input.PatientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrPatientNotFound
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.paymentRepo.ListByPatient(ctx, input.TenantID, input.PatientID, limit, offset)
}

// persistPayment commits the payment row and its outbox event atomically.
func (uc *PaymentUseCase) persistPayment(ctx context.Context, payment *domain.Payment) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.paymentRepo.Create(ctx, tx, payment); err != nil {
		return err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   payment.ID,
		AggregateType: domain.AggregateTypePayment,
		EventType:     domain.EventTypePaymentCreated,
		Payload: map[string]any{
			"payment_id": payment.ID,
			"tenant_id":  payment.TenantID,
			"patient_id": payment.PatientID,
			"amount":     payment.Amount.String(),
			"paid_on":    payment.PaidOn.Format(time.RFC3339),
		},
		CreatedAt: payment.CreatedAt,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (uc *PaymentUseCase) deactivatePayment(ctx context.Context, payment *domain.Payment, at time.Time) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.paymentRepo.Deactivate(ctx, tx, payment.TenantID, payment.ID, at); err != nil {
		return err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   payment.ID,
		AggregateType: domain.AggregateTypePayment,
		EventType:     domain.EventTypePaymentVoided,
		Payload: map[string]any{
			"payment_id": payment.ID,
			"tenant_id":  payment.TenantID,
			"patient_id": payment.PatientID,
			"amount":     payment.Amount.String(),
		},
		CreatedAt: at,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// writeAudit records the mutation best effort; audit failures are logged
// and never fail the operation.
func (uc *PaymentUseCase) writeAudit(ctx context.Context, payment *domain.Payment, action, actor string) {
	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		TenantID:     payment.TenantID,
		Actor:        actor,
		Action:       action,
		ResourceType: domain.AggregateTypePayment,
		ResourceID:   payment.ID,
		Detail: map[string]any{
			"patient_id": payment.PatientID,
			"amount":     payment.Amount.String(),
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.auditRepo.Create(ctx, log); err != nil {
		uc.logger.Warn().Err(err).
			Str("action", action).
			Str("payment_id", payment.ID).
			Msg("failed to write audit log")
	}
}
