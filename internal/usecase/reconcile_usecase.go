package usecase

import (
	"context"
	"time"

	"github.com/dentora/clinicledger/internal/domain"
)

// ItemCollector yields the ordered billable item sequence for a patient.
// Implemented by BalanceUseCase.
type ItemCollector interface {
	CollectItems(ctx context.Context, tenantID, patientID string) ([]domain.BillableItem, error)
	InvalidateBalance(ctx context.Context, tenantID, patientID string)
}

// ReconcileUseCase re-derives every billable item's paid flag from the
// current total of active payments. The engine recomputes the full
// allocation from scratch on every payment change, diffs it against the
// stored flags, and writes only the deltas.
type ReconcileUseCase struct {
	txManager       TransactionManager
	collector       ItemCollector
	appointmentRepo AppointmentRepository
	labWorkRepo     LabWorkRepository
	paymentRepo     PaymentRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
	retrier         Retrier
}

// NewReconcileUseCase creates a new ReconcileUseCase. retrier may be nil
// to disable retries.
func NewReconcileUseCase(
	txManager TransactionManager,
	collector ItemCollector,
	appointmentRepo AppointmentRepository,
	labWorkRepo LabWorkRepository,
	paymentRepo PaymentRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		txManager:       txManager,
		collector:       collector,
		appointmentRepo: appointmentRepo,
		labWorkRepo:     labWorkRepo,
		paymentRepo:     paymentRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
		retrier:         retrier,
	}
}

// Recalculate brings the stored paid flags in sync with the FIFO
// allocation of the patient's active payments. Idempotent: a second call
// with no intervening payment change issues zero writes. Returns the
// number of flags rewritten.
//
// All flag writes from one recalculation happen inside a single
// transaction; a failure leaves every flag as it was and the caller
// retries the whole recalculation.
func (uc *ReconcileUseCase) Recalculate(ctx context.Context, tenantID, patientID string) (int, error) {
	items, err := uc.collector.CollectItems(ctx, tenantID, patientID)
	if err != nil {
		return 0, err
	}

	totalPaid, err := uc.paymentRepo.SumActiveByPatient(ctx, tenantID, patientID)
	if err != nil {
		return 0, err
	}

	changed := domain.Changed(domain.Allocate(totalPaid, items))
	if len(changed) == 0 {
		return 0, nil
	}

	batches := batchByKindAndFlag(changed)

	apply := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer tx.Rollback(txCtx)

		for _, b := range batches {
			repo := uc.repoFor(b.kind)
			if err := repo.SetPaidFlags(txCtx, tx, tenantID, b.ids, b.paid); err != nil {
				return err
			}
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   patientID,
			AggregateType: domain.AggregateTypePatient,
			EventType:     domain.EventTypeLedgerRecalculated,
			Payload: map[string]any{
				"tenant_id":     tenantID,
				"patient_id":    patientID,
				"items_changed": len(changed),
				"total_paid":    totalPaid.String(),
			},
			CreatedAt: time.Now().UTC(),
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	}

	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, apply)
	} else {
		err = apply()
	}
	if err != nil {
		return 0, err
	}

	uc.collector.InvalidateBalance(ctx, tenantID, patientID)

	return len(changed), nil
}

func (uc *ReconcileUseCase) repoFor(kind domain.BillableKind) interface {
	SetPaidFlags(ctx context.Context, tx Transaction, tenantID string, ids []string, paid bool) error
} {
	if kind == domain.KindLabWork {
		return uc.labWorkRepo
	}
	return uc.appointmentRepo
}

type flagBatch struct {
	kind domain.BillableKind
	paid bool
	ids  []string
}

// batchByKindAndFlag groups the write set into at most four batched
// updates (kind x target flag), preserving input order within each batch.
func batchByKindAndFlag(changed []domain.ItemAllocation) []flagBatch {
	index := make(map[domain.BillableKind]map[bool]int)
	batches := make([]flagBatch, 0, 4)

	for _, a := range changed {
		kind := a.Item.Kind
		if index[kind] == nil {
			index[kind] = make(map[bool]int)
		}
		i, ok := index[kind][a.ShouldPay]
		if !ok {
			batches = append(batches, flagBatch{kind: kind, paid: a.ShouldPay})
			i = len(batches) - 1
			index[kind][a.ShouldPay] = i
		}
		batches[i].ids = append(batches[i].ids, a.Item.ID)
	}

	return batches
}
