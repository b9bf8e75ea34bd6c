package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/dentora/clinicledger/internal/domain"
)

// BalanceUseCase computes a patient's debt, payments, and outstanding
// balance, and collects the ordered billable item sequence the allocator
// consumes.
type BalanceUseCase struct {
	patientRepo     PatientRepository
	appointmentRepo AppointmentRepository
	labWorkRepo     LabWorkRepository
	paymentRepo     PaymentRepository
	cache           Cache
}

// NewBalanceUseCase creates a new BalanceUseCase. cache may be nil to
// disable balance caching.
func NewBalanceUseCase(
	patientRepo PatientRepository,
	appointmentRepo AppointmentRepository,
	labWorkRepo LabWorkRepository,
	paymentRepo PaymentRepository,
	cache Cache,
) *BalanceUseCase {
	return &BalanceUseCase{
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		labWorkRepo:     labWorkRepo,
		paymentRepo:     paymentRepo,
		cache:           cache,
	}
}

// CollectItems gathers every active, chargeable obligation for the
// patient: appointments with positive cost and lab-work items with
// positive price, merged ascending by occurrence date (appointments
// before lab work on ties). Pure read; a non-existent patient yields an
// empty sequence.
func (uc *BalanceUseCase) CollectItems(ctx context.Context, tenantID, patientID string) ([]domain.BillableItem, error) {
	var appointments, labWorks []domain.BillableItem

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		appointments, err = uc.appointmentRepo.ListBillable(gctx, tenantID, patientID)
		return err
	})

	g.Go(func() error {
		var err error
		labWorks, err = uc.labWorkRepo.ListBillable(gctx, tenantID, patientID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]domain.BillableItem, 0, len(appointments)+len(labWorks))
	items = append(items, appointments...)
	items = append(items, labWorks...)
	domain.SortItems(items)

	return items, nil
}

// ComputeBalance returns the patient's balance computed fresh from
// storage. Fails with domain.ErrPatientNotFound when the patient does not
// exist or belongs to another tenant.
func (uc *BalanceUseCase) ComputeBalance(ctx context.Context, tenantID, patientID string) (domain.PatientBalance, error) {
	if err := uc.requirePatient(ctx, tenantID, patientID); err != nil {
		return domain.PatientBalance{}, err
	}

	return uc.computeBalance(ctx, tenantID, patientID)
}

// CachedBalance is ComputeBalance behind the balance cache. Only read
// paths should use it; the payment balance check always computes fresh.
func (uc *BalanceUseCase) CachedBalance(ctx context.Context, tenantID, patientID string) (domain.PatientBalance, error) {
	if err := uc.requirePatient(ctx, tenantID, patientID); err != nil {
		return domain.PatientBalance{}, err
	}

	key := balanceCacheKey(tenantID, patientID)

	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, key); err == nil {
			var balance domain.PatientBalance
			if err := json.Unmarshal(raw, &balance); err == nil {
				return balance, nil
			}
		}
	}

	balance, err := uc.computeBalance(ctx, tenantID, patientID)
	if err != nil {
		return domain.PatientBalance{}, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(balance); err == nil {
			// Best effort: a failed cache write never fails the read.
			_ = uc.cache.Set(ctx, key, raw, BalanceCacheTTL)
		}
	}

	return balance, nil
}

// Statement returns the ordered billable items together with the balance,
// the read model the clinic UI renders.
func (uc *BalanceUseCase) Statement(ctx context.Context, tenantID, patientID string) ([]domain.BillableItem, domain.PatientBalance, error) {
	if err := uc.requirePatient(ctx, tenantID, patientID); err != nil {
		return nil, domain.PatientBalance{}, err
	}

	items, err := uc.CollectItems(ctx, tenantID, patientID)
	if err != nil {
		return nil, domain.PatientBalance{}, err
	}

	totalPaid, err := uc.paymentRepo.SumActiveByPatient(ctx, tenantID, patientID)
	if err != nil {
		return nil, domain.PatientBalance{}, err
	}

	return items, domain.NewPatientBalance(domain.TotalAmount(items), totalPaid), nil
}

// InvalidateBalance drops the cached balance for a patient. Called after
// every payment mutation and recalculation.
func (uc *BalanceUseCase) InvalidateBalance(ctx context.Context, tenantID, patientID string) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, balanceCacheKey(tenantID, patientID))
}

func (uc *BalanceUseCase) computeBalance(ctx context.Context, tenantID, patientID string) (domain.PatientBalance, error) {
	var (
		items     []domain.BillableItem
		totalPaid decimal.Decimal
	)

	// The item reads and the payment sum are independent; run them
	// concurrently.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		items, err = uc.CollectItems(gctx, tenantID, patientID)
		return err
	})

	g.Go(func() error {
		var err error
		totalPaid, err = uc.paymentRepo.SumActiveByPatient(gctx, tenantID, patientID)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.PatientBalance{}, err
	}

	return domain.NewPatientBalance(domain.TotalAmount(items), totalPaid), nil
}

func (uc *BalanceUseCase) requirePatient(ctx context.Context, tenantID, patientID string) error {
	exists, err := uc.patientRepo.ExistsActive(ctx, tenantID, patientID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrPatientNotFound
	}
	return nil
}

func balanceCacheKey(tenantID, patientID string) string {
	return fmt.Sprintf("balance:%s:%s", tenantID, patientID)
}
