package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dentora/clinicledger/internal/usecase"
)

func TestConcurrentPaymentsCannotOverpay(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	env := newBillingEnv(t, ctx)
	env.DB.TruncateAll(ctx)

	patient := env.DB.CreatePatient(ctx, testTenant, "Karl Meszaros")
	startsAt := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	env.DB.CreateAppointment(ctx, testTenant, patient.ID, decimal.NewFromInt(100), startsAt)

	const attempts = 5

	var wg sync.WaitGroup
	successes := make(chan string, attempts)

	// 5x60 against 100 outstanding: at most one create may win.
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payment, err := env.Payments.CreatePayment(ctx, usecase.CreatePaymentInput{
				TenantID:  testTenant,
				PatientID: patient.ID,
				Amount:    decimal.NewFromInt(60),
				CreatedBy: "integration-suite",
			})
			if err == nil {
				successes <- payment.ID
			}
		}()
	}
	wg.Wait()
	close(successes)

	var winners []string
	for id := range successes {
		winners = append(winners, id)
	}
	if len(winners) != 1 {
		t.Fatalf("expected exactly one payment to win, got %d", len(winners))
	}

	balance, err := env.Balances.ComputeBalance(ctx, testTenant, patient.ID)
	if err != nil {
		t.Fatalf("failed to compute balance: %v", err)
	}
	if !balance.TotalPaid.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected total paid 60, got %s", balance.TotalPaid)
	}
}
