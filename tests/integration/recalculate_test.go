package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dentora/clinicledger/internal/adapter/http/dto"
)

func TestRecalculate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	env := newBillingEnv(t, ctx)

	day := func(n int) time.Time {
		return time.Date(2026, time.May, n, 9, 0, 0, 0, time.UTC)
	}

	t.Run("repairs stale flags", func(t *testing.T) {
		env.DB.TruncateAll(ctx)

		patient := env.DB.CreatePatient(ctx, testTenant, "Ivan Balog")
		a1 := env.DB.CreateAppointment(ctx, testTenant, patient.ID, decimal.NewFromInt(30), day(1))

		// Corrupt the flag directly: paid without any backing payment.
		if _, err := env.DB.Pool.Exec(ctx, "UPDATE appointments SET is_paid = TRUE WHERE id = $1", a1); err != nil {
			t.Fatalf("failed to corrupt flag: %v", err)
		}

		rec := env.do(http.MethodPost, "/api/v1/patients/"+patient.ID+"/recalculate", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp dto.RecalculateResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.ItemsChanged != 1 {
			t.Errorf("expected 1 changed item, got %d", resp.ItemsChanged)
		}

		if env.DB.PaidFlag(ctx, "appointments", a1) {
			t.Error("expected unbacked paid flag to be cleared")
		}
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		env.DB.TruncateAll(ctx)

		patient := env.DB.CreatePatient(ctx, testTenant, "Julia Orban")
		env.DB.CreateAppointment(ctx, testTenant, patient.ID, decimal.NewFromInt(30), day(1))
		env.DB.CreateLabWork(ctx, testTenant, patient.ID, decimal.NewFromInt(20), day(2))

		rec := env.do(http.MethodPost, "/api/v1/patients/"+patient.ID+"/payments", `{"amount":"50"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = env.do(http.MethodPost, "/api/v1/patients/"+patient.ID+"/recalculate", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp dto.RecalculateResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.ItemsChanged != 0 {
			t.Errorf("expected idempotent recalculation, got %d changes", resp.ItemsChanged)
		}
	})
}
