package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPaymentEdgeCases(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	env := newBillingEnv(t, ctx)

	startsAt := time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)

	t.Run("payment exceeding balance is rejected", func(t *testing.T) {
		env.DB.TruncateAll(ctx)

		patient := env.DB.CreatePatient(ctx, testTenant, "Emil Farkas")
		env.DB.CreateAppointment(ctx, testTenant, patient.ID, decimal.NewFromInt(100), startsAt)

		rec := env.do(http.MethodPost, "/api/v1/patients/"+patient.ID+"/payments", `{"amount":"100.01"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("payment against settled account is rejected", func(t *testing.T) {
		env.DB.TruncateAll(ctx)

		patient := env.DB.CreatePatient(ctx, testTenant, "Filip Toth")

		rec := env.do(http.MethodPost, "/api/v1/patients/"+patient.ID+"/payments", `{"amount":"0.01"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		env.DB.TruncateAll(ctx)

		patient := env.DB.CreatePatient(ctx, testTenant, "Greta Szabo")
		env.DB.CreateAppointment(ctx, testTenant, patient.ID, decimal.NewFromInt(100), startsAt)

		rec := env.do(http.MethodPost, "/api/v1/patients/"+patient.ID+"/payments", `{"amount":"0"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for zero amount, got %d", rec.Code)
		}

		rec = env.do(http.MethodPost, "/api/v1/patients/"+patient.ID+"/payments", `{"amount":"-5"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for negative amount, got %d", rec.Code)
		}
	})

	t.Run("unknown patient returns 404", func(t *testing.T) {
		env.DB.TruncateAll(ctx)

		rec := env.do(http.MethodGet, "/api/v1/patients/no-such-patient/balance", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}

		rec = env.do(http.MethodPost, "/api/v1/patients/no-such-patient/payments", `{"amount":"10"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("tenants cannot see each other's patients", func(t *testing.T) {
		env.DB.TruncateAll(ctx)

		other := env.DB.CreatePatient(ctx, "other-clinic", "Hidden Patient")

		rec := env.do(http.MethodGet, "/api/v1/patients/"+other.ID+"/balance", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected cross-tenant lookup to return 404, got %d", rec.Code)
		}
	})

	t.Run("missing tenant header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/p1/balance", nil)
		rec := httptest.NewRecorder()
		env.Router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 without tenant header, got %d", rec.Code)
		}
	})
}
