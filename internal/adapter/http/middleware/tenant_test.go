package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTenantMiddleware(t *testing.T) {
	var gotTenant, gotActor string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTenant, _ = TenantFromContext(r.Context())
		gotActor = ActorFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/p1/balance", nil)
	req.Header.Set(TenantHeader, "clinic-1")
	req.Header.Set(ActorHeader, "dr-kim")
	rr := httptest.NewRecorder()

	Tenant(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotTenant != "clinic-1" {
		t.Fatalf("expected tenant clinic-1, got %q", gotTenant)
	}
	if gotActor != "dr-kim" {
		t.Fatalf("expected actor dr-kim, got %q", gotActor)
	}
}

func TestTenantMiddleware_MissingHeader(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/p1/balance", nil)
	rr := httptest.NewRecorder()

	Tenant(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if called {
		t.Fatal("handler must not run without a tenant")
	}
}
