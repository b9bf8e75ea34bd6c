package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dentora/clinicledger/internal/adapter/http/dto"
	"github.com/dentora/clinicledger/internal/adapter/http/middleware"
	"github.com/dentora/clinicledger/internal/domain"
)

// BalanceService defines the read-side behavior needed by BalanceHandler.
type BalanceService interface {
	CachedBalance(ctx context.Context, tenantID, patientID string) (domain.PatientBalance, error)
	ComputeBalance(ctx context.Context, tenantID, patientID string) (domain.PatientBalance, error)
	Statement(ctx context.Context, tenantID, patientID string) ([]domain.BillableItem, domain.PatientBalance, error)
}

// RecalculateService triggers a ledger recalculation.
type RecalculateService interface {
	Recalculate(ctx context.Context, tenantID, patientID string) (int, error)
}

// BalanceHandler serves patient balance, statement, and recalculation
// requests.
type BalanceHandler struct {
	balances  BalanceService
	reconcile RecalculateService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balances BalanceService, reconcile RecalculateService) *BalanceHandler {
	return &BalanceHandler{
		balances:  balances,
		reconcile: reconcile,
	}
}

// GetBalance returns the patient's current balance.
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantFromContext(r.Context())
	patientID := chi.URLParam(r, "patientID")

	balance, err := h.balances.CachedBalance(r.Context(), tenantID, patientID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}

// GetStatement returns the patient's billable items with their paid flags
// plus the balance.
func (h *BalanceHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantFromContext(r.Context())
	patientID := chi.URLParam(r, "patientID")

	items, balance, err := h.balances.Statement(r.Context(), tenantID, patientID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get statement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(items, balance))
}

// Recalculate re-derives the patient's paid flags and returns the fresh
// balance. This is the retry hook when a post-payment recalculation
// failed.
func (h *BalanceHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantFromContext(r.Context())
	patientID := chi.URLParam(r, "patientID")

	changed, err := h.reconcile.Recalculate(r.Context(), tenantID, patientID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to recalculate ledger", err.Error())
		return
	}

	balance, err := h.balances.ComputeBalance(r.Context(), tenantID, patientID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RecalculateResponse{
		ItemsChanged: changed,
		Balance:      dto.BalanceFromDomain(balance),
	})
}
