package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dentora/clinicledger/internal/adapter/http/dto"
	"github.com/dentora/clinicledger/internal/adapter/http/middleware"
	"github.com/dentora/clinicledger/internal/domain"
	"github.com/dentora/clinicledger/internal/usecase"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	CreatePayment(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Payment, error)
	VoidPayment(ctx context.Context, input usecase.VoidPaymentInput) (*domain.Payment, error)
	ListPayments(ctx context.Context, input usecase.ListPaymentsInput) ([]*domain.Payment, error)
}

// PaymentHandler handles payment lifecycle HTTP requests.
type PaymentHandler struct {
	paymentUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Create records a payment against the patient's outstanding balance.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantFromContext(r.Context())
	patientID := chi.URLParam(r, "patientID")
	actor := middleware.ActorFromContext(r.Context())

	var req dto.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	payment, err := h.paymentUC.CreatePayment(r.Context(), req.ToUseCaseInput(tenantID, patientID, actor))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create payment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentFromDomain(payment))
}

// Void soft-deletes a payment and re-derives the patient's ledger.
func (h *PaymentHandler) Void(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantFromContext(r.Context())
	paymentID := chi.URLParam(r, "paymentID")
	actor := middleware.ActorFromContext(r.Context())

	payment, err := h.paymentUC.VoidPayment(r.Context(), usecase.VoidPaymentInput{
		TenantID:  tenantID,
		PaymentID: paymentID,
		VoidedBy:  actor,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to void payment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// List lists the patient's payments, newest first.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantFromContext(r.Context())
	patientID := chi.URLParam(r, "patientID")

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	payments, err := h.paymentUC.ListPayments(r.Context(), usecase.ListPaymentsInput{
		TenantID:  tenantID,
		PatientID: patientID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list payments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListPaymentsResponse{
		Payments: dto.PaymentsFromDomain(payments),
		Total:    int64(len(payments)),
	})
}
