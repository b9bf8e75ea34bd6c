package handler

import (
	"context"
	"net/http"

	"github.com/dentora/clinicledger/internal/adapter/http/dto"
	"github.com/dentora/clinicledger/internal/adapter/http/middleware"
	"github.com/dentora/clinicledger/internal/domain"
)

// AuditService lists audit trail entries.
type AuditService interface {
	ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// AuditHandler serves the tenant's audit trail.
type AuditHandler struct {
	audits AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(audits AuditService) *AuditHandler {
	return &AuditHandler{audits: audits}
}

// List returns audit entries, newest first, optionally narrowed by
// action, resource type, or resource ID.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantFromContext(r.Context())

	logs, err := h.audits.ListAuditLogs(r.Context(), domain.AuditFilter{
		TenantID:     tenantID,
		Action:       r.URL.Query().Get("action"),
		ResourceType: r.URL.Query().Get("resource_type"),
		ResourceID:   r.URL.Query().Get("resource_id"),
		Limit:        parseIntQuery(r, "limit", 50),
		Offset:       parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list audit logs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAuditLogsResponse{
		AuditLogs: dto.AuditLogsFromDomain(logs),
		Total:     int64(len(logs)),
	})
}
