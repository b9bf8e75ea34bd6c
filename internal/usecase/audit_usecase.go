package usecase

import (
	"context"

	"github.com/dentora/clinicledger/internal/domain"
)

// AuditUseCase exposes the audit trail written by payment mutations so
// clinic staff can answer "who touched this account".
type AuditUseCase struct {
	auditRepo AuditRepository
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(auditRepo AuditRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo}
}

// ListAuditLogs returns the tenant's audit entries, newest first.
func (uc *AuditUseCase) ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	if filter.TenantID == "" {
		return nil, domain.ErrInvalidID
	}

	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.auditRepo.List(ctx, filter)
}
