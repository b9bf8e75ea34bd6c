package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentora/clinicledger/internal/domain"
)

// AuditRepository implements audit log persistence.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Create inserts a new audit log entry.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	var detail []byte
	if log.Detail != nil {
		var err error
		detail, err = json.Marshal(log.Detail)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_logs (
			id, tenant_id, actor, action, resource_type, resource_id,
			detail, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		log.ID,
		log.TenantID,
		log.Actor,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		detail,
		log.CreatedAt,
	)

	return err
}

// List retrieves audit log entries matching the filter, newest first.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, tenant_id, actor, action, resource_type, resource_id,
		       detail, created_at
		FROM audit_logs
		WHERE tenant_id = $1
		  AND ($2 = '' OR action = $2)
		  AND ($3 = '' OR resource_type = $3)
		  AND ($4 = '' OR resource_id = $4)
		ORDER BY created_at DESC
		LIMIT $5 OFFSET $6
	`

	limit, offset := domain.ValidatePagination(filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query,
		filter.TenantID,
		filter.Action,
		filter.ResourceType,
		filter.ResourceID,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.AuditLog
	for rows.Next() {
		var (
			log    domain.AuditLog
			detail []byte
		)
		if err := rows.Scan(
			&log.ID,
			&log.TenantID,
			&log.Actor,
			&log.Action,
			&log.ResourceType,
			&log.ResourceID,
			&detail,
			&log.CreatedAt,
		); err != nil {
			return nil, err
		}
		if detail != nil {
			_ = json.Unmarshal(detail, &log.Detail)
		}
		logs = append(logs, &log)
	}

	return logs, rows.Err()
}
