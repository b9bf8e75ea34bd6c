package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dentora/clinicledger/internal/domain"
)

// PatientRepository defines data access for patients.
type PatientRepository interface {
	// ExistsActive reports whether the patient exists, is active, and
	// belongs to the tenant. A patient ID valid in another tenant must
	// never resolve.
	ExistsActive(ctx context.Context, tenantID, patientID string) (bool, error)
}

// AppointmentRepository defines billing data access for appointments.
type AppointmentRepository interface {
	// ListBillable returns active appointments with a strictly positive
	// cost, ascending by start time.
	ListBillable(ctx context.Context, tenantID, patientID string) ([]domain.BillableItem, error)
	SetPaidFlags(ctx context.Context, tx Transaction, tenantID string, ids []string, paid bool) error
}

// LabWorkRepository defines billing data access for lab-work items.
type LabWorkRepository interface {
	// ListBillable returns active lab-work items with a strictly positive
	// price, ascending by date.
	ListBillable(ctx context.Context, tenantID, patientID string) ([]domain.BillableItem, error)
	SetPaidFlags(ctx context.Context, tx Transaction, tenantID string, ids []string, paid bool) error
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	Create(ctx context.Context, tx Transaction, payment *domain.Payment) error
	GetByID(ctx context.Context, tenantID, paymentID string) (*domain.Payment, error)
	Deactivate(ctx context.Context, tx Transaction, tenantID, paymentID string, at time.Time) error
	SumActiveByPatient(ctx context.Context, tenantID, patientID string) (decimal.Decimal, error)
	ListByPatient(ctx context.Context, tenantID, patientID string, limit, offset int) ([]*domain.Payment, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
