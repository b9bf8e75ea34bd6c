package mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dentora/clinicledger/internal/domain"
	"github.com/dentora/clinicledger/internal/usecase"
)

// ErrCacheMiss is returned by FakeCache.Get for absent keys.
var ErrCacheMiss = errors.New("cache miss")

// FakePatientRepository is an in-memory fake of PatientRepository.
type FakePatientRepository struct {
	mu       sync.RWMutex
	patients map[string]bool // key: tenantID/patientID

	ExistsActiveFunc func(ctx context.Context, tenantID, patientID string) (bool, error)
}

func NewFakePatientRepository() *FakePatientRepository {
	return &FakePatientRepository{patients: make(map[string]bool)}
}

// AddPatient registers an active patient for the default behavior.
func (m *FakePatientRepository) AddPatient(tenantID, patientID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patients[tenantID+"/"+patientID] = true
}

func (m *FakePatientRepository) ExistsActive(ctx context.Context, tenantID, patientID string) (bool, error) {
	if m.ExistsActiveFunc != nil {
		return m.ExistsActiveFunc(ctx, tenantID, patientID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.patients[tenantID+"/"+patientID], nil
}

// FakeBillableRepository is an in-memory fake for both AppointmentRepository and
// LabWorkRepository; construct one per kind.
type FakeBillableRepository struct {
	mu    sync.RWMutex
	kind  domain.BillableKind
	items map[string][]domain.BillableItem // key: tenantID/patientID

	ListBillableFunc func(ctx context.Context, tenantID, patientID string) ([]domain.BillableItem, error)
	SetPaidFlagsFunc func(ctx context.Context, tx usecase.Transaction, tenantID string, ids []string, paid bool) error

	SetPaidCalls []SetPaidCall
}

// SetPaidCall records one SetPaidFlags invocation.
type SetPaidCall struct {
	TenantID string
	IDs      []string
	Paid     bool
}

func NewFakeBillableRepository(kind domain.BillableKind) *FakeBillableRepository {
	return &FakeBillableRepository{
		kind:  kind,
		items: make(map[string][]domain.BillableItem),
	}
}

// AddItem stores a billable item for the default behavior.
func (m *FakeBillableRepository) AddItem(tenantID, patientID string, item domain.BillableItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := tenantID + "/" + patientID
	m.items[key] = append(m.items[key], item)
}

func (m *FakeBillableRepository) ListBillable(ctx context.Context, tenantID, patientID string) ([]domain.BillableItem, error) {
	if m.ListBillableFunc != nil {
		return m.ListBillableFunc(ctx, tenantID, patientID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := m.items[tenantID+"/"+patientID]
	out := make([]domain.BillableItem, len(items))
	copy(out, items)
	return out, nil
}

func (m *FakeBillableRepository) SetPaidFlags(ctx context.Context, tx usecase.Transaction, tenantID string, ids []string, paid bool) error {
	if m.SetPaidFlagsFunc != nil {
		return m.SetPaidFlagsFunc(ctx, tx, tenantID, ids, paid)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetPaidCalls = append(m.SetPaidCalls, SetPaidCall{TenantID: tenantID, IDs: ids, Paid: paid})
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	for key, items := range m.items {
		for i := range items {
			if idSet[items[i].ID] {
				items[i].Paid = paid
			}
		}
		m.items[key] = items
	}
	return nil
}

// FakePaymentRepository is an in-memory fake of PaymentRepository.
type FakePaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment

	CreateFunc             func(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error
	GetByIDFunc            func(ctx context.Context, tenantID, paymentID string) (*domain.Payment, error)
	DeactivateFunc         func(ctx context.Context, tx usecase.Transaction, tenantID, paymentID string, at time.Time) error
	SumActiveByPatientFunc func(ctx context.Context, tenantID, patientID string) (decimal.Decimal, error)
	ListByPatientFunc      func(ctx context.Context, tenantID, patientID string, limit, offset int) ([]*domain.Payment, error)
}

func NewFakePaymentRepository() *FakePaymentRepository {
	return &FakePaymentRepository{payments: make(map[string]*domain.Payment)}
}

func (m *FakePaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, payment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *payment
	m.payments[payment.ID] = &cp
	return nil
}

func (m *FakePaymentRepository) GetByID(ctx context.Context, tenantID, paymentID string) (*domain.Payment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, tenantID, paymentID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.payments[paymentID]; ok && p.TenantID == tenantID {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *FakePaymentRepository) Deactivate(ctx context.Context, tx usecase.Transaction, tenantID, paymentID string, at time.Time) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, tx, tenantID, paymentID, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.payments[paymentID]; ok && p.TenantID == tenantID {
		p.IsActive = false
		return nil
	}
	return domain.ErrPaymentNotFound
}

func (m *FakePaymentRepository) SumActiveByPatient(ctx context.Context, tenantID, patientID string) (decimal.Decimal, error) {
	if m.SumActiveByPatientFunc != nil {
		return m.SumActiveByPatientFunc(ctx, tenantID, patientID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, p := range m.payments {
		if p.TenantID == tenantID && p.PatientID == patientID && p.IsActive {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (m *FakePaymentRepository) ListByPatient(ctx context.Context, tenantID, patientID string, limit, offset int) ([]*domain.Payment, error) {
	if m.ListByPatientFunc != nil {
		return m.ListByPatientFunc(ctx, tenantID, patientID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Payment
	for _, p := range m.payments {
		if p.TenantID == tenantID && p.PatientID == patientID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// FakeAuditRepository is an in-memory fake of AuditRepository.
type FakeAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc func(ctx context.Context, log *domain.AuditLog) error
}

func NewFakeAuditRepository() *FakeAuditRepository {
	return &FakeAuditRepository{}
}

func (m *FakeAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *FakeAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.AuditLog, 0, len(m.logs))
	for _, log := range m.logs {
		if log.TenantID != filter.TenantID {
			continue
		}
		if filter.Action != "" && log.Action != filter.Action {
			continue
		}
		if filter.ResourceType != "" && log.ResourceType != filter.ResourceType {
			continue
		}
		if filter.ResourceID != "" && log.ResourceID != filter.ResourceID {
			continue
		}
		out = append(out, log)
	}
	return out, nil
}

// Logs returns the recorded audit logs.
func (m *FakeAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.AuditLog, len(m.logs))
	copy(out, m.logs)
	return out
}

// FakeOutboxRepository is an in-memory fake of OutboxRepository.
type FakeOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewFakeOutboxRepository() *FakeOutboxRepository {
	return &FakeOutboxRepository{}
}

func (m *FakeOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *FakeOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *FakeOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *FakeOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if !e.Published || e.PublishedAt == nil || !e.PublishedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

// Events returns the recorded outbox events.
func (m *FakeOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.OutboxEvent, len(m.events))
	copy(out, m.events)
	return out
}

// FakeTransactionManager is an in-memory fake of TransactionManager.
type FakeTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewFakeTransactionManager() *FakeTransactionManager {
	return &FakeTransactionManager{}
}

func (m *FakeTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &FakeTransaction{}, nil
}

// FakeTransaction is an in-memory fake of Transaction.
type FakeTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *FakeTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *FakeTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// FakeIDGenerator is an in-memory fake of IDGenerator.
type FakeIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewFakeIDGenerator() *FakeIDGenerator {
	return &FakeIDGenerator{}
}

func (m *FakeIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("fake-id-%d", m.counter)
}

// FakeCache is an in-memory fake of Cache.
type FakeCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewFakeCache() *FakeCache {
	return &FakeCache{data: make(map[string][]byte)}
}

func (m *FakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, ErrCacheMiss
}

func (m *FakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *FakeCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// FakeRetrier is a pass-through Retrier fake.
type FakeRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewFakeRetrier() *FakeRetrier {
	return &FakeRetrier{}
}

func (m *FakeRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
