package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fondocore/fondo/internal/domain"
	"github.com/fondocore/fondo/internal/usecase"
)

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTxManager hands out no-op transactions. Writes through the mock
// repositories apply immediately, transactions only track commit/rollback.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// SequenceIDGenerator issues deterministic ids.
type SequenceIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func NewSequenceIDGenerator(prefix string) *SequenceIDGenerator {
	return &SequenceIDGenerator{prefix: prefix}
}

func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}

// NoopRetrier runs the operation exactly once.
type NoopRetrier struct{}

func (NoopRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// MockMovementRepository is an in-memory implementation of
// usecase.MovementRepository with per-method overrides.
type MockMovementRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.MovementEntry

	CreateFunc              func(ctx context.Context, tx usecase.Transaction, entry *domain.MovementEntry) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.MovementEntry, error)
	UpdateFunc              func(ctx context.Context, tx usecase.Transaction, entry *domain.MovementEntry) error
	DeleteFunc              func(ctx context.Context, tx usecase.Transaction, id string) error
	ListByAccountFunc       func(ctx context.Context, companyID string, accountID domain.FundAccount, limit, offset int) ([]*domain.MovementEntry, error)
	ListThroughFunc         func(ctx context.Context, companyID string, accountID domain.FundAccount, through time.Time) ([]*domain.MovementEntry, error)
	ListByDateRangeFunc     func(ctx context.Context, companyID string, accountID domain.FundAccount, from, to time.Time) ([]*domain.MovementEntry, error)
	ListByOriginalEntryFunc func(ctx context.Context, closingID string) ([]*domain.MovementEntry, error)
}

func NewMockMovementRepository() *MockMovementRepository {
	return &MockMovementRepository{entries: make(map[string]*domain.MovementEntry)}
}

func (m *MockMovementRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.MovementEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *entry
	m.entries[entry.ID] = &clone
	return nil
}

func (m *MockMovementRepository) GetByID(ctx context.Context, id string) (*domain.MovementEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if entry, ok := m.entries[id]; ok {
		clone := *entry
		return &clone, nil
	}
	return nil, domain.NewNotFoundError("movement", id)
}

func (m *MockMovementRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.MovementEntry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return domain.NewNotFoundError("movement", entry.ID)
	}
	clone := *entry
	m.entries[entry.ID] = &clone
	return nil
}

func (m *MockMovementRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return domain.NewNotFoundError("movement", id)
	}
	delete(m.entries, id)
	return nil
}

func (m *MockMovementRepository) ListByAccount(ctx context.Context, companyID string, accountID domain.FundAccount, limit, offset int) ([]*domain.MovementEntry, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, companyID, accountID, limit, offset)
	}
	entries := m.snapshot(func(e *domain.MovementEntry) bool {
		return e.CompanyID == companyID && e.AccountID == accountID
	})
	if offset >= len(entries) {
		return nil, nil
	}
	entries = entries[offset:]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

func (m *MockMovementRepository) ListThrough(ctx context.Context, companyID string, accountID domain.FundAccount, through time.Time) ([]*domain.MovementEntry, error) {
	if m.ListThroughFunc != nil {
		return m.ListThroughFunc(ctx, companyID, accountID, through)
	}
	return m.snapshot(func(e *domain.MovementEntry) bool {
		return e.CompanyID == companyID && e.AccountID == accountID && !e.CreatedAt.After(through)
	}), nil
}

func (m *MockMovementRepository) ListByDateRange(ctx context.Context, companyID string, accountID domain.FundAccount, from, to time.Time) ([]*domain.MovementEntry, error) {
	if m.ListByDateRangeFunc != nil {
		return m.ListByDateRangeFunc(ctx, companyID, accountID, from, to)
	}
	return m.snapshot(func(e *domain.MovementEntry) bool {
		return e.CompanyID == companyID && e.AccountID == accountID &&
			!e.CreatedAt.Before(from) && !e.CreatedAt.After(to)
	}), nil
}

func (m *MockMovementRepository) ListByOriginalEntry(ctx context.Context, closingID string) ([]*domain.MovementEntry, error) {
	if m.ListByOriginalEntryFunc != nil {
		return m.ListByOriginalEntryFunc(ctx, closingID)
	}
	return m.snapshot(func(e *domain.MovementEntry) bool {
		return e.OriginalEntryID != nil && *e.OriginalEntryID == closingID
	}), nil
}

func (m *MockMovementRepository) snapshot(keep func(*domain.MovementEntry) bool) []*domain.MovementEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.MovementEntry
	for _, entry := range m.entries {
		if keep(entry) {
			clone := *entry
			entries = append(entries, &clone)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}

// MockMovementTypeRepository is an in-memory implementation of
// usecase.MovementTypeRepository.
type MockMovementTypeRepository struct {
	mu    sync.RWMutex
	types map[string]*domain.MovementTypeConfig

	CreateFunc      func(ctx context.Context, config *domain.MovementTypeConfig) error
	GetByIDFunc     func(ctx context.Context, id string) (*domain.MovementTypeConfig, error)
	ListByOwnerFunc func(ctx context.Context, ownerID string) ([]*domain.MovementTypeConfig, error)
	UpdateOrderFunc func(ctx context.Context, tx usecase.Transaction, id string, order int) error
	DeleteFunc      func(ctx context.Context, id string) error
}

func NewMockMovementTypeRepository() *MockMovementTypeRepository {
	return &MockMovementTypeRepository{types: make(map[string]*domain.MovementTypeConfig)}
}

func (m *MockMovementTypeRepository) Create(ctx context.Context, config *domain.MovementTypeConfig) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, config)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *config
	m.types[config.ID] = &clone
	return nil
}

func (m *MockMovementTypeRepository) GetByID(ctx context.Context, id string) (*domain.MovementTypeConfig, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if config, ok := m.types[id]; ok {
		clone := *config
		return &clone, nil
	}
	return nil, domain.NewNotFoundError("movement_type", id)
}

func (m *MockMovementTypeRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.MovementTypeConfig, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var types []*domain.MovementTypeConfig
	for _, config := range m.types {
		if config.OwnerID == ownerID {
			clone := *config
			types = append(types, &clone)
		}
	}
	sort.Slice(types, func(i, j int) bool {
		if types[i].Category != types[j].Category {
			return types[i].Category < types[j].Category
		}
		return types[i].Order < types[j].Order
	})
	return types, nil
}

func (m *MockMovementTypeRepository) UpdateOrder(ctx context.Context, tx usecase.Transaction, id string, order int) error {
	if m.UpdateOrderFunc != nil {
		return m.UpdateOrderFunc(ctx, tx, id, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	config, ok := m.types[id]
	if !ok {
		return domain.NewNotFoundError("movement_type", id)
	}
	config.Order = order
	return nil
}

func (m *MockMovementTypeRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.types[id]; !ok {
		return domain.NewNotFoundError("movement_type", id)
	}
	delete(m.types, id)
	return nil
}

// MockClosingRepository is an in-memory implementation of
// usecase.ClosingRepository.
type MockClosingRepository struct {
	mu       sync.RWMutex
	closings map[string]*domain.DailyClosingRecord

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, closing *domain.DailyClosingRecord) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.DailyClosingRecord, error)
	GetByDateFunc    func(ctx context.Context, companyID string, accountID domain.FundAccount, date time.Time) (*domain.DailyClosingRecord, error)
	UpdateFunc       func(ctx context.Context, tx usecase.Transaction, closing *domain.DailyClosingRecord) error
	ListOrphanedFunc func(ctx context.Context) ([]*domain.DailyClosingRecord, error)
}

func NewMockClosingRepository() *MockClosingRepository {
	return &MockClosingRepository{closings: make(map[string]*domain.DailyClosingRecord)}
}

func (m *MockClosingRepository) Create(ctx context.Context, tx usecase.Transaction, closing *domain.DailyClosingRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, closing)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.closings {
		if existing.CompanyID == closing.CompanyID &&
			existing.AccountID == closing.AccountID &&
			existing.ClosingDate.Equal(closing.ClosingDate) {
			return domain.NewValidationError("closing", closing.ID, "closing_date", "a closing already exists for this account and date")
		}
	}
	clone := *closing
	m.closings[closing.ID] = &clone
	return nil
}

func (m *MockClosingRepository) GetByID(ctx context.Context, id string) (*domain.DailyClosingRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if closing, ok := m.closings[id]; ok {
		clone := *closing
		return &clone, nil
	}
	return nil, domain.NewNotFoundError("closing", id)
}

func (m *MockClosingRepository) GetByDate(ctx context.Context, companyID string, accountID domain.FundAccount, date time.Time) (*domain.DailyClosingRecord, error) {
	if m.GetByDateFunc != nil {
		return m.GetByDateFunc(ctx, companyID, accountID, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, closing := range m.closings {
		if closing.CompanyID == companyID && closing.AccountID == accountID && closing.ClosingDate.Equal(date) {
			clone := *closing
			return &clone, nil
		}
	}
	return nil, domain.NewNotFoundError("closing", companyID+"/"+string(accountID)+"/"+date.Format(domain.ClosingDateLayout))
}

func (m *MockClosingRepository) Update(ctx context.Context, tx usecase.Transaction, closing *domain.DailyClosingRecord) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, closing)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.closings[closing.ID]; !ok {
		return domain.NewNotFoundError("closing", closing.ID)
	}
	clone := *closing
	m.closings[closing.ID] = &clone
	return nil
}

func (m *MockClosingRepository) ListByAccount(ctx context.Context, companyID string, accountID domain.FundAccount, limit, offset int) ([]*domain.DailyClosingRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var closings []*domain.DailyClosingRecord
	for _, closing := range m.closings {
		if closing.CompanyID == companyID && closing.AccountID == accountID {
			clone := *closing
			closings = append(closings, &clone)
		}
	}
	sort.Slice(closings, func(i, j int) bool {
		return closings[i].ClosingDate.After(closings[j].ClosingDate)
	})
	if offset >= len(closings) {
		return nil, nil
	}
	closings = closings[offset:]
	if limit > 0 && limit < len(closings) {
		closings = closings[:limit]
	}
	return closings, nil
}

func (m *MockClosingRepository) ListOrphaned(ctx context.Context) ([]*domain.DailyClosingRecord, error) {
	if m.ListOrphanedFunc != nil {
		return m.ListOrphanedFunc(ctx)
	}
	return nil, nil
}

// MockCompanyDirectory resolves companies from a fixed set.
type MockCompanyDirectory struct {
	Companies map[string]string

	CompanyExistsFunc func(ctx context.Context, companyID string) (bool, error)
}

func NewMockCompanyDirectory(companies ...string) *MockCompanyDirectory {
	m := &MockCompanyDirectory{Companies: make(map[string]string, len(companies))}
	for _, id := range companies {
		m.Companies[id] = "Company " + id
	}
	return m
}

func (m *MockCompanyDirectory) CompanyExists(ctx context.Context, companyID string) (bool, error) {
	if m.CompanyExistsFunc != nil {
		return m.CompanyExistsFunc(ctx, companyID)
	}
	_, ok := m.Companies[companyID]
	return ok, nil
}

func (m *MockCompanyDirectory) CompanyName(ctx context.Context, companyID string) (string, error) {
	name, ok := m.Companies[companyID]
	if !ok {
		return "", domain.NewNotFoundError("company", companyID)
	}
	return name, nil
}

// MockOutboxRepository collects outbox events in memory.
type MockOutboxRepository struct {
	mu     sync.Mutex
	Events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []*domain.OutboxEvent
	for _, event := range m.Events {
		if !event.Published {
			events = append(events, event)
		}
		if limit > 0 && len(events) >= limit {
			break
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, event := range m.Events {
		if event.ID == id {
			event.Published = true
			event.PublishedAt = &publishedAt
			return nil
		}
	}
	return domain.NewNotFoundError("outbox_event", id)
}

func (m *MockOutboxRepository) GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []*domain.OutboxEvent
	for _, event := range m.Events {
		if event.AggregateType == aggregateType && event.AggregateID == aggregateID {
			events = append(events, event)
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.OutboxEvent
	for _, event := range m.Events {
		if !event.Published || event.PublishedAt == nil || !event.PublishedAt.Before(before) {
			kept = append(kept, event)
		}
	}
	m.Events = kept
	return nil
}
