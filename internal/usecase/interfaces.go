package usecase

import (
	"context"
	"time"

	"github.com/fondocore/fondo/internal/domain"
)

// MovementRepository defines data access for ledger entries. Updates are
// whole-record read-modify-write, never independent field patches.
type MovementRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.MovementEntry) error
	GetByID(ctx context.Context, id string) (*domain.MovementEntry, error)
	Update(ctx context.Context, tx Transaction, entry *domain.MovementEntry) error
	Delete(ctx context.Context, tx Transaction, id string) error
	ListByAccount(ctx context.Context, companyID string, accountID domain.FundAccount, limit, offset int) ([]*domain.MovementEntry, error)
	// ListThrough returns all entries for the account with created_at <=
	// through, ordered by (created_at, id) ascending.
	ListThrough(ctx context.Context, companyID string, accountID domain.FundAccount, through time.Time) ([]*domain.MovementEntry, error)
	ListByDateRange(ctx context.Context, companyID string, accountID domain.FundAccount, from, to time.Time) ([]*domain.MovementEntry, error)
	ListByOriginalEntry(ctx context.Context, closingID string) ([]*domain.MovementEntry, error)
}

// MovementTypeRepository defines data access for the movement type catalog.
type MovementTypeRepository interface {
	Create(ctx context.Context, config *domain.MovementTypeConfig) error
	GetByID(ctx context.Context, id string) (*domain.MovementTypeConfig, error)
	// ListByOwner returns the owner's catalog ordered by (category, order)
	// ascending.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.MovementTypeConfig, error)
	UpdateOrder(ctx context.Context, tx Transaction, id string, order int) error
	Delete(ctx context.Context, id string) error
}

// ClosingRepository defines data access for daily closing records.
type ClosingRepository interface {
	Create(ctx context.Context, tx Transaction, closing *domain.DailyClosingRecord) error
	GetByID(ctx context.Context, id string) (*domain.DailyClosingRecord, error)
	GetByDate(ctx context.Context, companyID string, accountID domain.FundAccount, date time.Time) (*domain.DailyClosingRecord, error)
	Update(ctx context.Context, tx Transaction, closing *domain.DailyClosingRecord) error
	ListByAccount(ctx context.Context, companyID string, accountID domain.FundAccount, limit, offset int) ([]*domain.DailyClosingRecord, error)
	// ListOrphaned returns closings that have a non-zero diff for some
	// currency but neither an adjustment entry nor a resolution.
	ListOrphaned(ctx context.Context) ([]*domain.DailyClosingRecord, error)
}

// CompanyDirectory resolves companies and account labels. The engine
// validates company existence before a closing is recorded; authorization
// happened before the core executes.
type CompanyDirectory interface {
	CompanyExists(ctx context.Context, companyID string) (bool, error)
	CompanyName(ctx context.Context, companyID string) (string, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error)
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

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
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
