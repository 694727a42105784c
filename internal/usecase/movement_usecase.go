package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fondocore/fondo/internal/domain"
)

// MovementUseCase handles manual ledger entries.
type MovementUseCase struct {
	txManager    TransactionManager
	movementRepo MovementRepository
	typeRegistry *MovementTypeUseCase
	outboxRepo   OutboxRepository
	idGen        IDGenerator
}

// NewMovementUseCase creates a new MovementUseCase.
func NewMovementUseCase(
	txManager TransactionManager,
	movementRepo MovementRepository,
	typeRegistry *MovementTypeUseCase,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *MovementUseCase {
	return &MovementUseCase{
		txManager:    txManager,
		movementRepo: movementRepo,
		typeRegistry: typeRegistry,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
	}
}

// CreateMovementInput represents input for recording a manual movement.
type CreateMovementInput struct {
	CompanyID      string
	AccountID      domain.FundAccount
	Currency       domain.Currency
	MovementTypeID string
	Amount         decimal.Decimal
	Manager        string
	Breakdown      domain.Breakdown
}

// CreateMovement records a manual entry. The amount lands on the income or
// expense side according to the entry's classification.
func (uc *MovementUseCase) CreateMovement(ctx context.Context, input CreateMovementInput) (*domain.MovementEntry, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	snapshot, err := uc.typeRegistry.Snapshot(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}
	classifier := snapshot.Classifier()

	entry := &domain.MovementEntry{
		ID:             uc.idGen.Generate(),
		CompanyID:      input.CompanyID,
		AccountID:      input.AccountID,
		Currency:       input.Currency,
		MovementTypeID: input.MovementTypeID,
		CreatedAt:      time.Now().UTC(),
		ManagerName:    input.Manager,
		Breakdown:      input.Breakdown,
	}
	if classifier.IsIngresoType(input.MovementTypeID) {
		entry.AmountIncome = input.Amount
	} else {
		entry.AmountExpense = input.Amount
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.movementRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   entry.ID,
		AggregateType: domain.AggregateTypeMovement,
		EventType:     domain.EventTypeMovementCreated,
		Payload: map[string]any{
			"movement_id": entry.ID,
			"company_id":  entry.CompanyID,
			"account_id":  string(entry.AccountID),
			"currency":    string(entry.Currency),
			"amount":      input.Amount.String(),
		},
		CreatedAt: entry.CreatedAt,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

// GetMovement retrieves an entry by ID.
func (uc *MovementUseCase) GetMovement(ctx context.Context, id string) (*domain.MovementEntry, error) {
	return uc.movementRepo.GetByID(ctx, id)
}

// ListMovementsInput represents input for listing entries.
type ListMovementsInput struct {
	CompanyID string
	AccountID domain.FundAccount
	Limit     int
	Offset    int
}

// ListMovements lists entries for a company account.
func (uc *MovementUseCase) ListMovements(ctx context.Context, input ListMovementsInput) ([]*domain.MovementEntry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.movementRepo.ListByAccount(ctx, input.CompanyID, input.AccountID, limit, offset)
}

// EditAmount changes the amount of an entry, appending to its audit trail
// before the value changes. The whole record is rewritten to avoid lost
// updates between fields.
func (uc *MovementUseCase) EditAmount(ctx context.Context, id string, newAmount decimal.Decimal) (*domain.MovementEntry, error) {
	if err := domain.ValidateAmount(newAmount); err != nil {
		return nil, err
	}

	entry, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := entry.Amount()
	domain.AppendEdit(entry, before, newAmount, time.Now().UTC())
	entry.SetAmount(newAmount)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.movementRepo.Update(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

// DeleteMovement removes a regular entry. Adjustment entries are owned by
// their closing and can only be removed through the closing's resolution, so
// the owning record's state never silently drifts.
func (uc *MovementUseCase) DeleteMovement(ctx context.Context, id string) error {
	entry, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.IsAdjustment() {
		return domain.NewValidationError("movement", id, "provider_code", "adjustment entries are removed through their closing resolution")
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.movementRepo.Delete(ctx, tx, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
