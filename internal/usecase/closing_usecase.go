package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fondocore/fondo/internal/domain"
)

// ClosingUseCase is the daily closing processor: it creates closings,
// computes diffs, synthesizes adjustments, edits them and resolves them.
type ClosingUseCase struct {
	txManager    TransactionManager
	closingRepo  ClosingRepository
	movementRepo MovementRepository
	typeRegistry *MovementTypeUseCase
	directory    CompanyDirectory
	outboxRepo   OutboxRepository
	idGen        IDGenerator
	retrier      Retrier
}

// NewClosingUseCase creates a new ClosingUseCase.
func NewClosingUseCase(
	txManager TransactionManager,
	closingRepo ClosingRepository,
	movementRepo MovementRepository,
	typeRegistry *MovementTypeUseCase,
	directory CompanyDirectory,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
) *ClosingUseCase {
	return &ClosingUseCase{
		txManager:    txManager,
		closingRepo:  closingRepo,
		movementRepo: movementRepo,
		typeRegistry: typeRegistry,
		directory:    directory,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
		retrier:      retrier,
	}
}

// CreateClosingInput represents input for creating a daily closing.
type CreateClosingInput struct {
	CompanyID   string
	AccountID   domain.FundAccount
	ClosingDate time.Time
	Breakdown   map[domain.Currency]domain.Breakdown
	Manager     string
	Notes       string
}

// CreateClosing reconciles the physical count against the ledger balance and
// synthesizes one adjustment per currency with a non-zero diff. The closing
// and its adjustments are one logical unit: they commit together, and the
// whole unit is retried on transient storage failures so a non-zero-diff
// closing is never left without its adjustment.
func (uc *ClosingUseCase) CreateClosing(ctx context.Context, input CreateClosingInput) (*domain.DailyClosingRecord, error) {
	if !input.AccountID.Valid() {
		return nil, domain.NewValidationError("closing", "", "account_id", "unknown account")
	}

	exists, err := uc.directory.CompanyExists(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("company", input.CompanyID)
	}

	date := domain.NormalizeClosingDate(input.ClosingDate)
	if date.IsZero() {
		return nil, domain.NewValidationError("closing", "", "closing_date", "closing date is required")
	}

	if _, err := uc.closingRepo.GetByDate(ctx, input.CompanyID, input.AccountID, date); err == nil {
		return nil, domain.NewValidationError("closing", "", "closing_date", "a closing already exists for this account and date")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	counted := domain.MoneyByCurrency{}
	for _, currency := range domain.Currencies() {
		total, err := input.Breakdown[currency].Total(currency)
		if err != nil {
			return nil, err
		}
		counted[currency] = total
	}

	entries, err := uc.movementRepo.ListThrough(ctx, input.CompanyID, input.AccountID, domain.EndOfClosingDate(date))
	if err != nil {
		return nil, err
	}
	snapshot, err := uc.typeRegistry.Snapshot(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}
	recorded := domain.ComputeBalance(entries, snapshot.Classifier())

	diff := domain.MoneyByCurrency{}
	for _, currency := range domain.Currencies() {
		diff[currency] = counted.Get(currency).Sub(recorded.Get(currency))
	}

	now := time.Now().UTC()
	closing := &domain.DailyClosingRecord{
		ID:              uc.idGen.Generate(),
		CompanyID:       input.CompanyID,
		AccountID:       input.AccountID,
		ClosingDate:     date,
		CreatedAt:       now,
		Manager:         input.Manager,
		Notes:           input.Notes,
		CountedTotal:    counted,
		RecordedBalance: recorded,
		Diff:            diff,
		Breakdown:       input.Breakdown,
	}
	if err := closing.Validate(); err != nil {
		return nil, err
	}

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.closingRepo.Create(ctx, tx, closing); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   closing.ID,
			AggregateType: domain.AggregateTypeClosing,
			EventType:     domain.EventTypeClosingCreated,
			Payload: map[string]any{
				"closing_id":   closing.ID,
				"company_id":   closing.CompanyID,
				"account_id":   string(closing.AccountID),
				"closing_date": date.Format(domain.ClosingDateLayout),
				"diff_crc":     diff.Get(domain.CurrencyCRC).String(),
				"diff_usd":     diff.Get(domain.CurrencyUSD).String(),
			},
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		for _, currency := range domain.Currencies() {
			if diff.Get(currency).IsZero() {
				continue
			}
			if _, err := uc.synthesizeAdjustment(ctx, tx, closing, currency, diff.Get(currency), now); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return closing, nil
}

// synthesizeAdjustment creates the auto-adjustment entry that makes the
// post-adjustment recorded balance equal the counted total: an overage
// becomes an ingreso entry, a shortage an egreso entry. The entry is stamped
// at the end of the closing date so balance recomputations through that date
// include it.
func (uc *ClosingUseCase) synthesizeAdjustment(
	ctx context.Context,
	tx Transaction,
	closing *domain.DailyClosingRecord,
	currency domain.Currency,
	diff decimal.Decimal,
	now time.Time,
) (*domain.MovementEntry, error) {
	providerCode := domain.ProviderCodeAutoAdjustment
	entry := &domain.MovementEntry{
		ID:              uc.idGen.Generate(),
		CompanyID:       closing.CompanyID,
		AccountID:       closing.AccountID,
		Currency:        currency,
		CreatedAt:       domain.EndOfClosingDate(closing.ClosingDate),
		ManagerName:     closing.Manager,
		ProviderCode:    &providerCode,
		OriginalEntryID: &closing.ID,
	}
	if diff.IsPositive() {
		entry.MovementTypeID = domain.AdjustmentTypeOverage
		entry.AmountIncome = diff
	} else {
		entry.MovementTypeID = domain.AdjustmentTypeShortage
		entry.AmountExpense = diff.Abs()
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.movementRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   closing.ID,
		AggregateType: domain.AggregateTypeClosing,
		EventType:     domain.EventTypeAdjustmentSynthesized,
		Payload: map[string]any{
			"entry_id":   entry.ID,
			"closing_id": closing.ID,
			"currency":   string(currency),
			"amount":     entry.Amount().String(),
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	return entry, nil
}

// RepairAdjustments synthesizes the missing adjustments of a closing whose
// adjustment creation previously failed after the closing was durably
// written. A currency that already has an undeleted adjustment is refused.
func (uc *ClosingUseCase) RepairAdjustments(ctx context.Context, closingID string) ([]*domain.MovementEntry, error) {
	closing, err := uc.closingRepo.GetByID(ctx, closingID)
	if err != nil {
		return nil, err
	}
	if closing.AdjustmentResolution != nil {
		return nil, domain.NewValidationError("closing", closingID, "resolution", "closing is already resolved")
	}

	existing, err := uc.movementRepo.ListByOriginalEntry(ctx, closingID)
	if err != nil {
		return nil, err
	}
	byCurrency := make(map[domain.Currency]bool, len(existing))
	for _, adj := range existing {
		byCurrency[adj.Currency] = true
	}

	var created []*domain.MovementEntry
	now := time.Now().UTC()

	err = uc.retrier.Retry(ctx, func() error {
		created = created[:0]

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		for _, currency := range domain.Currencies() {
			diff := closing.Diff.Get(currency)
			if diff.IsZero() {
				continue
			}
			if byCurrency[currency] {
				return domain.NewConsistencyError("closing", closingID,
					"currency "+string(currency)+" already has an undeleted adjustment")
			}
			entry, err := uc.synthesizeAdjustment(ctx, tx, closing, currency, diff, now)
			if err != nil {
				return err
			}
			created = append(created, entry)
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// EditAdjustment appends {at, before, after} to the entry's audit trail and
// then updates the amount. The owning closing's diff is deliberately not
// renormalized: it remains the originally observed physical discrepancy.
func (uc *ClosingUseCase) EditAdjustment(ctx context.Context, entryID string, newAmount decimal.Decimal) (*domain.MovementEntry, error) {
	if err := domain.ValidateAmount(newAmount); err != nil {
		return nil, err
	}

	entry, err := uc.movementRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsAdjustment() {
		return nil, domain.NewValidationError("movement", entryID, "provider_code", "entry is not an auto-adjustment")
	}

	before := entry.Amount()
	now := time.Now().UTC()
	domain.AppendEdit(entry, before, newAmount, now)
	entry.SetAmount(newAmount)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.movementRepo.Update(ctx, tx, entry); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   *entry.OriginalEntryID,
		AggregateType: domain.AggregateTypeClosing,
		EventType:     domain.EventTypeAdjustmentEdited,
		Payload: map[string]any{
			"entry_id": entry.ID,
			"before":   before.String(),
			"after":    newAmount.String(),
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

// RemoveAdjustments deletes every adjustment of the closing and records the
// terminal resolution: a snapshot of the removed entries plus the recorded
// balance recomputed immediately after removal. Used when the real entries
// were fixed manually and no synthetic adjustment is needed.
func (uc *ClosingUseCase) RemoveAdjustments(ctx context.Context, closingID string) (*domain.DailyClosingRecord, error) {
	closing, err := uc.closingRepo.GetByID(ctx, closingID)
	if err != nil {
		return nil, err
	}
	if closing.AdjustmentResolution != nil {
		return nil, domain.NewValidationError("closing", closingID, "resolution", "closing is already resolved")
	}

	adjustments, err := uc.movementRepo.ListByOriginalEntry(ctx, closingID)
	if err != nil {
		return nil, err
	}
	if len(adjustments) == 0 {
		return nil, domain.NewValidationError("closing", closingID, "adjustments", "closing has no adjustments to remove")
	}

	entries, err := uc.movementRepo.ListThrough(ctx, closing.CompanyID, closing.AccountID, domain.EndOfClosingDate(closing.ClosingDate))
	if err != nil {
		return nil, err
	}
	snapshot, err := uc.typeRegistry.Snapshot(ctx, closing.CompanyID)
	if err != nil {
		return nil, err
	}
	classifier := snapshot.Classifier()

	// Balance from the remaining entries only: current balance through the
	// closing date minus the contribution of the adjustments about to go.
	post := domain.ComputeBalance(entries, classifier)
	removed := make([]domain.RemovedAdjustment, 0, len(adjustments))
	for _, adj := range adjustments {
		post[adj.Currency] = post[adj.Currency].Sub(domain.SignedAmount(adj, classifier))
		removed = append(removed, domain.RemovedAdjustment{
			EntryID:   adj.ID,
			Currency:  adj.Currency,
			Amount:    adj.Amount(),
			Manager:   adj.ManagerName,
			CreatedAt: adj.CreatedAt,
		})
	}

	now := time.Now().UTC()
	closing.AdjustmentResolution = &domain.AdjustmentResolution{
		RemovedAdjustments:       removed,
		PostAdjustmentBalanceCRC: post.Get(domain.CurrencyCRC),
		PostAdjustmentBalanceUSD: post.Get(domain.CurrencyUSD),
		ResolvedAt:               now,
		ResolvedBy:               closing.Manager,
	}

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		for _, adj := range adjustments {
			if err := uc.movementRepo.Delete(ctx, tx, adj.ID); err != nil {
				return err
			}
		}

		if err := uc.closingRepo.Update(ctx, tx, closing); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   closing.ID,
			AggregateType: domain.AggregateTypeClosing,
			EventType:     domain.EventTypeAdjustmentsRemoved,
			Payload: map[string]any{
				"closing_id": closing.ID,
				"removed":    len(removed),
			},
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return closing, nil
}

// Adjustments lists the adjustment entries currently referencing a closing.
func (uc *ClosingUseCase) Adjustments(ctx context.Context, closingID string) ([]*domain.MovementEntry, error) {
	if _, err := uc.closingRepo.GetByID(ctx, closingID); err != nil {
		return nil, err
	}
	return uc.movementRepo.ListByOriginalEntry(ctx, closingID)
}

// GetClosing retrieves a closing by ID.
func (uc *ClosingUseCase) GetClosing(ctx context.Context, id string) (*domain.DailyClosingRecord, error) {
	return uc.closingRepo.GetByID(ctx, id)
}

// ListClosingsInput represents input for listing closings.
type ListClosingsInput struct {
	CompanyID string
	AccountID domain.FundAccount
	Limit     int
	Offset    int
}

// ListClosings lists closings for a company account.
func (uc *ClosingUseCase) ListClosings(ctx context.Context, input ListClosingsInput) ([]*domain.DailyClosingRecord, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.closingRepo.ListByAccount(ctx, input.CompanyID, input.AccountID, limit, offset)
}

// Status derives the per-currency reconciliation state of a closing.
func (uc *ClosingUseCase) Status(ctx context.Context, closingID string) (map[domain.Currency]domain.ClosingState, error) {
	closing, err := uc.closingRepo.GetByID(ctx, closingID)
	if err != nil {
		return nil, err
	}

	adjustments, err := uc.movementRepo.ListByOriginalEntry(ctx, closingID)
	if err != nil {
		return nil, err
	}

	states := make(map[domain.Currency]domain.ClosingState, 2)
	for _, currency := range domain.Currencies() {
		states[currency] = closing.StateFor(currency, adjustments)
	}
	return states, nil
}
