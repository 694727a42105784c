package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fondocore/fondo/internal/domain"
	"github.com/fondocore/fondo/internal/usecase"
	"github.com/fondocore/fondo/internal/usecase/mocks"
)

type closingFixture struct {
	uc           *usecase.ClosingUseCase
	closingRepo  *mocks.MockClosingRepository
	movementRepo *mocks.MockMovementRepository
	outboxRepo   *mocks.MockOutboxRepository
}

func newClosingFixture(t *testing.T) *closingFixture {
	t.Helper()

	typeRepo := mocks.NewMockMovementTypeRepository()
	ctx := context.Background()
	seed := []*domain.MovementTypeConfig{
		{ID: "ventas", OwnerID: "company-1", Category: domain.CategoryIngreso, Name: "Ventas", Order: 1},
		{ID: "planilla", OwnerID: "company-1", Category: domain.CategoryGasto, Name: "Planilla", Order: 1},
	}
	for _, config := range seed {
		if err := typeRepo.Create(ctx, config); err != nil {
			t.Fatalf("seeding catalog: %v", err)
		}
	}

	typeUC := usecase.NewMovementTypeUseCase(typeRepo, mocks.NewMockTxManager(), mocks.NewSequenceIDGenerator("type"))

	f := &closingFixture{
		closingRepo:  mocks.NewMockClosingRepository(),
		movementRepo: mocks.NewMockMovementRepository(),
		outboxRepo:   mocks.NewMockOutboxRepository(),
	}
	f.uc = usecase.NewClosingUseCase(
		mocks.NewMockTxManager(),
		f.closingRepo,
		f.movementRepo,
		typeUC,
		mocks.NewMockCompanyDirectory("company-1"),
		f.outboxRepo,
		mocks.NewSequenceIDGenerator("id"),
		mocks.NoopRetrier{},
	)
	return f
}

func (f *closingFixture) seedEntry(t *testing.T, id, typeID string, currency domain.Currency, income, expense int64, at time.Time) {
	t.Helper()
	entry := &domain.MovementEntry{
		ID:             id,
		CompanyID:      "company-1",
		AccountID:      domain.AccountGeneralFund,
		Currency:       currency,
		MovementTypeID: typeID,
		AmountIncome:   decimal.NewFromInt(income),
		AmountExpense:  decimal.NewFromInt(expense),
		CreatedAt:      at,
		ManagerName:    "doña Ana",
	}
	if err := f.movementRepo.Create(context.Background(), &mocks.MockTransaction{}, entry); err != nil {
		t.Fatalf("seeding entry: %v", err)
	}
}

var closingDay = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

func TestClosingUseCase_CreateClosing_Clean(t *testing.T) {
	f := newClosingFixture(t)
	f.seedEntry(t, "m1", "ventas", domain.CurrencyCRC, 5000, 0, closingDay.Add(10*time.Hour))

	closing, err := f.uc.CreateClosing(context.Background(), usecase.CreateClosingInput{
		CompanyID:   "company-1",
		AccountID:   domain.AccountGeneralFund,
		ClosingDate: closingDay.Add(20 * time.Hour),
		Breakdown: map[domain.Currency]domain.Breakdown{
			domain.CurrencyCRC: {"5000": 1},
		},
		Manager: "doña Ana",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !closing.Diff.Get(domain.CurrencyCRC).IsZero() {
		t.Errorf("CRC diff = %s, want zero", closing.Diff.Get(domain.CurrencyCRC))
	}
	if !closing.ClosingDate.Equal(closingDay) {
		t.Errorf("closing date = %v, want normalized %v", closing.ClosingDate, closingDay)
	}

	adjustments, err := f.movementRepo.ListByOriginalEntry(context.Background(), closing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(adjustments) != 0 {
		t.Errorf("expected no adjustments for a clean closing, got %d", len(adjustments))
	}

	states, err := f.uc.Status(context.Background(), closing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, currency := range domain.Currencies() {
		if states[currency] != domain.ClosingStateClean {
			t.Errorf("%s state = %v, want clean", currency, states[currency])
		}
	}
}

func TestClosingUseCase_CreateClosing_Overage(t *testing.T) {
	f := newClosingFixture(t)
	f.seedEntry(t, "m1", "ventas", domain.CurrencyCRC, 5000, 0, closingDay.Add(9*time.Hour))
	f.seedEntry(t, "m2", "planilla", domain.CurrencyCRC, 0, 200, closingDay.Add(11*time.Hour))

	// Recorded 4800, counted 5050: the cashier found 250 more than the books.
	closing, err := f.uc.CreateClosing(context.Background(), usecase.CreateClosingInput{
		CompanyID:   "company-1",
		AccountID:   domain.AccountGeneralFund,
		ClosingDate: closingDay,
		Breakdown: map[domain.Currency]domain.Breakdown{
			domain.CurrencyCRC: {"5000": 1, "50": 1},
		},
		Manager: "doña Ana",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !closing.RecordedBalance.Get(domain.CurrencyCRC).Equal(decimal.NewFromInt(4800)) {
		t.Errorf("recorded = %s, want 4800", closing.RecordedBalance.Get(domain.CurrencyCRC))
	}
	if !closing.Diff.Get(domain.CurrencyCRC).Equal(decimal.NewFromInt(250)) {
		t.Errorf("diff = %s, want 250", closing.Diff.Get(domain.CurrencyCRC))
	}

	adjustments, err := f.movementRepo.ListByOriginalEntry(context.Background(), closing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(adjustments) != 1 {
		t.Fatalf("expected 1 adjustment, got %d", len(adjustments))
	}

	adj := adjustments[0]
	if adj.MovementTypeID != domain.AdjustmentTypeOverage {
		t.Errorf("adjustment type = %q, want %q", adj.MovementTypeID, domain.AdjustmentTypeOverage)
	}
	if !adj.AmountIncome.Equal(decimal.NewFromInt(250)) {
		t.Errorf("adjustment income = %s, want 250", adj.AmountIncome)
	}
	if !adj.IsAdjustment() {
		t.Error("adjustment entry not marked as auto-adjustment")
	}
	if !adj.CreatedAt.Equal(domain.EndOfClosingDate(closingDay)) {
		t.Errorf("adjustment stamped %v, want end of closing date", adj.CreatedAt)
	}

	states, err := f.uc.Status(context.Background(), closing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if states[domain.CurrencyCRC] != domain.ClosingStateUnresolved {
		t.Errorf("CRC state = %v, want unresolved", states[domain.CurrencyCRC])
	}
	if states[domain.CurrencyUSD] != domain.ClosingStateClean {
		t.Errorf("USD state = %v, want clean", states[domain.CurrencyUSD])
	}

	// The adjustment now makes the recomputed balance match the count.
	entries, _ := f.movementRepo.ListThrough(context.Background(), "company-1", domain.AccountGeneralFund, domain.EndOfClosingDate(closingDay))
	var total decimal.Decimal
	for _, e := range entries {
		total = total.Add(e.AmountIncome).Sub(e.AmountExpense)
	}
	if !total.Equal(decimal.NewFromInt(5050)) {
		t.Errorf("post-adjustment balance = %s, want the counted 5050", total)
	}
}

func TestClosingUseCase_CreateClosing_Shortage(t *testing.T) {
	f := newClosingFixture(t)
	f.seedEntry(t, "m1", "ventas", domain.CurrencyCRC, 5000, 0, closingDay.Add(9*time.Hour))

	// Recorded 5000, counted 4800: 200 is missing from the drawer.
	closing, err := f.uc.CreateClosing(context.Background(), usecase.CreateClosingInput{
		CompanyID:   "company-1",
		AccountID:   domain.AccountGeneralFund,
		ClosingDate: closingDay,
		Breakdown: map[domain.Currency]domain.Breakdown{
			domain.CurrencyCRC: {"2000": 2, "500": 1, "100": 3},
		},
		Manager: "doña Ana",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !closing.Diff.Get(domain.CurrencyCRC).Equal(decimal.NewFromInt(-200)) {
		t.Errorf("diff = %s, want -200", closing.Diff.Get(domain.CurrencyCRC))
	}

	adjustments, err := f.movementRepo.ListByOriginalEntry(context.Background(), closing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(adjustments) != 1 {
		t.Fatalf("expected 1 adjustment, got %d", len(adjustments))
	}
	adj := adjustments[0]
	if adj.MovementTypeID != domain.AdjustmentTypeShortage {
		t.Errorf("adjustment type = %q, want %q", adj.MovementTypeID, domain.AdjustmentTypeShortage)
	}
	if !adj.AmountExpense.Equal(decimal.NewFromInt(200)) {
		t.Errorf("adjustment expense = %s, want 200", adj.AmountExpense)
	}
	if !adj.AmountIncome.IsZero() {
		t.Errorf("shortage adjustment has income side set: %s", adj.AmountIncome)
	}
}

func TestClosingUseCase_CreateClosing_BothCurrencies(t *testing.T) {
	f := newClosingFixture(t)
	f.seedEntry(t, "m1", "ventas", domain.CurrencyCRC, 5000, 0, closingDay.Add(9*time.Hour))
	f.seedEntry(t, "m2", "ventas", domain.CurrencyUSD, 100, 0, closingDay.Add(10*time.Hour))

	closing, err := f.uc.CreateClosing(context.Background(), usecase.CreateClosingInput{
		CompanyID:   "company-1",
		AccountID:   domain.AccountGeneralFund,
		ClosingDate: closingDay,
		Breakdown: map[domain.Currency]domain.Breakdown{
			domain.CurrencyCRC: {"5000": 1, "100": 1},
			domain.CurrencyUSD: {"20": 4, "10": 1},
		},
		Manager: "doña Ana",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !closing.Diff.Get(domain.CurrencyCRC).Equal(decimal.NewFromInt(100)) {
		t.Errorf("CRC diff = %s, want 100", closing.Diff.Get(domain.CurrencyCRC))
	}
	if !closing.Diff.Get(domain.CurrencyUSD).Equal(decimal.NewFromInt(-10)) {
		t.Errorf("USD diff = %s, want -10", closing.Diff.Get(domain.CurrencyUSD))
	}

	adjustments, err := f.movementRepo.ListByOriginalEntry(context.Background(), closing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(adjustments) != 2 {
		t.Fatalf("expected one adjustment per currency, got %d", len(adjustments))
	}
}

func TestClosingUseCase_CreateClosing_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateClosingInput
		wantErr error
	}{
		{
			name: "unknown account",
			input: usecase.CreateClosingInput{
				CompanyID:   "company-1",
				AccountID:   "vault",
				ClosingDate: closingDay,
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "unknown company",
			input: usecase.CreateClosingInput{
				CompanyID:   "company-9",
				AccountID:   domain.AccountGeneralFund,
				ClosingDate: closingDay,
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "negative breakdown count",
			input: usecase.CreateClosingInput{
				CompanyID:   "company-1",
				AccountID:   domain.AccountGeneralFund,
				ClosingDate: closingDay,
				Breakdown: map[domain.Currency]domain.Breakdown{
					domain.CurrencyCRC: {"1000": -2},
				},
			},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newClosingFixture(t)
			_, err := f.uc.CreateClosing(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestClosingUseCase_CreateClosing_DuplicateDate(t *testing.T) {
	f := newClosingFixture(t)

	input := usecase.CreateClosingInput{
		CompanyID:   "company-1",
		AccountID:   domain.AccountGeneralFund,
		ClosingDate: closingDay,
		Breakdown:   map[domain.Currency]domain.Breakdown{},
		Manager:     "doña Ana",
	}

	if _, err := f.uc.CreateClosing(context.Background(), input); err != nil {
		t.Fatalf("first closing failed: %v", err)
	}

	// Same calendar date through a different timestamp.
	input.ClosingDate = closingDay.Add(23 * time.Hour)
	if _, err := f.uc.CreateClosing(context.Background(), input); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for duplicate date, got %v", err)
	}

	// The next day is fine.
	input.ClosingDate = closingDay.AddDate(0, 0, 1)
	if _, err := f.uc.CreateClosing(context.Background(), input); err != nil {
		t.Errorf("next-day closing failed: %v", err)
	}
}

func TestClosingUseCase_CreateClosing_EmitsEvents(t *testing.T) {
	f := newClosingFixture(t)
	f.seedEntry(t, "m1", "ventas", domain.CurrencyCRC, 5000, 0, closingDay.Add(9*time.Hour))

	closing, err := f.uc.CreateClosing(context.Background(), usecase.CreateClosingInput{
		CompanyID:   "company-1",
		AccountID:   domain.AccountGeneralFund,
		ClosingDate: closingDay,
		Breakdown: map[domain.Currency]domain.Breakdown{
			domain.CurrencyCRC: {"5000": 1, "100": 1},
		},
		Manager: "doña Ana",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := f.outboxRepo.GetByAggregate(context.Background(), domain.AggregateTypeClosing, closing.ID, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected closing-created plus adjustment-synthesized events, got %d", len(events))
	}
	if events[0].EventType != domain.EventTypeClosingCreated {
		t.Errorf("first event = %q, want %q", events[0].EventType, domain.EventTypeClosingCreated)
	}
	if events[1].EventType != domain.EventTypeAdjustmentSynthesized {
		t.Errorf("second event = %q, want %q", events[1].EventType, domain.EventTypeAdjustmentSynthesized)
	}
}

func createOverageClosing(t *testing.T, f *closingFixture) *domain.DailyClosingRecord {
	t.Helper()
	f.seedEntry(t, "m1", "ventas", domain.CurrencyCRC, 5000, 0, closingDay.Add(9*time.Hour))
	f.seedEntry(t, "m2", "planilla", domain.CurrencyCRC, 0, 200, closingDay.Add(11*time.Hour))

	closing, err := f.uc.CreateClosing(context.Background(), usecase.CreateClosingInput{
		CompanyID:   "company-1",
		AccountID:   domain.AccountGeneralFund,
		ClosingDate: closingDay,
		Breakdown: map[domain.Currency]domain.Breakdown{
			domain.CurrencyCRC: {"5000": 1, "50": 1},
		},
		Manager: "doña Ana",
	})
	if err != nil {
		t.Fatalf("creating closing: %v", err)
	}
	return closing
}

func TestClosingUseCase_EditAdjustment(t *testing.T) {
	f := newClosingFixture(t)
	closing := createOverageClosing(t, f)

	adjustments, err := f.uc.Adjustments(context.Background(), closing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(adjustments) != 1 {
		t.Fatalf("expected 1 adjustment, got %d", len(adjustments))
	}

	edited, err := f.uc.EditAdjustment(context.Background(), adjustments[0].ID, decimal.NewFromInt(200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !edited.AmountIncome.Equal(decimal.NewFromInt(200)) {
		t.Errorf("edited amount = %s, want 200", edited.AmountIncome)
	}
	history := domain.DecodeAuditHistory(edited.AuditDetails)
	if len(history) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(history))
	}
	if !history[0].Before.Equal(decimal.NewFromInt(250)) || !history[0].After.Equal(decimal.NewFromInt(200)) {
		t.Errorf("audit record = %s -> %s, want 250 -> 200", history[0].Before, history[0].After)
	}

	// The diff stays at the originally observed discrepancy.
	stored, err := f.uc.GetClosing(context.Background(), closing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.Diff.Get(domain.CurrencyCRC).Equal(decimal.NewFromInt(250)) {
		t.Errorf("diff after edit = %s, want the frozen 250", stored.Diff.Get(domain.CurrencyCRC))
	}

	states, err := f.uc.Status(context.Background(), closing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if states[domain.CurrencyCRC] != domain.ClosingStateAdjustedEdited {
		t.Errorf("CRC state = %v, want adjusted_edited", states[domain.CurrencyCRC])
	}

	// A second edit extends the trail and keeps the state.
	if _, err := f.uc.EditAdjustment(context.Background(), adjustments[0].ID, decimal.NewFromInt(300)); err != nil {
		t.Fatalf("second edit failed: %v", err)
	}
	again, _ := f.movementRepo.GetByID(context.Background(), adjustments[0].ID)
	if got := len(domain.DecodeAuditHistory(again.AuditDetails)); got != 2 {
		t.Errorf("expected 2 audit records after second edit, got %d", got)
	}
	states, _ = f.uc.Status(context.Background(), closing.ID)
	if states[domain.CurrencyCRC] != domain.ClosingStateAdjustedEdited {
		t.Errorf("CRC state after second edit = %v, want adjusted_edited", states[domain.CurrencyCRC])
	}
}

func TestClosingUseCase_EditAdjustment_Rejections(t *testing.T) {
	f := newClosingFixture(t)
	f.seedEntry(t, "m1", "ventas", domain.CurrencyCRC, 5000, 0, closingDay.Add(9*time.Hour))

	t.Run("regular entry refused", func(t *testing.T) {
		_, err := f.uc.EditAdjustment(context.Background(), "m1", decimal.NewFromInt(100))
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("missing entry", func(t *testing.T) {
		_, err := f.uc.EditAdjustment(context.Background(), "ghost", decimal.NewFromInt(100))
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := f.uc.EditAdjustment(context.Background(), "m1", decimal.Zero)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestClosingUseCase_RemoveAdjustments(t *testing.T) {
	f := newClosingFixture(t)
	closing := createOverageClosing(t, f)

	resolved, err := f.uc.RemoveAdjustments(context.Background(), closing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resolution := resolved.AdjustmentResolution
	if resolution == nil {
		t.Fatal("expected a resolution snapshot")
	}
	if len(resolution.RemovedAdjustments) != 1 {
		t.Fatalf("expected 1 removed adjustment, got %d", len(resolution.RemovedAdjustments))
	}
	if !resolution.RemovedAdjustments[0].Amount.Equal(decimal.NewFromInt(250)) {
		t.Errorf("removed amount = %s, want 250", resolution.RemovedAdjustments[0].Amount)
	}
	// 5050 with the adjustment, 4800 once it is gone.
	if !resolution.PostAdjustmentBalanceCRC.Equal(decimal.NewFromInt(4800)) {
		t.Errorf("post-adjustment balance = %s, want 4800", resolution.PostAdjustmentBalanceCRC)
	}

	adjustments, err := f.movementRepo.ListByOriginalEntry(context.Background(), closing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(adjustments) != 0 {
		t.Errorf("expected adjustments deleted, %d remain", len(adjustments))
	}

	states, err := f.uc.Status(context.Background(), closing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, currency := range domain.Currencies() {
		if states[currency] != domain.ClosingStateResolved {
			t.Errorf("%s state = %v, want resolved", currency, states[currency])
		}
	}

	// Resolution is terminal.
	if _, err := f.uc.RemoveAdjustments(context.Background(), closing.ID); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error on second removal, got %v", err)
	}
}

func TestClosingUseCase_RemoveAdjustments_NothingToRemove(t *testing.T) {
	f := newClosingFixture(t)
	f.seedEntry(t, "m1", "ventas", domain.CurrencyCRC, 5000, 0, closingDay.Add(9*time.Hour))

	closing, err := f.uc.CreateClosing(context.Background(), usecase.CreateClosingInput{
		CompanyID:   "company-1",
		AccountID:   domain.AccountGeneralFund,
		ClosingDate: closingDay,
		Breakdown: map[domain.Currency]domain.Breakdown{
			domain.CurrencyCRC: {"5000": 1},
		},
		Manager: "doña Ana",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.uc.RemoveAdjustments(context.Background(), closing.ID); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for a clean closing, got %v", err)
	}
}

func TestClosingUseCase_RepairAdjustments(t *testing.T) {
	f := newClosingFixture(t)

	// A closing whose adjustment write was lost: non-zero diff, no entries.
	orphan := &domain.DailyClosingRecord{
		ID:          "closing-orphan",
		CompanyID:   "company-1",
		AccountID:   domain.AccountGeneralFund,
		ClosingDate: closingDay,
		Manager:     "doña Ana",
		CountedTotal: domain.MoneyByCurrency{
			domain.CurrencyCRC: decimal.NewFromInt(5050),
			domain.CurrencyUSD: decimal.Zero,
		},
		RecordedBalance: domain.MoneyByCurrency{
			domain.CurrencyCRC: decimal.NewFromInt(4800),
			domain.CurrencyUSD: decimal.Zero,
		},
		Diff: domain.MoneyByCurrency{
			domain.CurrencyCRC: decimal.NewFromInt(250),
			domain.CurrencyUSD: decimal.Zero,
		},
	}
	if err := f.closingRepo.Create(context.Background(), &mocks.MockTransaction{}, orphan); err != nil {
		t.Fatalf("seeding orphan: %v", err)
	}

	created, err := f.uc.RepairAdjustments(context.Background(), orphan.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 synthesized adjustment, got %d", len(created))
	}
	if !created[0].AmountIncome.Equal(decimal.NewFromInt(250)) {
		t.Errorf("repaired amount = %s, want 250", created[0].AmountIncome)
	}
	if !created[0].CreatedAt.Equal(domain.EndOfClosingDate(closingDay)) {
		t.Errorf("repaired adjustment stamped %v, want end of closing date", created[0].CreatedAt)
	}

	// The currency now has its adjustment; a second repair must refuse.
	if _, err := f.uc.RepairAdjustments(context.Background(), orphan.ID); !errors.Is(err, domain.ErrConsistency) {
		t.Errorf("expected consistency error, got %v", err)
	}
}

func TestClosingUseCase_RepairAdjustments_Resolved(t *testing.T) {
	f := newClosingFixture(t)
	closing := createOverageClosing(t, f)

	if _, err := f.uc.RemoveAdjustments(context.Background(), closing.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.uc.RepairAdjustments(context.Background(), closing.ID); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for a resolved closing, got %v", err)
	}
}

func TestClosingUseCase_Status_NotFound(t *testing.T) {
	f := newClosingFixture(t)
	if _, err := f.uc.Status(context.Background(), "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
