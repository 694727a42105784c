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

type movementFixture struct {
	uc           *usecase.MovementUseCase
	movementRepo *mocks.MockMovementRepository
	outboxRepo   *mocks.MockOutboxRepository
}

func newMovementFixture(t *testing.T) *movementFixture {
	t.Helper()

	typeRepo := mocks.NewMockMovementTypeRepository()
	ctx := context.Background()
	seed := []*domain.MovementTypeConfig{
		{ID: "ventas", OwnerID: "company-1", Category: domain.CategoryIngreso, Name: "Ventas", Order: 1},
		{ID: "planilla", OwnerID: "company-1", Category: domain.CategoryGasto, Name: "Planilla", Order: 1},
		{ID: "retiro", OwnerID: "company-1", Category: domain.CategoryEgreso, Name: "Retiro socio", Order: 1},
	}
	for _, config := range seed {
		if err := typeRepo.Create(ctx, config); err != nil {
			t.Fatalf("seeding catalog: %v", err)
		}
	}
	typeUC := usecase.NewMovementTypeUseCase(typeRepo, mocks.NewMockTxManager(), mocks.NewSequenceIDGenerator("type"))

	f := &movementFixture{
		movementRepo: mocks.NewMockMovementRepository(),
		outboxRepo:   mocks.NewMockOutboxRepository(),
	}
	f.uc = usecase.NewMovementUseCase(
		mocks.NewMockTxManager(),
		f.movementRepo,
		typeUC,
		f.outboxRepo,
		mocks.NewSequenceIDGenerator("mov"),
	)
	return f
}

func TestMovementUseCase_CreateMovement(t *testing.T) {
	tests := []struct {
		name       string
		typeID     string
		wantIncome bool
	}{
		{name: "ingreso type lands on income", typeID: "ventas", wantIncome: true},
		{name: "gasto type lands on expense", typeID: "planilla"},
		{name: "egreso type lands on expense", typeID: "retiro"},
		{name: "orphaned ingreso name lands on income", typeID: "deposito", wantIncome: true},
		{name: "unknown reference lands on expense", typeID: "misc-9999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMovementFixture(t)

			entry, err := f.uc.CreateMovement(context.Background(), usecase.CreateMovementInput{
				CompanyID:      "company-1",
				AccountID:      domain.AccountGeneralFund,
				Currency:       domain.CurrencyCRC,
				MovementTypeID: tt.typeID,
				Amount:         decimal.NewFromInt(1000),
				Manager:        "doña Ana",
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantIncome {
				if !entry.AmountIncome.Equal(decimal.NewFromInt(1000)) || !entry.AmountExpense.IsZero() {
					t.Errorf("income=%s expense=%s, want amount on income side", entry.AmountIncome, entry.AmountExpense)
				}
			} else {
				if !entry.AmountExpense.Equal(decimal.NewFromInt(1000)) || !entry.AmountIncome.IsZero() {
					t.Errorf("income=%s expense=%s, want amount on expense side", entry.AmountIncome, entry.AmountExpense)
				}
			}

			stored, err := f.movementRepo.GetByID(context.Background(), entry.ID)
			if err != nil {
				t.Fatalf("entry not persisted: %v", err)
			}
			if stored.IsAdjustment() {
				t.Error("manual entry marked as adjustment")
			}
		})
	}
}

func TestMovementUseCase_CreateMovement_Validation(t *testing.T) {
	f := newMovementFixture(t)

	tests := []struct {
		name   string
		mutate func(*usecase.CreateMovementInput)
	}{
		{name: "zero amount", mutate: func(in *usecase.CreateMovementInput) { in.Amount = decimal.Zero }},
		{name: "negative amount", mutate: func(in *usecase.CreateMovementInput) { in.Amount = decimal.NewFromInt(-100) }},
		{name: "unknown account", mutate: func(in *usecase.CreateMovementInput) { in.AccountID = "vault" }},
		{name: "unknown currency", mutate: func(in *usecase.CreateMovementInput) { in.Currency = "EUR" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := usecase.CreateMovementInput{
				CompanyID:      "company-1",
				AccountID:      domain.AccountGeneralFund,
				Currency:       domain.CurrencyCRC,
				MovementTypeID: "ventas",
				Amount:         decimal.NewFromInt(1000),
				Manager:        "doña Ana",
			}
			tt.mutate(&input)

			if _, err := f.uc.CreateMovement(context.Background(), input); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestMovementUseCase_CreateMovement_EmitsEvent(t *testing.T) {
	f := newMovementFixture(t)

	entry, err := f.uc.CreateMovement(context.Background(), usecase.CreateMovementInput{
		CompanyID:      "company-1",
		AccountID:      domain.AccountGeneralFund,
		Currency:       domain.CurrencyCRC,
		MovementTypeID: "ventas",
		Amount:         decimal.NewFromInt(1000),
		Manager:        "doña Ana",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := f.outboxRepo.GetByAggregate(context.Background(), domain.AggregateTypeMovement, entry.ID, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].EventType != domain.EventTypeMovementCreated {
		t.Errorf("event type = %q, want %q", events[0].EventType, domain.EventTypeMovementCreated)
	}
}

func TestMovementUseCase_EditAmount(t *testing.T) {
	f := newMovementFixture(t)

	entry, err := f.uc.CreateMovement(context.Background(), usecase.CreateMovementInput{
		CompanyID:      "company-1",
		AccountID:      domain.AccountGeneralFund,
		Currency:       domain.CurrencyCRC,
		MovementTypeID: "ventas",
		Amount:         decimal.NewFromInt(1000),
		Manager:        "doña Ana",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	edited, err := f.uc.EditAmount(context.Background(), entry.ID, decimal.NewFromInt(1200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !edited.AmountIncome.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("amount = %s, want 1200", edited.AmountIncome)
	}
	history := domain.DecodeAuditHistory(edited.AuditDetails)
	if len(history) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(history))
	}
	if !history[0].Before.Equal(decimal.NewFromInt(1000)) || !history[0].After.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("audit record = %s -> %s, want 1000 -> 1200", history[0].Before, history[0].After)
	}

	if _, err := f.uc.EditAmount(context.Background(), "ghost", decimal.NewFromInt(100)); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := f.uc.EditAmount(context.Background(), entry.ID, decimal.Zero); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestMovementUseCase_DeleteMovement(t *testing.T) {
	f := newMovementFixture(t)
	ctx := context.Background()

	entry, err := f.uc.CreateMovement(ctx, usecase.CreateMovementInput{
		CompanyID:      "company-1",
		AccountID:      domain.AccountGeneralFund,
		Currency:       domain.CurrencyCRC,
		MovementTypeID: "ventas",
		Amount:         decimal.NewFromInt(1000),
		Manager:        "doña Ana",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.uc.DeleteMovement(ctx, entry.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.movementRepo.GetByID(ctx, entry.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("entry still present after delete: %v", err)
	}
}

func TestMovementUseCase_DeleteMovement_AdjustmentRefused(t *testing.T) {
	f := newMovementFixture(t)
	ctx := context.Background()

	code := domain.ProviderCodeAutoAdjustment
	closingID := "closing-1"
	adjustment := &domain.MovementEntry{
		ID:              "adj-1",
		CompanyID:       "company-1",
		AccountID:       domain.AccountGeneralFund,
		Currency:        domain.CurrencyCRC,
		MovementTypeID:  domain.AdjustmentTypeOverage,
		AmountIncome:    decimal.NewFromInt(250),
		CreatedAt:       time.Now().UTC(),
		ProviderCode:    &code,
		OriginalEntryID: &closingID,
	}
	if err := f.movementRepo.Create(ctx, &mocks.MockTransaction{}, adjustment); err != nil {
		t.Fatalf("seeding adjustment: %v", err)
	}

	if err := f.uc.DeleteMovement(ctx, adjustment.ID); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, err := f.movementRepo.GetByID(ctx, adjustment.ID); err != nil {
		t.Errorf("adjustment must survive the refused delete: %v", err)
	}
}

func TestMovementUseCase_ListMovements(t *testing.T) {
	f := newMovementFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := f.uc.CreateMovement(ctx, usecase.CreateMovementInput{
			CompanyID:      "company-1",
			AccountID:      domain.AccountGeneralFund,
			Currency:       domain.CurrencyCRC,
			MovementTypeID: "ventas",
			Amount:         decimal.NewFromInt(int64(100 * (i + 1))),
			Manager:        "doña Ana",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries, err := f.uc.ListMovements(ctx, usecase.ListMovementsInput{
		CompanyID: "company-1",
		AccountID: domain.AccountGeneralFund,
		Limit:     2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries with limit 2, got %d", len(entries))
	}
}
