package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMovementEntry_Validate(t *testing.T) {
	t.Parallel()

	code := ProviderCodeAutoAdjustment
	closingID := "closing-1"

	valid := func() *MovementEntry {
		return &MovementEntry{
			ID:             "mov-1",
			CompanyID:      "company-1",
			AccountID:      AccountGeneralFund,
			Currency:       CurrencyCRC,
			MovementTypeID: "type-1",
			AmountIncome:   decimal.NewFromInt(1000),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*MovementEntry)
		wantErr bool
	}{
		{name: "valid income entry", mutate: func(e *MovementEntry) {}},
		{
			name: "valid expense entry",
			mutate: func(e *MovementEntry) {
				e.AmountIncome = decimal.Zero
				e.AmountExpense = decimal.NewFromInt(500)
			},
		},
		{
			name: "valid adjustment pair",
			mutate: func(e *MovementEntry) {
				e.ProviderCode = &code
				e.OriginalEntryID = &closingID
			},
		},
		{
			name:    "unknown account",
			mutate:  func(e *MovementEntry) { e.AccountID = "vault" },
			wantErr: true,
		},
		{
			name:    "unknown currency",
			mutate:  func(e *MovementEntry) { e.Currency = "EUR" },
			wantErr: true,
		},
		{
			name:    "negative income",
			mutate:  func(e *MovementEntry) { e.AmountIncome = decimal.NewFromInt(-10) },
			wantErr: true,
		},
		{
			name: "both sides set",
			mutate: func(e *MovementEntry) {
				e.AmountExpense = decimal.NewFromInt(500)
			},
			wantErr: true,
		},
		{
			name: "neither side set",
			mutate: func(e *MovementEntry) {
				e.AmountIncome = decimal.Zero
			},
			wantErr: true,
		},
		{
			name: "adjustment code without closing reference",
			mutate: func(e *MovementEntry) {
				e.ProviderCode = &code
			},
			wantErr: true,
		},
		{
			name: "closing reference without adjustment code",
			mutate: func(e *MovementEntry) {
				e.OriginalEntryID = &closingID
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := valid()
			tt.mutate(entry)

			err := entry.Validate()
			if tt.wantErr && !errors.Is(err, ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMovementEntry_IsAdjustment(t *testing.T) {
	t.Parallel()

	code := ProviderCodeAutoAdjustment
	other := "IMPORT"
	closingID := "closing-1"

	regular := &MovementEntry{AmountIncome: decimal.NewFromInt(100)}
	if regular.IsAdjustment() {
		t.Error("regular entry flagged as adjustment")
	}

	imported := &MovementEntry{ProviderCode: &other}
	if imported.IsAdjustment() {
		t.Error("non-adjustment provider code flagged as adjustment")
	}

	adjustment := &MovementEntry{ProviderCode: &code, OriginalEntryID: &closingID}
	if !adjustment.IsAdjustment() {
		t.Error("adjustment entry not recognized")
	}
}

func TestMovementEntry_SetAmount(t *testing.T) {
	t.Parallel()

	income := &MovementEntry{AmountIncome: decimal.NewFromInt(100)}
	income.SetAmount(decimal.NewFromInt(250))
	if !income.AmountIncome.Equal(decimal.NewFromInt(250)) || !income.AmountExpense.IsZero() {
		t.Errorf("income side not preserved: income=%s expense=%s", income.AmountIncome, income.AmountExpense)
	}

	expense := &MovementEntry{AmountExpense: decimal.NewFromInt(100)}
	expense.SetAmount(decimal.NewFromInt(75))
	if !expense.AmountExpense.Equal(decimal.NewFromInt(75)) || !expense.AmountIncome.IsZero() {
		t.Errorf("expense side not preserved: income=%s expense=%s", expense.AmountIncome, expense.AmountExpense)
	}

	if !income.Amount().Equal(decimal.NewFromInt(250)) {
		t.Errorf("Amount() = %s, want 250", income.Amount())
	}
	if !expense.Amount().Equal(decimal.NewFromInt(75)) {
		t.Errorf("Amount() = %s, want 75", expense.Amount())
	}
}
