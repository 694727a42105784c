package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProviderCodeAutoAdjustment marks entries synthesized by the daily closing
// processor. Such entries always reference the closing they adjust.
const ProviderCodeAutoAdjustment = "AUTO_ADJUSTMENT"

// MovementEntry is a single ledger entry for a company account. Exactly one
// of AmountIncome/AmountExpense is non-zero, chosen by the entry's
// classification at creation time.
type MovementEntry struct {
	ID             string
	CompanyID      string
	AccountID      FundAccount
	Currency       Currency
	MovementTypeID string
	AmountIncome   decimal.Decimal
	AmountExpense  decimal.Decimal
	CreatedAt      time.Time
	ManagerName    string

	// ProviderCode and OriginalEntryID are set together on auto-adjustment
	// entries (ProviderCode=AUTO_ADJUSTMENT, OriginalEntryID=closing id)
	// and are both nil on regular entries.
	ProviderCode    *string
	OriginalEntryID *string

	Breakdown    Breakdown
	AuditDetails string
}

// IsAdjustment reports whether the entry was synthesized by a daily closing.
func (e *MovementEntry) IsAdjustment() bool {
	return e.ProviderCode != nil && *e.ProviderCode == ProviderCodeAutoAdjustment
}

// Amount returns the non-zero side of the entry.
func (e *MovementEntry) Amount() decimal.Decimal {
	if !e.AmountIncome.IsZero() {
		return e.AmountIncome
	}
	return e.AmountExpense
}

// SetAmount replaces the non-zero side of the entry, preserving its
// classification side.
func (e *MovementEntry) SetAmount(amount decimal.Decimal) {
	if !e.AmountIncome.IsZero() {
		e.AmountIncome = amount
		return
	}
	e.AmountExpense = amount
}

// Validate checks the entry invariants.
func (e *MovementEntry) Validate() error {
	if !e.AccountID.Valid() {
		return NewValidationError("movement", e.ID, "account_id", "unknown account")
	}
	if !e.Currency.Valid() {
		return NewValidationError("movement", e.ID, "currency", "unknown currency")
	}
	if e.AmountIncome.IsNegative() || e.AmountExpense.IsNegative() {
		return NewValidationError("movement", e.ID, "amount", "amount cannot be negative")
	}
	incomeSet := !e.AmountIncome.IsZero()
	expenseSet := !e.AmountExpense.IsZero()
	if incomeSet == expenseSet {
		return NewValidationError("movement", e.ID, "amount", "exactly one of income/expense must be non-zero")
	}
	adjustmentCode := e.ProviderCode != nil && *e.ProviderCode == ProviderCodeAutoAdjustment
	if adjustmentCode != (e.OriginalEntryID != nil) {
		return NewValidationError("movement", e.ID, "provider_code", "adjustment entries require both provider code and original entry id")
	}
	return nil
}
