package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyByCurrency holds one amount per currency.
type MoneyByCurrency map[Currency]decimal.Decimal

// Get returns the amount for a currency, zero when absent.
func (m MoneyByCurrency) Get(currency Currency) decimal.Decimal {
	if amount, ok := m[currency]; ok {
		return amount
	}
	return decimal.Zero
}

// ClosingDateLayout is the calendar-date format of a closing.
const ClosingDateLayout = "2006-01-02"

// NormalizeClosingDate truncates a timestamp to its UTC calendar date.
func NormalizeClosingDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfClosingDate returns the inclusive upper bound of a closing date.
func EndOfClosingDate(date time.Time) time.Time {
	day := NormalizeClosingDate(date)
	return day.Add(24*time.Hour - time.Millisecond)
}

// RemovedAdjustment is the audit snapshot of an adjustment entry deleted by
// a manual resolution.
type RemovedAdjustment struct {
	EntryID   string          `json:"entry_id"`
	Currency  Currency        `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	Manager   string          `json:"manager"`
	CreatedAt time.Time       `json:"created_at"`
}

// AdjustmentResolution records the terminal "adjustments removed" state of a
// closing: the deleted entries and the recorded balance recomputed right
// after their removal.
type AdjustmentResolution struct {
	RemovedAdjustments       []RemovedAdjustment `json:"removed_adjustments"`
	PostAdjustmentBalanceCRC decimal.Decimal     `json:"post_adjustment_balance_crc"`
	PostAdjustmentBalanceUSD decimal.Decimal     `json:"post_adjustment_balance_usd"`
	ResolvedAt               time.Time           `json:"resolved_at"`
	ResolvedBy               string              `json:"resolved_by"`
}

// PostAdjustmentBalance returns the recomputed balance for a currency.
func (r *AdjustmentResolution) PostAdjustmentBalance(currency Currency) decimal.Decimal {
	if currency == CurrencyUSD {
		return r.PostAdjustmentBalanceUSD
	}
	return r.PostAdjustmentBalanceCRC
}

// DailyClosingRecord reconciles a physical cash count against the ledger
// balance of one account on one calendar date. Diff is fixed at creation and
// never recomputed, even when the adjustment that corrects it is edited.
type DailyClosingRecord struct {
	ID          string
	CompanyID   string
	AccountID   FundAccount
	ClosingDate time.Time
	CreatedAt   time.Time
	Manager     string
	Notes       string

	CountedTotal    MoneyByCurrency
	RecordedBalance MoneyByCurrency
	Diff            MoneyByCurrency

	Breakdown map[Currency]Breakdown

	AdjustmentResolution *AdjustmentResolution
}

// ClosingState is the reconciliation state of a closing for one currency.
type ClosingState string

const (
	// ClosingStateClean is terminal: the count matched the ledger.
	ClosingStateClean ClosingState = "clean"
	// ClosingStateUnresolved means an auto-adjustment exists and was never
	// edited.
	ClosingStateUnresolved ClosingState = "unresolved"
	// ClosingStateAdjustedEdited means the adjustment exists and carries a
	// non-empty edit history. Further edits stay in this state.
	ClosingStateAdjustedEdited ClosingState = "adjusted_edited"
	// ClosingStateResolved is terminal: adjustments were removed and the
	// resolution snapshot retained.
	ClosingStateResolved ClosingState = "resolved"
)

// StateFor derives the state for a currency given the closing's current
// adjustment entries.
func (c *DailyClosingRecord) StateFor(currency Currency, adjustments []*MovementEntry) ClosingState {
	if c.AdjustmentResolution != nil {
		return ClosingStateResolved
	}
	if c.Diff.Get(currency).IsZero() {
		return ClosingStateClean
	}
	for _, adj := range adjustments {
		if adj.Currency != currency {
			continue
		}
		if len(DecodeAuditHistory(adj.AuditDetails)) > 0 {
			return ClosingStateAdjustedEdited
		}
		return ClosingStateUnresolved
	}
	return ClosingStateUnresolved
}

// Validate checks the closing invariants at creation time.
func (c *DailyClosingRecord) Validate() error {
	if c.CompanyID == "" {
		return NewValidationError("closing", c.ID, "company_id", "company is required")
	}
	if !c.AccountID.Valid() {
		return NewValidationError("closing", c.ID, "account_id", "unknown account")
	}
	if c.ClosingDate.IsZero() {
		return NewValidationError("closing", c.ID, "closing_date", "closing date is required")
	}
	for _, currency := range Currencies() {
		expected := c.CountedTotal.Get(currency).Sub(c.RecordedBalance.Get(currency))
		if !c.Diff.Get(currency).Equal(expected) {
			return NewConsistencyError("closing", c.ID, "diff does not equal counted total minus recorded balance")
		}
	}
	return nil
}
