package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fondocore/fondo/internal/domain"
	"github.com/fondocore/fondo/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MovementResponse represents a ledger entry in API responses.
type MovementResponse struct {
	ID              string                `json:"id"`
	CompanyID       string                `json:"company_id"`
	AccountID       string                `json:"account_id"`
	Currency        string                `json:"currency"`
	MovementTypeID  string                `json:"movement_type_id"`
	AmountIncome    decimal.Decimal       `json:"amount_income"`
	AmountExpense   decimal.Decimal       `json:"amount_expense"`
	CreatedAt       time.Time             `json:"created_at"`
	Manager         string                `json:"manager"`
	ProviderCode    *string               `json:"provider_code,omitempty"`
	OriginalEntryID *string               `json:"original_entry_id,omitempty"`
	Breakdown       domain.Breakdown      `json:"breakdown,omitempty"`
	EditHistory     []domain.ChangeRecord `json:"edit_history,omitempty"`
}

// MovementFromDomain converts a domain entry to a response.
func MovementFromDomain(e *domain.MovementEntry) *MovementResponse {
	return &MovementResponse{
		ID:              e.ID,
		CompanyID:       e.CompanyID,
		AccountID:       string(e.AccountID),
		Currency:        string(e.Currency),
		MovementTypeID:  e.MovementTypeID,
		AmountIncome:    e.AmountIncome,
		AmountExpense:   e.AmountExpense,
		CreatedAt:       e.CreatedAt,
		Manager:         e.ManagerName,
		ProviderCode:    e.ProviderCode,
		OriginalEntryID: e.OriginalEntryID,
		Breakdown:       e.Breakdown,
		EditHistory:     domain.DecodeAuditHistory(e.AuditDetails),
	}
}

// MovementsFromDomain converts domain entries to responses.
func MovementsFromDomain(entries []*domain.MovementEntry) []*MovementResponse {
	result := make([]*MovementResponse, len(entries))
	for i, e := range entries {
		result[i] = MovementFromDomain(e)
	}
	return result
}

// MovementTypeResponse represents a catalog entry in API responses.
type MovementTypeResponse struct {
	ID       string `json:"id"`
	OwnerID  string `json:"owner_id"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Order    int    `json:"order"`
}

// MovementTypeFromDomain converts a domain type to a response.
func MovementTypeFromDomain(t *domain.MovementTypeConfig) *MovementTypeResponse {
	return &MovementTypeResponse{
		ID:       t.ID,
		OwnerID:  t.OwnerID,
		Category: string(t.Category),
		Name:     t.Name,
		Order:    t.Order,
	}
}

// MovementTypesFromDomain converts domain types to responses.
func MovementTypesFromDomain(types []*domain.MovementTypeConfig) []*MovementTypeResponse {
	result := make([]*MovementTypeResponse, len(types))
	for i, t := range types {
		result[i] = MovementTypeFromDomain(t)
	}
	return result
}

// RemovedAdjustmentResponse represents one removed adjustment snapshot.
type RemovedAdjustmentResponse struct {
	EntryID   string          `json:"entry_id"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	Manager   string          `json:"manager"`
	CreatedAt time.Time       `json:"created_at"`
}

// ResolutionResponse represents a closing's terminal resolution.
type ResolutionResponse struct {
	RemovedAdjustments       []RemovedAdjustmentResponse `json:"removed_adjustments"`
	PostAdjustmentBalanceCRC decimal.Decimal             `json:"post_adjustment_balance_crc"`
	PostAdjustmentBalanceUSD decimal.Decimal             `json:"post_adjustment_balance_usd"`
	ResolvedAt               time.Time                   `json:"resolved_at"`
	ResolvedBy               string                      `json:"resolved_by"`
}

// ClosingResponse represents a daily closing in API responses.
type ClosingResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	AccountID   string    `json:"account_id"`
	ClosingDate string    `json:"closing_date"`
	CreatedAt   time.Time `json:"created_at"`
	Manager     string    `json:"manager"`
	Notes       string    `json:"notes,omitempty"`

	CountedTotal    map[string]decimal.Decimal `json:"counted_total"`
	RecordedBalance map[string]decimal.Decimal `json:"recorded_balance"`
	Diff            map[string]decimal.Decimal `json:"diff"`

	Breakdown map[string]domain.Breakdown `json:"breakdown,omitempty"`

	Resolution *ResolutionResponse `json:"resolution,omitempty"`
}

// ClosingFromDomain converts a domain closing to a response.
func ClosingFromDomain(c *domain.DailyClosingRecord) *ClosingResponse {
	resp := &ClosingResponse{
		ID:              c.ID,
		CompanyID:       c.CompanyID,
		AccountID:       string(c.AccountID),
		ClosingDate:     c.ClosingDate.Format(domain.ClosingDateLayout),
		CreatedAt:       c.CreatedAt,
		Manager:         c.Manager,
		Notes:           c.Notes,
		CountedTotal:    moneyMap(c.CountedTotal),
		RecordedBalance: moneyMap(c.RecordedBalance),
		Diff:            moneyMap(c.Diff),
	}

	if c.Breakdown != nil {
		resp.Breakdown = make(map[string]domain.Breakdown, len(c.Breakdown))
		for currency, counts := range c.Breakdown {
			resp.Breakdown[string(currency)] = counts
		}
	}

	if r := c.AdjustmentResolution; r != nil {
		removed := make([]RemovedAdjustmentResponse, len(r.RemovedAdjustments))
		for i, adj := range r.RemovedAdjustments {
			removed[i] = RemovedAdjustmentResponse{
				EntryID:   adj.EntryID,
				Currency:  string(adj.Currency),
				Amount:    adj.Amount,
				Manager:   adj.Manager,
				CreatedAt: adj.CreatedAt,
			}
		}
		resp.Resolution = &ResolutionResponse{
			RemovedAdjustments:       removed,
			PostAdjustmentBalanceCRC: r.PostAdjustmentBalanceCRC,
			PostAdjustmentBalanceUSD: r.PostAdjustmentBalanceUSD,
			ResolvedAt:               r.ResolvedAt,
			ResolvedBy:               r.ResolvedBy,
		}
	}

	return resp
}

// ClosingsFromDomain converts domain closings to responses.
func ClosingsFromDomain(closings []*domain.DailyClosingRecord) []*ClosingResponse {
	result := make([]*ClosingResponse, len(closings))
	for i, c := range closings {
		result[i] = ClosingFromDomain(c)
	}
	return result
}

// ClosingStatusResponse represents the per-currency reconciliation state.
type ClosingStatusResponse struct {
	ClosingID string            `json:"closing_id"`
	States    map[string]string `json:"states"`
}

// ClosingStatusFromDomain converts per-currency states to a response.
func ClosingStatusFromDomain(closingID string, states map[domain.Currency]domain.ClosingState) *ClosingStatusResponse {
	resp := &ClosingStatusResponse{
		ClosingID: closingID,
		States:    make(map[string]string, len(states)),
	}
	for currency, state := range states {
		resp.States[string(currency)] = string(state)
	}
	return resp
}

// SummaryRowResponse represents one aggregated row.
type SummaryRowResponse struct {
	MovementTypeID string                           `json:"movement_type_id"`
	Label          string                           `json:"label"`
	Classification string                           `json:"classification"`
	Totals         map[string]SummaryBucketResponse `json:"totals"`
}

// SummaryBucketResponse represents per-classification totals for a currency.
type SummaryBucketResponse struct {
	Ingreso decimal.Decimal `json:"ingreso"`
	Gasto   decimal.Decimal `json:"gasto"`
	Egreso  decimal.Decimal `json:"egreso"`
	Net     decimal.Decimal `json:"net"`
}

// SummaryResponse represents an aggregation run result.
type SummaryResponse struct {
	Rows       []*SummaryRowResponse            `json:"rows"`
	Totals     map[string]SummaryBucketResponse `json:"totals"`
	NetBalance map[string]decimal.Decimal       `json:"net_balance"`
}

// SummaryFromDomain converts a domain summary to a response.
func SummaryFromDomain(s *domain.Summary) *SummaryResponse {
	rows := make([]*SummaryRowResponse, len(s.Rows))
	for i, row := range s.Rows {
		totals := make(map[string]SummaryBucketResponse, len(row.Totals))
		for currency, bucket := range row.Totals {
			totals[string(currency)] = bucketResponse(bucket)
		}
		rows[i] = &SummaryRowResponse{
			MovementTypeID: row.MovementTypeID,
			Label:          row.Label,
			Classification: string(row.Classification),
			Totals:         totals,
		}
	}

	totals := make(map[string]SummaryBucketResponse, len(s.Totals.ByCurrency))
	for currency, bucket := range s.Totals.ByCurrency {
		totals[string(currency)] = bucketResponse(bucket)
	}
	net := make(map[string]decimal.Decimal, len(s.Totals.NetBalance))
	for currency, balance := range s.Totals.NetBalance {
		net[string(currency)] = balance
	}

	return &SummaryResponse{
		Rows:       rows,
		Totals:     totals,
		NetBalance: net,
	}
}

// BalanceResponse represents a ledger balance in API responses.
type BalanceResponse struct {
	CompanyID string                     `json:"company_id"`
	AccountID string                     `json:"account_id"`
	Through   time.Time                  `json:"through"`
	Balance   map[string]decimal.Decimal `json:"balance"`
}

// ConsistencyReportResponse represents a consistency check result.
type ConsistencyReportResponse struct {
	Consistent       bool      `json:"consistent"`
	OrphanedClosings []string  `json:"orphaned_closings,omitempty"`
	CheckedAt        time.Time `json:"checked_at"`
}

// ConsistencyReportFromDomain converts a report to a response.
func ConsistencyReportFromDomain(r *usecase.ConsistencyReport) *ConsistencyReportResponse {
	return &ConsistencyReportResponse{
		Consistent:       r.Consistent,
		OrphanedClosings: r.OrphanedClosings,
		CheckedAt:        r.CheckedAt,
	}
}

// MoneyFromDomain converts a per-currency amount map to response keys.
func MoneyFromDomain(m domain.MoneyByCurrency) map[string]decimal.Decimal {
	return moneyMap(m)
}

func moneyMap(m domain.MoneyByCurrency) map[string]decimal.Decimal {
	result := make(map[string]decimal.Decimal, len(m))
	for currency, amount := range m {
		result[string(currency)] = amount
	}
	return result
}

func bucketResponse(b domain.SummaryBucket) SummaryBucketResponse {
	return SummaryBucketResponse{
		Ingreso: b.Ingreso,
		Gasto:   b.Gasto,
		Egreso:  b.Egreso,
		Net:     b.Net(),
	}
}
