package usecase

import (
	"context"
	"time"

	"github.com/fondocore/fondo/internal/domain"
)

// SummaryUseCase runs the aggregation engine over a company's ledger.
type SummaryUseCase struct {
	movementRepo MovementRepository
	typeRegistry *MovementTypeUseCase
}

// NewSummaryUseCase creates a new SummaryUseCase.
func NewSummaryUseCase(movementRepo MovementRepository, typeRegistry *MovementTypeUseCase) *SummaryUseCase {
	return &SummaryUseCase{
		movementRepo: movementRepo,
		typeRegistry: typeRegistry,
	}
}

// SummarizeInput represents input for an aggregation run.
type SummarizeInput struct {
	CompanyID string
	AccountID domain.FundAccount
	From      time.Time
	To        time.Time

	Classification     *domain.Classification
	TypeIDs            []string
	IncludeAdjustments bool

	SortBy  domain.SummaryColumn
	SortDir domain.SortDirection
}

// Summarize aggregates entries into per-type, per-currency totals. The
// computation is pure and read-only; running it twice over the same snapshot
// yields identical results.
func (uc *SummaryUseCase) Summarize(ctx context.Context, input SummarizeInput) (*domain.Summary, error) {
	if !input.AccountID.Valid() {
		return nil, domain.NewValidationError("summary", "", "account_id", "unknown account")
	}
	if input.Classification != nil && !input.Classification.Valid() {
		return nil, domain.NewValidationError("summary", "", "classification", "unknown classification")
	}
	if input.To.Before(input.From) {
		return nil, domain.NewValidationError("summary", "", "date_range", "to precedes from")
	}

	entries, err := uc.movementRepo.ListByDateRange(ctx, input.CompanyID, input.AccountID,
		domain.NormalizeClosingDate(input.From), domain.EndOfClosingDate(input.To))
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.typeRegistry.Snapshot(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	return domain.Summarize(entries, snapshot.Classifier(), domain.SummaryOptions{
		From:               input.From,
		To:                 input.To,
		Classification:     input.Classification,
		TypeIDs:            input.TypeIDs,
		IncludeAdjustments: input.IncludeAdjustments,
		SortBy:             input.SortBy,
		SortDir:            input.SortDir,
	}), nil
}
