package usecase

import (
	"context"
	"time"
)

// ConsistencyUseCase verifies the ledger-wide invariant that a non-zero-diff
// closing is never left without its adjustment or a resolution.
type ConsistencyUseCase struct {
	closingRepo ClosingRepository
	closingUC   *ClosingUseCase
}

// NewConsistencyUseCase creates a new ConsistencyUseCase.
func NewConsistencyUseCase(closingRepo ClosingRepository, closingUC *ClosingUseCase) *ConsistencyUseCase {
	return &ConsistencyUseCase{
		closingRepo: closingRepo,
		closingUC:   closingUC,
	}
}

// ConsistencyReport lists closings that still owe an adjustment.
type ConsistencyReport struct {
	Consistent       bool
	OrphanedClosings []string
	CheckedAt        time.Time
}

// Check finds non-zero-diff closings with neither adjustments nor a
// resolution. Such closings come from a failed adjustment creation after the
// closing record was durably written.
func (uc *ConsistencyUseCase) Check(ctx context.Context) (*ConsistencyReport, error) {
	orphaned, err := uc.closingRepo.ListOrphaned(ctx)
	if err != nil {
		return nil, err
	}

	report := &ConsistencyReport{
		Consistent: len(orphaned) == 0,
		CheckedAt:  time.Now().UTC(),
	}
	for _, closing := range orphaned {
		report.OrphanedClosings = append(report.OrphanedClosings, closing.ID)
	}
	return report, nil
}

// Repair synthesizes the missing adjustments for every orphaned closing.
func (uc *ConsistencyUseCase) Repair(ctx context.Context) (int, error) {
	orphaned, err := uc.closingRepo.ListOrphaned(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, closing := range orphaned {
		if _, err := uc.closingUC.RepairAdjustments(ctx, closing.ID); err != nil {
			return repaired, err
		}
		repaired++
	}
	return repaired, nil
}
