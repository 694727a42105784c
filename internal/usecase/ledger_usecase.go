package usecase

import (
	"context"
	"time"

	"github.com/fondocore/fondo/internal/domain"
)

// LedgerUseCase answers balance queries by replaying the account's entries.
type LedgerUseCase struct {
	movementRepo MovementRepository
	typeRegistry *MovementTypeUseCase
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(movementRepo MovementRepository, typeRegistry *MovementTypeUseCase) *LedgerUseCase {
	return &LedgerUseCase{
		movementRepo: movementRepo,
		typeRegistry: typeRegistry,
	}
}

// BalanceInput represents input for a balance query.
type BalanceInput struct {
	CompanyID string
	AccountID domain.FundAccount
	// Through bounds the replay. Zero means now.
	Through time.Time
}

// Balance computes the per-currency balance of an account by replaying every
// entry through the given instant.
func (uc *LedgerUseCase) Balance(ctx context.Context, input BalanceInput) (domain.MoneyByCurrency, error) {
	if !input.AccountID.Valid() {
		return nil, domain.NewValidationError("ledger", "", "account_id", "unknown account")
	}

	through := input.Through
	if through.IsZero() {
		through = time.Now().UTC()
	}

	entries, err := uc.movementRepo.ListThrough(ctx, input.CompanyID, input.AccountID, through)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.typeRegistry.Snapshot(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	return domain.ComputeBalance(entries, snapshot.Classifier()), nil
}
