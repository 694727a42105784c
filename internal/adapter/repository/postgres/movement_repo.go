package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fondocore/fondo/internal/domain"
	"github.com/fondocore/fondo/internal/usecase"
)

const movementColumns = `id, company_id, account_id, currency, movement_type_id,
	amount_income, amount_expense, created_at, manager_name,
	provider_code, original_entry_id, breakdown, audit_details`

// MovementRepository implements usecase.MovementRepository.
type MovementRepository struct {
	pool *pgxpool.Pool
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{pool: pool}
}

// Create inserts a new movement entry within a transaction.
func (r *MovementRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.MovementEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	breakdown, err := breakdownToJSON(entry.Breakdown)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx, `
		INSERT INTO movements (id, company_id, account_id, currency, movement_type_id,
			amount_income, amount_expense, created_at, manager_name,
			provider_code, original_entry_id, breakdown, audit_details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		entry.ID,
		entry.CompanyID,
		string(entry.AccountID),
		string(entry.Currency),
		entry.MovementTypeID,
		decimalToNumeric(entry.AmountIncome),
		decimalToNumeric(entry.AmountExpense),
		timeToPgTimestamptz(entry.CreatedAt),
		entry.ManagerName,
		entry.ProviderCode,
		entry.OriginalEntryID,
		breakdown,
		entry.AuditDetails,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.NewValidationError("movement", entry.ID, "id", "movement already exists")
		}

		return err
	}

	return nil
}

// GetByID retrieves a movement entry by ID.
func (r *MovementRepository) GetByID(ctx context.Context, id string) (*domain.MovementEntry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+movementColumns+`
		FROM movements
		WHERE id = $1`, id)

	entry, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("movement", id)
		}

		return nil, err
	}

	return entry, nil
}

// Update replaces the whole movement record within a transaction.
func (r *MovementRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.MovementEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	breakdown, err := breakdownToJSON(entry.Breakdown)
	if err != nil {
		return err
	}

	tag, err := pgxTx.Exec(ctx, `
		UPDATE movements
		SET company_id = $2, account_id = $3, currency = $4, movement_type_id = $5,
			amount_income = $6, amount_expense = $7, created_at = $8, manager_name = $9,
			provider_code = $10, original_entry_id = $11, breakdown = $12, audit_details = $13
		WHERE id = $1`,
		entry.ID,
		entry.CompanyID,
		string(entry.AccountID),
		string(entry.Currency),
		entry.MovementTypeID,
		decimalToNumeric(entry.AmountIncome),
		decimalToNumeric(entry.AmountExpense),
		timeToPgTimestamptz(entry.CreatedAt),
		entry.ManagerName,
		entry.ProviderCode,
		entry.OriginalEntryID,
		breakdown,
		entry.AuditDetails,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("movement", entry.ID)
	}

	return nil
}

// Delete removes a movement entry within a transaction.
func (r *MovementRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("movement", id)
	}

	return nil
}

// ListByAccount retrieves entries for one account, newest first.
func (r *MovementRepository) ListByAccount(ctx context.Context, companyID string, accountID domain.FundAccount, limit, offset int) ([]*domain.MovementEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+movementColumns+`
		FROM movements
		WHERE company_id = $1 AND account_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`,
		companyID, string(accountID), int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovements(rows)
}

// ListThrough retrieves all entries with created_at <= through, ordered by
// (created_at, id) ascending. Balance computation depends on this ordering.
func (r *MovementRepository) ListThrough(ctx context.Context, companyID string, accountID domain.FundAccount, through time.Time) ([]*domain.MovementEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+movementColumns+`
		FROM movements
		WHERE company_id = $1 AND account_id = $2 AND created_at <= $3
		ORDER BY created_at ASC, id ASC`,
		companyID, string(accountID), timeToPgTimestamptz(through))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovements(rows)
}

// ListByDateRange retrieves entries with created_at in [from, to], ordered by
// (created_at, id) ascending.
func (r *MovementRepository) ListByDateRange(ctx context.Context, companyID string, accountID domain.FundAccount, from, to time.Time) ([]*domain.MovementEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+movementColumns+`
		FROM movements
		WHERE company_id = $1 AND account_id = $2 AND created_at >= $3 AND created_at <= $4
		ORDER BY created_at ASC, id ASC`,
		companyID, string(accountID), timeToPgTimestamptz(from), timeToPgTimestamptz(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovements(rows)
}

// ListByOriginalEntry retrieves the adjustment entries referencing a closing.
func (r *MovementRepository) ListByOriginalEntry(ctx context.Context, closingID string) ([]*domain.MovementEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+movementColumns+`
		FROM movements
		WHERE original_entry_id = $1
		ORDER BY created_at ASC, id ASC`,
		closingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovements(rows)
}

func scanMovement(row pgx.Row) (*domain.MovementEntry, error) {
	var (
		entry         domain.MovementEntry
		accountID     string
		currency      string
		amountIncome  pgtype.Numeric
		amountExpense pgtype.Numeric
		createdAt     pgtype.Timestamptz
		breakdown     []byte
	)

	err := row.Scan(
		&entry.ID,
		&entry.CompanyID,
		&accountID,
		&currency,
		&entry.MovementTypeID,
		&amountIncome,
		&amountExpense,
		&createdAt,
		&entry.ManagerName,
		&entry.ProviderCode,
		&entry.OriginalEntryID,
		&breakdown,
		&entry.AuditDetails,
	)
	if err != nil {
		return nil, err
	}

	entry.AccountID = domain.FundAccount(accountID)
	entry.Currency = domain.Currency(currency)
	entry.AmountIncome = numericToDecimal(amountIncome)
	entry.AmountExpense = numericToDecimal(amountExpense)
	entry.CreatedAt = createdAt.Time

	entry.Breakdown, err = jsonToBreakdown(breakdown)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

func scanMovements(rows pgx.Rows) ([]*domain.MovementEntry, error) {
	entries := make([]*domain.MovementEntry, 0)
	for rows.Next() {
		entry, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
