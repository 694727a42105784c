package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fondocore/fondo/internal/domain"
	"github.com/fondocore/fondo/internal/usecase"
)

const closingColumns = `id, company_id, account_id, closing_date, created_at, manager, notes,
	counted_crc, counted_usd, recorded_crc, recorded_usd, diff_crc, diff_usd,
	breakdown, resolution`

// ClosingRepository implements usecase.ClosingRepository.
type ClosingRepository struct {
	pool *pgxpool.Pool
}

// NewClosingRepository creates a new ClosingRepository.
func NewClosingRepository(pool *pgxpool.Pool) *ClosingRepository {
	return &ClosingRepository{pool: pool}
}

// Create inserts a new daily closing within a transaction. The unique index
// on (company_id, account_id, closing_date) backstops concurrent creates.
func (r *ClosingRepository) Create(ctx context.Context, tx usecase.Transaction, closing *domain.DailyClosingRecord) error {
	pgxTx := tx.(*Tx).PgxTx()

	breakdown, resolution, err := closingJSON(closing)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx, `
		INSERT INTO daily_closings (id, company_id, account_id, closing_date, created_at, manager, notes,
			counted_crc, counted_usd, recorded_crc, recorded_usd, diff_crc, diff_usd,
			breakdown, resolution)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		closing.ID,
		closing.CompanyID,
		string(closing.AccountID),
		timeToPgTimestamptz(closing.ClosingDate),
		timeToPgTimestamptz(closing.CreatedAt),
		closing.Manager,
		closing.Notes,
		decimalToNumeric(closing.CountedTotal.Get(domain.CurrencyCRC)),
		decimalToNumeric(closing.CountedTotal.Get(domain.CurrencyUSD)),
		decimalToNumeric(closing.RecordedBalance.Get(domain.CurrencyCRC)),
		decimalToNumeric(closing.RecordedBalance.Get(domain.CurrencyUSD)),
		decimalToNumeric(closing.Diff.Get(domain.CurrencyCRC)),
		decimalToNumeric(closing.Diff.Get(domain.CurrencyUSD)),
		breakdown,
		resolution,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.NewValidationError("closing", closing.ID, "closing_date", "closing already exists for this account and date")
		}

		return err
	}

	return nil
}

// GetByID retrieves a closing by ID.
func (r *ClosingRepository) GetByID(ctx context.Context, id string) (*domain.DailyClosingRecord, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+closingColumns+`
		FROM daily_closings
		WHERE id = $1`, id)

	closing, err := scanClosing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("closing", id)
		}

		return nil, err
	}

	return closing, nil
}

// GetByDate retrieves the closing for one account on one calendar date.
func (r *ClosingRepository) GetByDate(ctx context.Context, companyID string, accountID domain.FundAccount, date time.Time) (*domain.DailyClosingRecord, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+closingColumns+`
		FROM daily_closings
		WHERE company_id = $1 AND account_id = $2 AND closing_date = $3`,
		companyID, string(accountID), timeToPgTimestamptz(domain.NormalizeClosingDate(date)))

	closing, err := scanClosing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("closing", companyID+"/"+string(accountID)+"/"+date.Format(domain.ClosingDateLayout))
		}

		return nil, err
	}

	return closing, nil
}

// Update replaces the whole closing record within a transaction.
func (r *ClosingRepository) Update(ctx context.Context, tx usecase.Transaction, closing *domain.DailyClosingRecord) error {
	pgxTx := tx.(*Tx).PgxTx()

	breakdown, resolution, err := closingJSON(closing)
	if err != nil {
		return err
	}

	tag, err := pgxTx.Exec(ctx, `
		UPDATE daily_closings
		SET company_id = $2, account_id = $3, closing_date = $4, created_at = $5, manager = $6, notes = $7,
			counted_crc = $8, counted_usd = $9, recorded_crc = $10, recorded_usd = $11,
			diff_crc = $12, diff_usd = $13, breakdown = $14, resolution = $15
		WHERE id = $1`,
		closing.ID,
		closing.CompanyID,
		string(closing.AccountID),
		timeToPgTimestamptz(closing.ClosingDate),
		timeToPgTimestamptz(closing.CreatedAt),
		closing.Manager,
		closing.Notes,
		decimalToNumeric(closing.CountedTotal.Get(domain.CurrencyCRC)),
		decimalToNumeric(closing.CountedTotal.Get(domain.CurrencyUSD)),
		decimalToNumeric(closing.RecordedBalance.Get(domain.CurrencyCRC)),
		decimalToNumeric(closing.RecordedBalance.Get(domain.CurrencyUSD)),
		decimalToNumeric(closing.Diff.Get(domain.CurrencyCRC)),
		decimalToNumeric(closing.Diff.Get(domain.CurrencyUSD)),
		breakdown,
		resolution,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("closing", closing.ID)
	}

	return nil
}

// ListByAccount retrieves closings for one account, newest date first.
func (r *ClosingRepository) ListByAccount(ctx context.Context, companyID string, accountID domain.FundAccount, limit, offset int) ([]*domain.DailyClosingRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+closingColumns+`
		FROM daily_closings
		WHERE company_id = $1 AND account_id = $2
		ORDER BY closing_date DESC, id DESC
		LIMIT $3 OFFSET $4`,
		companyID, string(accountID), int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClosings(rows)
}

// ListOrphaned retrieves closings with a non-zero diff, no resolution and no
// adjustment entry referencing them. A crash between the closing insert and
// the adjustment insert cannot produce these while both run in one
// transaction, but the query guards recovery anyway.
func (r *ClosingRepository) ListOrphaned(ctx context.Context) ([]*domain.DailyClosingRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+closingColumns+`
		FROM daily_closings c
		WHERE (c.diff_crc <> 0 OR c.diff_usd <> 0)
			AND c.resolution IS NULL
			AND NOT EXISTS (
				SELECT 1 FROM movements m WHERE m.original_entry_id = c.id
			)
		ORDER BY c.closing_date ASC, c.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClosings(rows)
}

func closingJSON(closing *domain.DailyClosingRecord) (breakdown, resolution []byte, err error) {
	if closing.Breakdown != nil {
		breakdown, err = json.Marshal(closing.Breakdown)
		if err != nil {
			return nil, nil, err
		}
	}

	if closing.AdjustmentResolution != nil {
		resolution, err = json.Marshal(closing.AdjustmentResolution)
		if err != nil {
			return nil, nil, err
		}
	}

	return breakdown, resolution, nil
}

func scanClosing(row pgx.Row) (*domain.DailyClosingRecord, error) {
	var (
		closing     domain.DailyClosingRecord
		accountID   string
		closingDate pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
		countedCRC  pgtype.Numeric
		countedUSD  pgtype.Numeric
		recordedCRC pgtype.Numeric
		recordedUSD pgtype.Numeric
		diffCRC     pgtype.Numeric
		diffUSD     pgtype.Numeric
		breakdown   []byte
		resolution  []byte
	)

	err := row.Scan(
		&closing.ID,
		&closing.CompanyID,
		&accountID,
		&closingDate,
		&createdAt,
		&closing.Manager,
		&closing.Notes,
		&countedCRC,
		&countedUSD,
		&recordedCRC,
		&recordedUSD,
		&diffCRC,
		&diffUSD,
		&breakdown,
		&resolution,
	)
	if err != nil {
		return nil, err
	}

	closing.AccountID = domain.FundAccount(accountID)
	closing.ClosingDate = closingDate.Time
	closing.CreatedAt = createdAt.Time
	closing.CountedTotal = domain.MoneyByCurrency{
		domain.CurrencyCRC: numericToDecimal(countedCRC),
		domain.CurrencyUSD: numericToDecimal(countedUSD),
	}
	closing.RecordedBalance = domain.MoneyByCurrency{
		domain.CurrencyCRC: numericToDecimal(recordedCRC),
		domain.CurrencyUSD: numericToDecimal(recordedUSD),
	}
	closing.Diff = domain.MoneyByCurrency{
		domain.CurrencyCRC: numericToDecimal(diffCRC),
		domain.CurrencyUSD: numericToDecimal(diffUSD),
	}

	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &closing.Breakdown); err != nil {
			return nil, err
		}
	}

	if len(resolution) > 0 {
		closing.AdjustmentResolution = &domain.AdjustmentResolution{}
		if err := json.Unmarshal(resolution, closing.AdjustmentResolution); err != nil {
			return nil, err
		}
	}

	return &closing, nil
}

func scanClosings(rows pgx.Rows) ([]*domain.DailyClosingRecord, error) {
	closings := make([]*domain.DailyClosingRecord, 0)
	for rows.Next() {
		closing, err := scanClosing(rows)
		if err != nil {
			return nil, err
		}

		closings = append(closings, closing)
	}

	return closings, rows.Err()
}
