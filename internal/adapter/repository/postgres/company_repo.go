package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fondocore/fondo/internal/domain"
)

// CompanyRepository implements usecase.CompanyDirectory against the local
// companies table.
type CompanyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository creates a new CompanyRepository.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

// CompanyExists reports whether a company is registered.
func (r *CompanyRepository) CompanyExists(ctx context.Context, companyID string) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1)`, companyID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// CompanyName returns the display name of a company.
func (r *CompanyRepository) CompanyName(ctx context.Context, companyID string) (string, error) {
	var name string

	err := r.pool.QueryRow(ctx, `
		SELECT name FROM companies WHERE id = $1`, companyID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.NewNotFoundError("company", companyID)
		}

		return "", err
	}

	return name, nil
}
