package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fondocore/fondo/internal/domain"
	"github.com/fondocore/fondo/internal/usecase"
)

// MovementTypeRepository implements usecase.MovementTypeRepository.
type MovementTypeRepository struct {
	pool *pgxpool.Pool
}

// NewMovementTypeRepository creates a new MovementTypeRepository.
func NewMovementTypeRepository(pool *pgxpool.Pool) *MovementTypeRepository {
	return &MovementTypeRepository{pool: pool}
}

// Create inserts a new movement type.
func (r *MovementTypeRepository) Create(ctx context.Context, config *domain.MovementTypeConfig) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO movement_types (id, owner_id, category, name, sort_order)
		VALUES ($1, $2, $3, $4, $5)`,
		config.ID,
		config.OwnerID,
		string(config.Category),
		config.Name,
		int32(config.Order),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.NewValidationError("movement_type", config.ID, "id", "movement type already exists")
		}

		return err
	}

	return nil
}

// GetByID retrieves a movement type by ID.
func (r *MovementTypeRepository) GetByID(ctx context.Context, id string) (*domain.MovementTypeConfig, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, category, name, sort_order
		FROM movement_types
		WHERE id = $1`, id)

	config, err := scanMovementType(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("movement_type", id)
		}

		return nil, err
	}

	return config, nil
}

// ListByOwner retrieves the owner's catalog ordered by (category, order).
func (r *MovementTypeRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.MovementTypeConfig, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, category, name, sort_order
		FROM movement_types
		WHERE owner_id = $1
		ORDER BY category ASC, sort_order ASC, id ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	configs := make([]*domain.MovementTypeConfig, 0)
	for rows.Next() {
		config, err := scanMovementType(rows)
		if err != nil {
			return nil, err
		}

		configs = append(configs, config)
	}

	return configs, rows.Err()
}

// UpdateOrder sets the order position of one type within a transaction.
func (r *MovementTypeRepository) UpdateOrder(ctx context.Context, tx usecase.Transaction, id string, order int) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE movement_types SET sort_order = $2 WHERE id = $1`,
		id, int32(order))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("movement_type", id)
	}

	return nil
}

// Delete removes a movement type. Entries referencing it keep their type ID
// and fall back to heuristic classification.
func (r *MovementTypeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM movement_types WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("movement_type", id)
	}

	return nil
}

func scanMovementType(row pgx.Row) (*domain.MovementTypeConfig, error) {
	var (
		config   domain.MovementTypeConfig
		category string
		order    int32
	)

	err := row.Scan(&config.ID, &config.OwnerID, &category, &config.Name, &order)
	if err != nil {
		return nil, err
	}

	config.Category = domain.Category(category)
	config.Order = int(order)

	return &config, nil
}
