package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odra/finbook/internal/domain"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// GetOwned retrieves a category scoped to its owner.
func (r *CategoryRepository) GetOwned(ctx context.Context, id, ownerID string) (*domain.Category, error) {
	var (
		category       domain.Category
		managementType string
	)

	err := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, name, management_type
		FROM categories
		WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&category.ID, &category.OwnerID, &category.Name, &managementType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}

		return nil, err
	}

	category.ManagementType = domain.ManagementType(managementType)

	return &category, nil
}
