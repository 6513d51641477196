package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odra/finbook/internal/domain"
)

// BudgetRepository implements usecase.BudgetRepository.
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// ListDayToDay returns the owner's budgets for the given month whose category
// is managed day to day.
func (r *BudgetRepository) ListDayToDay(ctx context.Context, ownerID string, month, year int) ([]*domain.Budget, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.owner_id, b.category_id, b.month, b.year, b.monthly_limit
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.owner_id = $1
			AND b.month = $2
			AND b.year = $3
			AND c.management_type = 'DAY_TO_DAY'
		ORDER BY b.category_id`,
		ownerID, int32(month), int32(year),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		var (
			budget domain.Budget
			limit  pgtype.Numeric
		)

		if err := rows.Scan(&budget.ID, &budget.OwnerID, &budget.CategoryID, &budget.Month, &budget.Year, &limit); err != nil {
			return nil, err
		}

		budget.Limit = numericToDecimal(limit)
		budgets = append(budgets, &budget)
	}

	return budgets, rows.Err()
}
