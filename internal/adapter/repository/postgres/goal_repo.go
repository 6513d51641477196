package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odra/finbook/internal/domain"
	"github.com/odra/finbook/internal/usecase"
)

const goalColumns = `id, owner_id, name, target_amount, current_amount, created_at, updated_at`

// GoalRepository implements usecase.GoalRepository.
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

// Create creates a new savings goal.
func (r *GoalRepository) Create(ctx context.Context, goal *domain.SavingsGoal) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO savings_goals (`+goalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		goal.ID,
		goal.OwnerID,
		goal.Name,
		decimalPtrToNumeric(goal.TargetAmount),
		decimalToNumeric(goal.CurrentAmount),
		timeToPgTimestamptz(goal.CreatedAt),
		timeToPgTimestamptz(goal.UpdatedAt),
	)

	return err
}

// GetOwned retrieves a goal scoped to its owner.
func (r *GoalRepository) GetOwned(ctx context.Context, id, ownerID string) (*domain.SavingsGoal, error) {
	return scanGoal(r.pool.QueryRow(ctx, `
		SELECT `+goalColumns+`
		FROM savings_goals
		WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	))
}

// UpdateTx persists a goal inside the unit of work that carries the funding
// expense.
func (r *GoalRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, goal *domain.SavingsGoal) error {
	_, err := tx.(*Tx).PgxTx().Exec(ctx, `
		UPDATE savings_goals
		SET name = $2, target_amount = $3, current_amount = $4, updated_at = $5
		WHERE id = $1`,
		goal.ID,
		goal.Name,
		decimalPtrToNumeric(goal.TargetAmount),
		decimalToNumeric(goal.CurrentAmount),
		timeToPgTimestamptz(goal.UpdatedAt),
	)

	return err
}

// ListByOwner lists an owner's goals.
func (r *GoalRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.SavingsGoal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+goalColumns+`
		FROM savings_goals
		WHERE owner_id = $1
		ORDER BY created_at, id`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.SavingsGoal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}

func scanGoal(row pgx.Row) (*domain.SavingsGoal, error) {
	var (
		goal      domain.SavingsGoal
		target    pgtype.Numeric
		current   pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&goal.ID, &goal.OwnerID, &goal.Name, &target, &current, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}

		return nil, err
	}

	goal.TargetAmount = numericToDecimalPtr(target)
	goal.CurrentAmount = numericToDecimal(current)
	goal.CreatedAt = createdAt.Time
	goal.UpdatedAt = updatedAt.Time

	return &goal, nil
}
