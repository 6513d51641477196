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

const debtColumns = `id, owner_id, name, total_amount, outstanding, created_at, updated_at`

// DebtRepository implements usecase.DebtRepository.
type DebtRepository struct {
	pool *pgxpool.Pool
}

// NewDebtRepository creates a new DebtRepository.
func NewDebtRepository(pool *pgxpool.Pool) *DebtRepository {
	return &DebtRepository{pool: pool}
}

// Create creates a new debt.
func (r *DebtRepository) Create(ctx context.Context, debt *domain.Debt) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO debts (`+debtColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		debt.ID,
		debt.OwnerID,
		debt.Name,
		decimalToNumeric(debt.TotalAmount),
		decimalToNumeric(debt.Outstanding),
		timeToPgTimestamptz(debt.CreatedAt),
		timeToPgTimestamptz(debt.UpdatedAt),
	)

	return err
}

// GetOwned retrieves a debt scoped to its owner.
func (r *DebtRepository) GetOwned(ctx context.Context, id, ownerID string) (*domain.Debt, error) {
	return scanDebt(r.pool.QueryRow(ctx, `
		SELECT `+debtColumns+`
		FROM debts
		WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	))
}

// GetOwnedForUpdate retrieves a debt with a FOR UPDATE lock so concurrent
// payments serialize on the outstanding balance.
func (r *DebtRepository) GetOwnedForUpdate(ctx context.Context, tx usecase.Transaction, id, ownerID string) (*domain.Debt, error) {
	return scanDebt(tx.(*Tx).PgxTx().QueryRow(ctx, `
		SELECT `+debtColumns+`
		FROM debts
		WHERE id = $1 AND owner_id = $2
		FOR UPDATE`,
		id, ownerID,
	))
}

// UpdateTx persists a debt inside the unit of work that carries the payment
// expense.
func (r *DebtRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, debt *domain.Debt) error {
	_, err := tx.(*Tx).PgxTx().Exec(ctx, `
		UPDATE debts
		SET outstanding = $2, updated_at = $3
		WHERE id = $1`,
		debt.ID,
		decimalToNumeric(debt.Outstanding),
		timeToPgTimestamptz(debt.UpdatedAt),
	)

	return err
}

// ListByOwner lists an owner's debts.
func (r *DebtRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Debt, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+debtColumns+`
		FROM debts
		WHERE owner_id = $1
		ORDER BY created_at, id`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var debts []*domain.Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, debt)
	}

	return debts, rows.Err()
}

func scanDebt(row pgx.Row) (*domain.Debt, error) {
	var (
		debt        domain.Debt
		total       pgtype.Numeric
		outstanding pgtype.Numeric
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(&debt.ID, &debt.OwnerID, &debt.Name, &total, &outstanding, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDebtNotFound
		}

		return nil, err
	}

	debt.TotalAmount = numericToDecimal(total)
	debt.Outstanding = numericToDecimal(outstanding)
	debt.CreatedAt = createdAt.Time
	debt.UpdatedAt = updatedAt.Time

	return &debt, nil
}
