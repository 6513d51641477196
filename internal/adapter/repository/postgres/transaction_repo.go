package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/odra/finbook/internal/domain"
	"github.com/odra/finbook/internal/usecase"
)

const transactionColumns = `id, owner_id, kind, amount, exchange_rate, description,
	source_account_id, category_id, destination_account_id, occurred_at, created_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create creates a transaction inside the given unit of work.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	_, err := tx.(*Tx).PgxTx().Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		txn.ID,
		txn.OwnerID,
		string(txn.Kind),
		decimalToNumeric(txn.Amount),
		decimalToNumeric(txn.ExchangeRate),
		txn.Description,
		txn.SourceAccountID,
		txn.CategoryID,
		txn.DestinationAccountID,
		timeToPgTimestamptz(txn.Timestamp),
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

// GetOwned retrieves a transaction scoped to its owner.
func (r *TransactionRepository) GetOwned(ctx context.Context, id, ownerID string) (*domain.Transaction, error) {
	return scanTransaction(r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	))
}

// Update rewrites a transaction inside the unit of work.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	_, err := tx.(*Tx).PgxTx().Exec(ctx, `
		UPDATE transactions
		SET kind = $2, amount = $3, exchange_rate = $4, description = $5,
			source_account_id = $6, category_id = $7, destination_account_id = $8,
			occurred_at = $9
		WHERE id = $1`,
		txn.ID,
		string(txn.Kind),
		decimalToNumeric(txn.Amount),
		decimalToNumeric(txn.ExchangeRate),
		txn.Description,
		txn.SourceAccountID,
		txn.CategoryID,
		txn.DestinationAccountID,
		timeToPgTimestamptz(txn.Timestamp),
	)

	return err
}

// Delete removes a transaction inside the unit of work.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	_, err := tx.(*Tx).PgxTx().Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)

	return err
}

// ListByOwner lists an owner's transactions, newest first.
func (r *TransactionRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE owner_id = $1
		ORDER BY occurred_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		ownerID, int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

// SumExpensesByCategories sums the owner's expenses in the given categories
// within [from, to]. An empty result set sums to zero.
func (r *TransactionRepository) SumExpensesByCategories(ctx context.Context, ownerID string, categoryIDs []string, from, to time.Time) (decimal.Decimal, error) {
	return r.sumExpenses(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE owner_id = $1
			AND kind = 'EXPENSE'
			AND category_id = ANY($2)
			AND occurred_at BETWEEN $3 AND $4`,
		ownerID, categoryIDs, timeToPgTimestamptz(from), timeToPgTimestamptz(to),
	)
}

// SumExpensesByAccount sums the expenses charged to an account up to and
// including the given instant.
func (r *TransactionRepository) SumExpensesByAccount(ctx context.Context, accountID string, to time.Time) (decimal.Decimal, error) {
	return r.sumExpenses(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE source_account_id = $1
			AND kind = 'EXPENSE'
			AND occurred_at <= $2`,
		accountID, timeToPgTimestamptz(to),
	)
}

func (r *TransactionRepository) sumExpenses(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var sum pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn        domain.Transaction
		kind       string
		amount     pgtype.Numeric
		rate       pgtype.Numeric
		occurredAt pgtype.Timestamptz
		createdAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&txn.ID,
		&txn.OwnerID,
		&kind,
		&amount,
		&rate,
		&txn.Description,
		&txn.SourceAccountID,
		&txn.CategoryID,
		&txn.DestinationAccountID,
		&occurredAt,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	txn.Kind = domain.Kind(kind)
	txn.Amount = numericToDecimal(amount)
	txn.ExchangeRate = numericToDecimal(rate)
	txn.Timestamp = occurredAt.Time
	txn.CreatedAt = createdAt.Time

	return &txn, nil
}
