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

const accountColumns = `id, owner_id, name, type, currency, balance, bank_name,
	credit_limit, closing_day, payment_day, active, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create creates a new account inside the given unit of work.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	_, err := tx.(*Tx).PgxTx().Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		account.ID,
		account.OwnerID,
		account.Name,
		string(account.Type),
		account.Currency,
		decimalToNumeric(account.Balance),
		account.BankName,
		decimalPtrToNumeric(account.CreditLimit),
		intPtrToPgInt4(account.ClosingDay),
		intPtrToPgInt4(account.PaymentDay),
		account.Active,
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)

	return err
}

// GetOwned retrieves an account scoped to its owner.
func (r *AccountRepository) GetOwned(ctx context.Context, id, ownerID string) (*domain.Account, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	))
}

// GetOwnedByIDsForUpdate retrieves the owner's accounts with FOR UPDATE
// locks. Rows come back ordered by ID so concurrent callers lock in the same
// order.
func (r *AccountRepository) GetOwnedByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string, ownerID string) ([]*domain.Account, error) {
	rows, err := tx.(*Tx).PgxTx().Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = ANY($1) AND owner_id = $2
		ORDER BY id
		FOR UPDATE`,
		ids, ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// UpdateBalance updates the balance of an account inside the unit of work.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	_, err := tx.(*Tx).PgxTx().Exec(ctx, `
		UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1`,
		id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt),
	)

	return err
}

// Update persists mutable account attributes.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET name = $2, bank_name = $3, credit_limit = $4, closing_day = $5,
			payment_day = $6, active = $7, updated_at = $8
		WHERE id = $1`,
		account.ID,
		account.Name,
		account.BankName,
		decimalPtrToNumeric(account.CreditLimit),
		intPtrToPgInt4(account.ClosingDay),
		intPtrToPgInt4(account.PaymentDay),
		account.Active,
		timeToPgTimestamptz(account.UpdatedAt),
	)

	return err
}

// ListByOwner lists an owner's accounts.
func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE owner_id = $1
		ORDER BY created_at, id`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func (r *AccountRepository) scanOne(row pgx.Row) (*domain.Account, error) {
	var (
		account     domain.Account
		typ         string
		balance     pgtype.Numeric
		creditLimit pgtype.Numeric
		closingDay  pgtype.Int4
		paymentDay  pgtype.Int4
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.OwnerID,
		&account.Name,
		&typ,
		&account.Currency,
		&balance,
		&account.BankName,
		&creditLimit,
		&closingDay,
		&paymentDay,
		&account.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.Type = domain.AccountType(typ)
	account.Balance = numericToDecimal(balance)
	account.CreditLimit = numericToDecimalPtr(creditLimit)
	account.ClosingDay = pgInt4ToIntPtr(closingDay)
	account.PaymentDay = pgInt4ToIntPtr(paymentDay)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}
