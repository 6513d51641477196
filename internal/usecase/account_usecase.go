package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odra/finbook/internal/domain"
)

// AccountUseCase handles account lifecycle and billing-cycle reporting.
type AccountUseCase struct {
	txManager    TransactionManager
	accounts     AccountRepository
	transactions TransactionRepository
	idGen        IDGenerator
	clock        Clock
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accounts AccountRepository,
	transactions TransactionRepository,
	idGen IDGenerator,
	clock Clock,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:    txManager,
		accounts:     accounts,
		transactions: transactions,
		idGen:        idGen,
		clock:        clock,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	OwnerID     string
	Name        string
	Type        domain.AccountType
	Currency    string
	Balance     decimal.Decimal
	BankName    string
	CreditLimit *decimal.Decimal
	ClosingDay  *int
	PaymentDay  *int

	// Opening debt for credit cards, materialized as expense transactions so
	// the statement computation can see them. PreviousCycleBalance is
	// backdated into the already-closed cycle.
	PreviousCycleBalance decimal.Decimal
	CurrentCycleBalance  decimal.Decimal
}

// CreateAccount creates an account. Credit cards start at zero debt; their
// opening balances are loaded as backdated expense transactions in the same
// unit of work.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	now := uc.clock.Now()

	account := &domain.Account{
		ID:          uc.idGen.Generate(),
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Type:        input.Type,
		Currency:    input.Currency,
		Balance:     input.Balance,
		BankName:    input.BankName,
		CreditLimit: input.CreditLimit,
		ClosingDay:  input.ClosingDay,
		PaymentDay:  input.PaymentDay,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if account.IsCredit() {
		account.Balance = decimal.Zero
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.accounts.Create(ctx, tx, account); err != nil {
		return nil, err
	}

	if account.IsCredit() {
		if err := uc.loadOpeningDebt(ctx, tx, account, input); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}

// loadOpeningDebt materializes the opening balances of a new credit card as
// expense transactions. The previous-cycle amount is dated one day before
// the last cutoff so it lands inside the closed statement.
func (uc *AccountUseCase) loadOpeningDebt(ctx context.Context, tx Transaction, account *domain.Account, input CreateAccountInput) error {
	now := uc.clock.Now()

	if input.PreviousCycleBalance.IsPositive() {
		cutoff := domain.StatementCutoff(*account.ClosingDay, now)
		at := cutoff.AddDate(0, 0, -1)

		if err := uc.openingExpense(ctx, tx, account, input.PreviousCycleBalance, at, "Opening balance - previous cycle"); err != nil {
			return err
		}
	}

	if input.CurrentCycleBalance.IsPositive() {
		if err := uc.openingExpense(ctx, tx, account, input.CurrentCycleBalance, now, "Opening balance - current cycle"); err != nil {
			return err
		}
	}

	return nil
}

// openingExpense writes a system expense directly: opening entries carry no
// category and bypass the ledger's category requirement on purpose.
func (uc *AccountUseCase) openingExpense(ctx context.Context, tx Transaction, account *domain.Account, amount decimal.Decimal, at time.Time, description string) error {
	txn := &domain.Transaction{
		ID: uc.idGen.Generate(),
		MovementFields: domain.MovementFields{
			OwnerID:         account.OwnerID,
			Kind:            domain.KindExpense,
			Amount:          amount,
			ExchangeRate:    decimal.NewFromInt(1),
			Description:     description,
			SourceAccountID: account.ID,
		},
		Timestamp: at,
		CreatedAt: uc.clock.Now(),
	}

	if err := uc.transactions.Create(ctx, tx, txn); err != nil {
		return err
	}

	account.Apply(amount.Neg())

	return uc.accounts.UpdateBalance(ctx, tx, account.ID, account.Balance, uc.clock.Now())
}

// AccountWithCycle is an account with its billing-cycle figures attached.
// Both figures are zero for asset accounts.
type AccountWithCycle struct {
	Account             *domain.Account
	StatementBalance    decimal.Decimal
	CurrentCycleBalance decimal.Decimal
}

// GetAccount retrieves an owned account.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id, ownerID string) (*domain.Account, error) {
	return uc.accounts.GetOwned(ctx, id, ownerID)
}

// ListAccounts lists an owner's accounts with statement and current-cycle
// balances for every credit card.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, ownerID string) ([]*AccountWithCycle, error) {
	accounts, err := uc.accounts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]*AccountWithCycle, 0, len(accounts))
	for _, account := range accounts {
		entry := &AccountWithCycle{
			Account:             account,
			StatementBalance:    decimal.Zero,
			CurrentCycleBalance: decimal.Zero,
		}

		if account.IsCredit() && account.ClosingDay != nil {
			cutoff := domain.StatementCutoff(*account.ClosingDay, uc.clock.Now())

			statement, err := uc.transactions.SumExpensesByAccount(ctx, account.ID, cutoff)
			if err != nil {
				return nil, err
			}

			current := account.Balance.Sub(statement)
			if current.IsNegative() {
				current = decimal.Zero
			}

			entry.StatementBalance = statement
			entry.CurrentCycleBalance = current
		}

		out = append(out, entry)
	}

	return out, nil
}

// UpdateAccountInput represents mutable account attributes.
type UpdateAccountInput struct {
	Name        string
	BankName    string
	CreditLimit *decimal.Decimal
	ClosingDay  *int
	PaymentDay  *int
}

// UpdateAccount updates account attributes. Balance and type are immutable
// here; balances only move through the ledger.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, id, ownerID string, input UpdateAccountInput) (*domain.Account, error) {
	account, err := uc.accounts.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	account.Name = input.Name
	account.BankName = input.BankName
	if account.IsCredit() {
		if input.CreditLimit != nil {
			account.CreditLimit = input.CreditLimit
		}
		if input.ClosingDay != nil {
			account.ClosingDay = input.ClosingDay
		}
		if input.PaymentDay != nil {
			account.PaymentDay = input.PaymentDay
		}
	}
	account.UpdatedAt = uc.clock.Now()

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// DeactivateAccount marks an account inactive. History is preserved.
func (uc *AccountUseCase) DeactivateAccount(ctx context.Context, id, ownerID string) error {
	account, err := uc.accounts.GetOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}

	account.Active = false
	account.UpdatedAt = uc.clock.Now()

	return uc.accounts.Update(ctx, account)
}
