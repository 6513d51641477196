package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odra/finbook/internal/domain"
)

// LedgerUseCase applies and reverses the balance effects of transactions.
// Every mutation runs as one unit of work: the balance writes and the
// transaction row commit together or not at all.
type LedgerUseCase struct {
	txManager    TransactionManager
	accounts     AccountRepository
	transactions TransactionRepository
	categories   CategoryRepository
	idGen        IDGenerator
	clock        Clock
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accounts AccountRepository,
	transactions TransactionRepository,
	categories CategoryRepository,
	idGen IDGenerator,
	clock Clock,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:    txManager,
		accounts:     accounts,
		transactions: transactions,
		categories:   categories,
		idGen:        idGen,
		clock:        clock,
	}
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	OwnerID              string
	Kind                 domain.Kind
	Amount               decimal.Decimal
	ExchangeRate         decimal.Decimal
	Description          string
	SourceAccountID      string
	CategoryID           string
	DestinationAccountID string
	Timestamp            *time.Time
}

func (in CreateTransactionInput) movement() domain.MovementFields {
	rate := in.ExchangeRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}

	return domain.MovementFields{
		OwnerID:              in.OwnerID,
		Kind:                 in.Kind,
		Amount:               in.Amount,
		ExchangeRate:         rate,
		Description:          in.Description,
		SourceAccountID:      in.SourceAccountID,
		CategoryID:           in.CategoryID,
		DestinationAccountID: in.DestinationAccountID,
	}
}

// TransactionResult is a persisted transaction together with the display
// data of the records it touched.
type TransactionResult struct {
	Transaction            *domain.Transaction
	SourceAccountName      string
	DestinationAccountName string
	CategoryName           string
}

// CreateTransaction validates the request, applies the balance effect to the
// involved accounts and persists everything atomically.
func (uc *LedgerUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*TransactionResult, error) {
	movement := input.movement()
	if err := movement.Validate(); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	result, err := uc.createInTx(ctx, tx, movement, uc.timestampOrNow(input.Timestamp))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

// createInTx runs the create logic inside an existing unit of work. The
// scheduler, the close-of-day settlement and debt payments reuse it so that
// their own writes commit together with the balance effect.
func (uc *LedgerUseCase) createInTx(ctx context.Context, tx Transaction, movement domain.MovementFields, timestamp time.Time) (*TransactionResult, error) {
	if err := movement.Validate(); err != nil {
		return nil, err
	}

	accounts, err := uc.lockAccounts(ctx, tx, movement.OwnerID, movementAccountIDs(movement))
	if err != nil {
		return nil, err
	}

	result := &TransactionResult{}

	touched, err := uc.applyMovement(ctx, movement, accounts, result)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if err := uc.persistBalances(ctx, tx, touched, now); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ID:             uc.idGen.Generate(),
		MovementFields: movement,
		Timestamp:      timestamp,
		CreatedAt:      now,
	}

	if err := uc.transactions.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	result.Transaction = txn

	return result, nil
}

// UpdateTransaction reverts the stored transaction's effect and re-runs the
// create logic with the new values, so balances reflect only the latest
// version and are never double-counted.
func (uc *LedgerUseCase) UpdateTransaction(ctx context.Context, id string, input CreateTransactionInput) (*TransactionResult, error) {
	movement := input.movement()
	if err := movement.Validate(); err != nil {
		return nil, err
	}

	stored, err := uc.transactions.GetOwned(ctx, id, input.OwnerID)
	if err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := append(movementAccountIDs(stored.MovementFields), movementAccountIDs(movement)...)

	accounts, err := uc.lockAccounts(ctx, tx, input.OwnerID, ids)
	if err != nil {
		return nil, err
	}

	reverted, err := uc.revertMovement(stored.MovementFields, accounts)
	if err != nil {
		return nil, err
	}

	result := &TransactionResult{}

	applied, err := uc.applyMovement(ctx, movement, accounts, result)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if err := uc.persistBalances(ctx, tx, append(reverted, applied...), now); err != nil {
		return nil, err
	}

	updated := &domain.Transaction{
		ID:             stored.ID,
		MovementFields: movement,
		Timestamp:      uc.timestampOrNow(input.Timestamp),
		CreatedAt:      stored.CreatedAt,
	}

	if err := uc.transactions.Update(ctx, tx, updated); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	result.Transaction = updated

	return result, nil
}

// DeleteTransaction reverts the stored transaction's effect and removes it.
func (uc *LedgerUseCase) DeleteTransaction(ctx context.Context, id, ownerID string) error {
	stored, err := uc.transactions.GetOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.lockAccounts(ctx, tx, ownerID, movementAccountIDs(stored.MovementFields))
	if err != nil {
		return err
	}

	reverted, err := uc.revertMovement(stored.MovementFields, accounts)
	if err != nil {
		return err
	}

	if err := uc.persistBalances(ctx, tx, reverted, uc.clock.Now()); err != nil {
		return err
	}

	if err := uc.transactions.Delete(ctx, tx, stored.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListTransactions lists an owner's transactions, newest first.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return uc.transactions.ListByOwner(ctx, ownerID, limit, offset)
}

// applyMovement mutates the locked accounts with the forward effect of the
// movement and returns the accounts it touched. Validation happens before
// the first balance write.
func (uc *LedgerUseCase) applyMovement(ctx context.Context, m domain.MovementFields, accounts map[string]*domain.Account, result *TransactionResult) ([]*domain.Account, error) {
	source := accounts[m.SourceAccountID]
	if source == nil {
		return nil, domain.ErrAccountNotFound
	}

	if result != nil {
		result.SourceAccountName = source.Name
	}

	switch m.Kind {
	case domain.KindExpense, domain.KindIncome:
		category, err := uc.categories.GetOwned(ctx, m.CategoryID, m.OwnerID)
		if err != nil {
			return nil, err
		}
		if result != nil {
			result.CategoryName = category.Name
		}

		if m.Kind == domain.KindExpense {
			source.Apply(m.Amount.Neg())
		} else {
			source.Apply(m.Amount)
		}

		return []*domain.Account{source}, nil

	case domain.KindTransfer:
		dest := accounts[m.DestinationAccountID]
		if dest == nil {
			return nil, domain.ErrAccountNotFound
		}
		if result != nil {
			result.DestinationAccountName = dest.Name
		}

		deposit, err := m.DepositAmount(source.Currency, dest.Currency)
		if err != nil {
			return nil, err
		}

		source.Apply(m.Amount.Neg())
		dest.Apply(deposit)

		return []*domain.Account{source, dest}, nil
	}

	return nil, domain.ErrInvalidKind
}

// revertMovement is the exact mirror of applyMovement: every forward Apply
// becomes a Revert of the same signed delta, so an apply/revert cycle leaves
// balances unchanged for every kind and both account types.
func (uc *LedgerUseCase) revertMovement(m domain.MovementFields, accounts map[string]*domain.Account) ([]*domain.Account, error) {
	source := accounts[m.SourceAccountID]
	if source == nil {
		return nil, domain.ErrAccountNotFound
	}

	switch m.Kind {
	case domain.KindExpense:
		source.Revert(m.Amount.Neg())
		return []*domain.Account{source}, nil

	case domain.KindIncome:
		source.Revert(m.Amount)
		return []*domain.Account{source}, nil

	case domain.KindTransfer:
		dest := accounts[m.DestinationAccountID]
		if dest == nil {
			return nil, domain.ErrAccountNotFound
		}

		deposit, err := m.DepositAmount(source.Currency, dest.Currency)
		if err != nil {
			return nil, err
		}

		source.Revert(m.Amount.Neg())
		dest.Revert(deposit)

		return []*domain.Account{source, dest}, nil
	}

	return nil, domain.ErrInvalidKind
}

// lockAccounts locks the given owner's accounts FOR UPDATE in sorted ID
// order (deadlock prevention) and returns them keyed by ID.
func (uc *LedgerUseCase) lockAccounts(ctx context.Context, tx Transaction, ownerID string, ids []string) (map[string]*domain.Account, error) {
	unique := uniqueSorted(ids)

	accounts, err := uc.accounts.GetOwnedByIDsForUpdate(ctx, tx, unique, ownerID)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(unique) {
		return nil, domain.ErrAccountNotFound
	}

	byID := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	return byID, nil
}

func (uc *LedgerUseCase) persistBalances(ctx context.Context, tx Transaction, touched []*domain.Account, now time.Time) error {
	seen := make(map[string]bool, len(touched))
	for _, a := range touched {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true

		if err := uc.accounts.UpdateBalance(ctx, tx, a.ID, a.Balance, now); err != nil {
			return err
		}
	}

	return nil
}

func (uc *LedgerUseCase) timestampOrNow(ts *time.Time) time.Time {
	if ts != nil {
		return *ts
	}
	return uc.clock.Now()
}

func movementAccountIDs(m domain.MovementFields) []string {
	ids := []string{m.SourceAccountID}
	if m.Kind == domain.KindTransfer && m.DestinationAccountID != "" {
		ids = append(ids, m.DestinationAccountID)
	}
	return ids
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]bool, len(ids))

	var out []string
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	sort.Strings(out)

	return out
}
