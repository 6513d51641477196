package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/odra/finbook/internal/domain"
)

// DebtUseCase amortizes external debts through ledger expenses.
type DebtUseCase struct {
	txManager TransactionManager
	debts     DebtRepository
	ledger    *LedgerUseCase
	idGen     IDGenerator
	clock     Clock
}

// NewDebtUseCase creates a new DebtUseCase.
func NewDebtUseCase(
	txManager TransactionManager,
	debts DebtRepository,
	ledger *LedgerUseCase,
	idGen IDGenerator,
	clock Clock,
) *DebtUseCase {
	return &DebtUseCase{
		txManager: txManager,
		debts:     debts,
		ledger:    ledger,
		idGen:     idGen,
		clock:     clock,
	}
}

// CreateDebtInput represents input for registering a debt.
type CreateDebtInput struct {
	OwnerID     string
	Name        string
	TotalAmount decimal.Decimal
}

// CreateDebt registers a debt with its full amount outstanding.
func (uc *DebtUseCase) CreateDebt(ctx context.Context, input CreateDebtInput) (*domain.Debt, error) {
	if input.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	now := uc.clock.Now()
	debt := &domain.Debt{
		ID:          uc.idGen.Generate(),
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		TotalAmount: input.TotalAmount,
		Outstanding: input.TotalAmount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.debts.Create(ctx, debt); err != nil {
		return nil, err
	}

	return debt, nil
}

// ListDebts lists an owner's debts.
func (uc *DebtUseCase) ListDebts(ctx context.Context, ownerID string) ([]*domain.Debt, error) {
	return uc.debts.ListByOwner(ctx, ownerID)
}

// PaymentInput represents a debt payment.
type PaymentInput struct {
	Amount          decimal.Decimal
	SourceAccountID string
	CategoryID      string
}

// RegisterPayment pays down a debt: the payment becomes a ledger expense
// from the source account and the outstanding balance shrinks, atomically.
// Paying more than is outstanding fails before any balance write.
func (uc *DebtUseCase) RegisterPayment(ctx context.Context, debtID, ownerID string, input PaymentInput) (*domain.Debt, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	debt, err := uc.debts.GetOwnedForUpdate(ctx, tx, debtID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := debt.RegisterPayment(input.Amount); err != nil {
		return nil, err
	}

	movement := domain.MovementFields{
		OwnerID:         ownerID,
		Kind:            domain.KindExpense,
		Amount:          input.Amount,
		ExchangeRate:    decimal.NewFromInt(1),
		Description:     "Debt payment: " + debt.Name,
		SourceAccountID: input.SourceAccountID,
		CategoryID:      input.CategoryID,
	}

	if _, err := uc.ledger.createInTx(ctx, tx, movement, uc.clock.Now()); err != nil {
		return nil, err
	}

	debt.UpdatedAt = uc.clock.Now()
	if err := uc.debts.UpdateTx(ctx, tx, debt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return debt, nil
}
