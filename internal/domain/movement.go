package domain

import (
	"github.com/shopspring/decimal"
)

// Kind classifies a financial movement.
type Kind string

const (
	KindExpense  Kind = "EXPENSE"
	KindIncome   Kind = "INCOME"
	KindTransfer Kind = "TRANSFER"
)

// Valid reports whether k is a known movement kind.
func (k Kind) Valid() bool {
	switch k {
	case KindExpense, KindIncome, KindTransfer:
		return true
	}
	return false
}

// MovementFields is the shape shared by transactions and recurring templates.
// It carries no behavior beyond validation; both entities embed it.
type MovementFields struct {
	OwnerID              string
	Kind                 Kind
	Amount               decimal.Decimal
	ExchangeRate         decimal.Decimal
	Description          string
	SourceAccountID      string
	CategoryID           string
	DestinationAccountID string
}

// Validate checks the kind-dependent field requirements. It does not resolve
// references; ownership checks happen against the stores.
func (m *MovementFields) Validate() error {
	if !m.Kind.Valid() {
		return ErrInvalidKind
	}
	if m.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	switch m.Kind {
	case KindExpense, KindIncome:
		if m.CategoryID == "" {
			return ErrCategoryRequired
		}
	case KindTransfer:
		if m.DestinationAccountID == "" {
			return ErrDestinationRequired
		}
		if m.DestinationAccountID == m.SourceAccountID {
			return ErrSameAccountTransfer
		}
	}

	return nil
}

// DepositAmount computes the amount credited to the destination of a transfer
// between the given currencies. Same-currency transfers conserve the amount;
// cross-currency transfers require a positive exchange rate.
func (m *MovementFields) DepositAmount(sourceCurrency, destCurrency string) (decimal.Decimal, error) {
	if sourceCurrency == destCurrency {
		return m.Amount, nil
	}
	if m.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrExchangeRateRequired
	}
	return m.Amount.Mul(m.ExchangeRate), nil
}
