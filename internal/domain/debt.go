package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt is an external obligation amortized through ledger expenses.
type Debt struct {
	ID          string
	OwnerID     string
	Name        string
	TotalAmount decimal.Decimal
	Outstanding decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RegisterPayment reduces the outstanding balance. Paying more than is owed
// is rejected rather than flipping the debt into a credit.
func (d *Debt) RegisterPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(d.Outstanding) {
		return ErrOverpayment
	}
	d.Outstanding = d.Outstanding.Sub(amount)
	return nil
}
