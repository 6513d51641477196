package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal accumulates money set aside by close-of-day SAVE actions.
type SavingsGoal struct {
	ID            string
	OwnerID       string
	Name          string
	TargetAmount  *decimal.Decimal
	CurrentAmount decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AddSavings increases the accumulated amount.
func (g *SavingsGoal) AddSavings(amount decimal.Decimal) {
	g.CurrentAmount = g.CurrentAmount.Add(amount)
}
