package domain

import "github.com/shopspring/decimal"

// Budget is a monthly spending limit for one category. The core only reads
// budgets; they are created and edited by the presentation layer.
type Budget struct {
	ID         string
	OwnerID    string
	CategoryID string
	Month      int // 1-12
	Year       int
	Limit      decimal.Decimal
}
