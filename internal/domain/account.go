package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType determines how a balance is interpreted and mutated.
type AccountType string

const (
	AccountAssetDebit AccountType = "ASSET_DEBIT"
	AccountAssetCash  AccountType = "ASSET_CASH"
	AccountCredit     AccountType = "CREDIT"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountAssetDebit, AccountAssetCash, AccountCredit:
		return true
	}
	return false
}

// Account represents a financial account owned by a single user.
//
// Balance is a running total whose meaning depends on the account type:
// available funds for asset accounts, outstanding debt for credit accounts.
type Account struct {
	ID         string
	OwnerID    string
	Name       string
	Type       AccountType
	Currency   string
	Balance    decimal.Decimal
	BankName   string
	CreditLimit *decimal.Decimal
	ClosingDay  *int
	PaymentDay  *int
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// balanceProfile is the sign convention for one account type: it translates a
// signed movement delta (positive = toward the owner's benefit) into the
// delta actually added to the stored balance.
type balanceProfile interface {
	effectOf(signedDelta decimal.Decimal) decimal.Decimal
}

// assetProfile: balance is available money, so the effect is the delta itself.
type assetProfile struct{}

func (assetProfile) effectOf(signedDelta decimal.Decimal) decimal.Decimal {
	return signedDelta
}

// creditProfile: balance is debt, so money toward the owner's benefit
// (a payment) shrinks it and an expense grows it.
type creditProfile struct{}

func (creditProfile) effectOf(signedDelta decimal.Decimal) decimal.Decimal {
	return signedDelta.Neg()
}

func (a *Account) profile() balanceProfile {
	if a.Type == AccountCredit {
		return creditProfile{}
	}
	return assetProfile{}
}

// Apply mutates the balance by the type-specific effect of signedDelta.
func (a *Account) Apply(signedDelta decimal.Decimal) {
	a.Balance = a.Balance.Add(a.profile().effectOf(signedDelta))
}

// Revert undoes a previous Apply of the same signedDelta. Apply followed by
// Revert always leaves the balance bit-for-bit unchanged.
func (a *Account) Revert(signedDelta decimal.Decimal) {
	a.Apply(signedDelta.Neg())
}

// IsCredit reports whether the account is a credit card.
func (a *Account) IsCredit() bool {
	return a.Type == AccountCredit
}

// Validate checks structural invariants of the account.
func (a *Account) Validate() error {
	if !a.Type.Valid() {
		return ErrInvalidAccountType
	}
	if a.Type == AccountCredit {
		if a.CreditLimit == nil || a.ClosingDay == nil || a.PaymentDay == nil {
			return ErrCreditFieldsRequired
		}
		if *a.ClosingDay < 1 || *a.ClosingDay > 31 || *a.PaymentDay < 1 || *a.PaymentDay > 31 {
			return ErrCreditFieldsRequired
		}
	}
	return nil
}
