package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/odra/finbook/internal/domain"
	"github.com/odra/finbook/internal/usecase"
)

// CreateAccountRequest represents the request body for creating an account.
type CreateAccountRequest struct {
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Currency    string           `json:"currency"`
	Balance     decimal.Decimal  `json:"balance"`
	BankName    string           `json:"bank_name"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
	ClosingDay  *int             `json:"closing_day,omitempty"`
	PaymentDay  *int             `json:"payment_day,omitempty"`

	PreviousCycleBalance decimal.Decimal `json:"previous_cycle_balance"`
	CurrentCycleBalance  decimal.Decimal `json:"current_cycle_balance"`
}

// ToUseCaseInput converts the request to use case input.
func (r CreateAccountRequest) ToUseCaseInput(ownerID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		OwnerID:              ownerID,
		Name:                 r.Name,
		Type:                 domain.AccountType(r.Type),
		Currency:             r.Currency,
		Balance:              r.Balance,
		BankName:             r.BankName,
		CreditLimit:          r.CreditLimit,
		ClosingDay:           r.ClosingDay,
		PaymentDay:           r.PaymentDay,
		PreviousCycleBalance: r.PreviousCycleBalance,
		CurrentCycleBalance:  r.CurrentCycleBalance,
	}
}

// UpdateAccountRequest represents the request body for updating an account.
type UpdateAccountRequest struct {
	Name        string           `json:"name"`
	BankName    string           `json:"bank_name"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
	ClosingDay  *int             `json:"closing_day,omitempty"`
	PaymentDay  *int             `json:"payment_day,omitempty"`
}

// ToUseCaseInput converts the request to use case input.
func (r UpdateAccountRequest) ToUseCaseInput() usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		Name:        r.Name,
		BankName:    r.BankName,
		CreditLimit: r.CreditLimit,
		ClosingDay:  r.ClosingDay,
		PaymentDay:  r.PaymentDay,
	}
}

// CreateTransactionRequest represents the request body for creating or
// updating a transaction.
type CreateTransactionRequest struct {
	Kind                 string          `json:"kind"`
	Amount               decimal.Decimal `json:"amount"`
	ExchangeRate         decimal.Decimal `json:"exchange_rate"`
	Description          string          `json:"description"`
	SourceAccountID      string          `json:"source_account_id"`
	CategoryID           string          `json:"category_id,omitempty"`
	DestinationAccountID string          `json:"destination_account_id,omitempty"`
	Timestamp            *time.Time      `json:"timestamp,omitempty"`
}

// ToUseCaseInput converts the request to use case input.
func (r CreateTransactionRequest) ToUseCaseInput(ownerID string) usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		OwnerID:              ownerID,
		Kind:                 domain.Kind(r.Kind),
		Amount:               r.Amount,
		ExchangeRate:         r.ExchangeRate,
		Description:          r.Description,
		SourceAccountID:      r.SourceAccountID,
		CategoryID:           r.CategoryID,
		DestinationAccountID: r.DestinationAccountID,
		Timestamp:            r.Timestamp,
	}
}

// CreateTemplateRequest represents the request body for creating a recurring
// template.
type CreateTemplateRequest struct {
	Kind                 string          `json:"kind"`
	Amount               decimal.Decimal `json:"amount"`
	ExchangeRate         decimal.Decimal `json:"exchange_rate"`
	Description          string          `json:"description"`
	SourceAccountID      string          `json:"source_account_id"`
	CategoryID           string          `json:"category_id,omitempty"`
	DestinationAccountID string          `json:"destination_account_id,omitempty"`
	Frequency            string          `json:"frequency"`
	StartDate            time.Time       `json:"start_date"`
	EndDate              *time.Time      `json:"end_date,omitempty"`
}

// ToUseCaseInput converts the request to use case input.
func (r CreateTemplateRequest) ToUseCaseInput(ownerID string) usecase.CreateTemplateInput {
	return usecase.CreateTemplateInput{
		OwnerID:              ownerID,
		Kind:                 domain.Kind(r.Kind),
		Amount:               r.Amount,
		ExchangeRate:         r.ExchangeRate,
		Description:          r.Description,
		SourceAccountID:      r.SourceAccountID,
		CategoryID:           r.CategoryID,
		DestinationAccountID: r.DestinationAccountID,
		Frequency:            domain.Frequency(r.Frequency),
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
	}
}

// UpdateTemplateRequest represents the request body for updating a recurring
// template.
type UpdateTemplateRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	Active      *bool           `json:"active,omitempty"`
}

// ToUseCaseInput converts the request to use case input.
func (r UpdateTemplateRequest) ToUseCaseInput() usecase.UpdateTemplateInput {
	return usecase.UpdateTemplateInput{
		Amount:      r.Amount,
		Description: r.Description,
		EndDate:     r.EndDate,
		Active:      r.Active,
	}
}

// CloseDayRequest represents the end-of-day settlement request body.
type CloseDayRequest struct {
	Action          string          `json:"action"`
	Amount          decimal.Decimal `json:"amount"`
	GoalID          string          `json:"goal_id,omitempty"`
	SourceAccountID string          `json:"source_account_id,omitempty"`
	CategoryID      string          `json:"category_id,omitempty"`
}

// ToUseCaseInput converts the request to use case input.
func (r CloseDayRequest) ToUseCaseInput() usecase.CloseDayInput {
	return usecase.CloseDayInput{
		Action:          usecase.CloseAction(r.Action),
		Amount:          r.Amount,
		GoalID:          r.GoalID,
		SourceAccountID: r.SourceAccountID,
		CategoryID:      r.CategoryID,
	}
}

// CreateDebtRequest represents the request body for registering a debt.
type CreateDebtRequest struct {
	Name        string          `json:"name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ToUseCaseInput converts the request to use case input.
func (r CreateDebtRequest) ToUseCaseInput(ownerID string) usecase.CreateDebtInput {
	return usecase.CreateDebtInput{
		OwnerID:     ownerID,
		Name:        r.Name,
		TotalAmount: r.TotalAmount,
	}
}

// DebtPaymentRequest represents the request body for a debt payment.
type DebtPaymentRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	SourceAccountID string          `json:"source_account_id"`
	CategoryID      string          `json:"category_id"`
}

// ToUseCaseInput converts the request to use case input.
func (r DebtPaymentRequest) ToUseCaseInput() usecase.PaymentInput {
	return usecase.PaymentInput{
		Amount:          r.Amount,
		SourceAccountID: r.SourceAccountID,
		CategoryID:      r.CategoryID,
	}
}

// CreateGoalRequest represents the request body for creating a savings goal.
type CreateGoalRequest struct {
	Name         string           `json:"name"`
	TargetAmount *decimal.Decimal `json:"target_amount,omitempty"`
}

// ToUseCaseInput converts the request to use case input.
func (r CreateGoalRequest) ToUseCaseInput(ownerID string) usecase.CreateGoalInput {
	return usecase.CreateGoalInput{
		OwnerID:      ownerID,
		Name:         r.Name,
		TargetAmount: r.TargetAmount,
	}
}
