package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/odra/finbook/internal/domain"
	"github.com/odra/finbook/internal/usecase"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account in responses. The statement and
// current-cycle figures are only meaningful for credit cards and stay zero
// for asset accounts.
type AccountResponse struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Type                string           `json:"type"`
	Currency            string           `json:"currency"`
	Balance             decimal.Decimal  `json:"balance"`
	BankName            string           `json:"bank_name,omitempty"`
	CreditLimit         *decimal.Decimal `json:"credit_limit,omitempty"`
	ClosingDay          *int             `json:"closing_day,omitempty"`
	PaymentDay          *int             `json:"payment_day,omitempty"`
	StatementBalance    decimal.Decimal  `json:"statement_balance"`
	CurrentCycleBalance decimal.Decimal  `json:"current_cycle_balance"`
	Active              bool             `json:"active"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:                  a.ID,
		Name:                a.Name,
		Type:                string(a.Type),
		Currency:            a.Currency,
		Balance:             a.Balance,
		BankName:            a.BankName,
		CreditLimit:         a.CreditLimit,
		ClosingDay:          a.ClosingDay,
		PaymentDay:          a.PaymentDay,
		StatementBalance:    decimal.Zero,
		CurrentCycleBalance: decimal.Zero,
		Active:              a.Active,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

// AccountFromCycle converts an account with billing-cycle figures to a
// response.
func AccountFromCycle(entry *usecase.AccountWithCycle) AccountResponse {
	resp := AccountFromDomain(entry.Account)
	resp.StatementBalance = entry.StatementBalance
	resp.CurrentCycleBalance = entry.CurrentCycleBalance
	return resp
}

// AccountsFromCycle converts a slice of accounts with billing-cycle figures.
func AccountsFromCycle(entries []*usecase.AccountWithCycle) []AccountResponse {
	out := make([]AccountResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AccountFromCycle(e))
	}
	return out
}

// TransactionResponse represents a transaction in responses.
type TransactionResponse struct {
	ID                     string          `json:"id"`
	Kind                   string          `json:"kind"`
	Amount                 decimal.Decimal `json:"amount"`
	ExchangeRate           decimal.Decimal `json:"exchange_rate"`
	Description            string          `json:"description"`
	SourceAccountID        string          `json:"source_account_id"`
	SourceAccountName      string          `json:"source_account_name,omitempty"`
	CategoryID             string          `json:"category_id,omitempty"`
	CategoryName           string          `json:"category_name,omitempty"`
	DestinationAccountID   string          `json:"destination_account_id,omitempty"`
	DestinationAccountName string          `json:"destination_account_name,omitempty"`
	Timestamp              time.Time       `json:"timestamp"`
	CreatedAt              time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                   t.ID,
		Kind:                 string(t.Kind),
		Amount:               t.Amount,
		ExchangeRate:         t.ExchangeRate,
		Description:          t.Description,
		SourceAccountID:      t.SourceAccountID,
		CategoryID:           t.CategoryID,
		DestinationAccountID: t.DestinationAccountID,
		Timestamp:            t.Timestamp,
		CreatedAt:            t.CreatedAt,
	}
}

// TransactionFromResult converts a ledger result, including the display names
// of the records the transaction touched.
func TransactionFromResult(r *usecase.TransactionResult) TransactionResponse {
	resp := TransactionFromDomain(r.Transaction)
	resp.SourceAccountName = r.SourceAccountName
	resp.DestinationAccountName = r.DestinationAccountName
	resp.CategoryName = r.CategoryName
	return resp
}

// TransactionsFromDomain converts a slice of domain transactions.
func TransactionsFromDomain(txns []*domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, TransactionFromDomain(t))
	}
	return out
}

// TemplateResponse represents a recurring template in responses.
type TemplateResponse struct {
	ID                   string          `json:"id"`
	Kind                 string          `json:"kind"`
	Amount               decimal.Decimal `json:"amount"`
	ExchangeRate         decimal.Decimal `json:"exchange_rate"`
	Description          string          `json:"description"`
	SourceAccountID      string          `json:"source_account_id"`
	CategoryID           string          `json:"category_id,omitempty"`
	DestinationAccountID string          `json:"destination_account_id,omitempty"`
	Frequency            string          `json:"frequency"`
	StartDate            time.Time       `json:"start_date"`
	NextExecutionDate    time.Time       `json:"next_execution_date"`
	EndDate              *time.Time      `json:"end_date,omitempty"`
	Active               bool            `json:"active"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// TemplateFromDomain converts a domain template to a response.
func TemplateFromDomain(t *domain.RecurringTemplate) TemplateResponse {
	return TemplateResponse{
		ID:                   t.ID,
		Kind:                 string(t.Kind),
		Amount:               t.Amount,
		ExchangeRate:         t.ExchangeRate,
		Description:          t.Description,
		SourceAccountID:      t.SourceAccountID,
		CategoryID:           t.CategoryID,
		DestinationAccountID: t.DestinationAccountID,
		Frequency:            string(t.Frequency),
		StartDate:            t.StartDate,
		NextExecutionDate:    t.NextExecutionDate,
		EndDate:              t.EndDate,
		Active:               t.Active,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}

// TemplatesFromDomain converts a slice of domain templates.
func TemplatesFromDomain(tpls []*domain.RecurringTemplate) []TemplateResponse {
	out := make([]TemplateResponse, 0, len(tpls))
	for _, t := range tpls {
		out = append(out, TemplateFromDomain(t))
	}
	return out
}

// DebtResponse represents a debt in responses.
type DebtResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Outstanding decimal.Decimal `json:"outstanding"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DebtFromDomain converts a domain debt to a response.
func DebtFromDomain(d *domain.Debt) DebtResponse {
	return DebtResponse{
		ID:          d.ID,
		Name:        d.Name,
		TotalAmount: d.TotalAmount,
		Outstanding: d.Outstanding,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// DebtsFromDomain converts a slice of domain debts.
func DebtsFromDomain(debts []*domain.Debt) []DebtResponse {
	out := make([]DebtResponse, 0, len(debts))
	for _, d := range debts {
		out = append(out, DebtFromDomain(d))
	}
	return out
}

// GoalResponse represents a savings goal in responses.
type GoalResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	TargetAmount  *decimal.Decimal `json:"target_amount,omitempty"`
	CurrentAmount decimal.Decimal  `json:"current_amount"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// GoalFromDomain converts a domain goal to a response.
func GoalFromDomain(g *domain.SavingsGoal) GoalResponse {
	return GoalResponse{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// GoalsFromDomain converts a slice of domain goals.
func GoalsFromDomain(goals []*domain.SavingsGoal) []GoalResponse {
	out := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalFromDomain(g))
	}
	return out
}
