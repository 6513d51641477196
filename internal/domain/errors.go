package domain

import "errors"

var (
	// Not-found errors. Also raised when the resource exists but belongs to
	// another owner, so callers cannot probe for foreign resources.
	ErrAccountNotFound     = errors.New("account not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTemplateNotFound    = errors.New("recurring template not found")
	ErrGoalNotFound        = errors.New("savings goal not found")
	ErrDebtNotFound        = errors.New("debt not found")

	// Business-rule errors
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidKind            = errors.New("unknown movement kind")
	ErrInvalidAccountType     = errors.New("unknown account type")
	ErrInvalidFrequency       = errors.New("unknown frequency")
	ErrCategoryRequired       = errors.New("category is required for expenses and incomes")
	ErrDestinationRequired    = errors.New("destination account is required for transfers")
	ErrSameAccountTransfer    = errors.New("source and destination accounts must differ")
	ErrExchangeRateRequired   = errors.New("a positive exchange rate is required for cross-currency transfers")
	ErrCreditFieldsRequired   = errors.New("credit limit, closing day and payment day are required for credit accounts")
	ErrOverpayment            = errors.New("payment exceeds outstanding debt balance")
	ErrSavingsTargetsRequired = errors.New("savings goal, source account and category are required to save")
)
