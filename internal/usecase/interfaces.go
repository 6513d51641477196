package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odra/finbook/internal/domain"
)

// AccountRepository defines data access for accounts. All lookups are scoped
// to an owner; a foreign account behaves exactly like a missing one.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetOwned(ctx context.Context, id, ownerID string) (*domain.Account, error)
	GetOwnedByIDsForUpdate(ctx context.Context, tx Transaction, ids []string, ownerID string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	Update(ctx context.Context, account *domain.Account) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error)
}

// TransactionRepository defines data access for transactions, including the
// expense aggregates the allocator and billing-cycle logic read. Aggregates
// over empty sets return zero, never an absent value.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetOwned(ctx context.Context, id, ownerID string) (*domain.Transaction, error)
	Update(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	Delete(ctx context.Context, tx Transaction, id string) error
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error)
	SumExpensesByCategories(ctx context.Context, ownerID string, categoryIDs []string, from, to time.Time) (decimal.Decimal, error)
	SumExpensesByAccount(ctx context.Context, accountID string, to time.Time) (decimal.Decimal, error)
}

// CategoryRepository defines owned lookups for categories.
type CategoryRepository interface {
	GetOwned(ctx context.Context, id, ownerID string) (*domain.Category, error)
}

// BudgetRepository defines read access to monthly budgets.
type BudgetRepository interface {
	// ListDayToDay returns the budgets for the given month whose category is
	// flagged for day-to-day management.
	ListDayToDay(ctx context.Context, ownerID string, month, year int) ([]*domain.Budget, error)
}

// RecurringRepository defines data access for recurring templates.
type RecurringRepository interface {
	Create(ctx context.Context, tpl *domain.RecurringTemplate) error
	GetOwned(ctx context.Context, id, ownerID string) (*domain.RecurringTemplate, error)
	Update(ctx context.Context, tpl *domain.RecurringTemplate) error
	UpdateTx(ctx context.Context, tx Transaction, tpl *domain.RecurringTemplate) error
	Delete(ctx context.Context, id, ownerID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.RecurringTemplate, error)
	// ListDue returns active templates across all owners whose next execution
	// date is on or before the given day.
	ListDue(ctx context.Context, dueOn time.Time) ([]*domain.RecurringTemplate, error)
}

// GoalRepository defines data access for savings goals.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.SavingsGoal) error
	GetOwned(ctx context.Context, id, ownerID string) (*domain.SavingsGoal, error)
	UpdateTx(ctx context.Context, tx Transaction, goal *domain.SavingsGoal) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.SavingsGoal, error)
}

// DebtRepository defines data access for external debts.
type DebtRepository interface {
	Create(ctx context.Context, debt *domain.Debt) error
	GetOwned(ctx context.Context, id, ownerID string) (*domain.Debt, error)
	GetOwnedForUpdate(ctx context.Context, tx Transaction, id, ownerID string) (*domain.Debt, error)
	UpdateTx(ctx context.Context, tx Transaction, debt *domain.Debt) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Debt, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries operations that fail transiently, such as serialization
// failures under concurrent balance updates.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current instant. Everything date-sensitive goes through
// it so that day-of-month edge cases are testable.
type Clock interface {
	Now() time.Time
}

// Cache defines caching operations for derived read models.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
