package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odra/finbook/internal/domain"
	"github.com/odra/finbook/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository with
// in-memory default behavior. Individual methods can be overridden through
// their Func fields.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc                 func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetOwnedFunc               func(ctx context.Context, id, ownerID string) (*domain.Account, error)
	GetOwnedByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string, ownerID string) ([]*domain.Account, error)
	UpdateBalanceFunc          func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateFunc                 func(ctx context.Context, account *domain.Account) error
	ListByOwnerFunc            func(ctx context.Context, ownerID string) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

// Seed stores an account directly.
func (m *MockAccountRepository) Seed(accounts ...*domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
}

// Get returns a stored account without ownership checks, for assertions.
func (m *MockAccountRepository) Get(id string) *domain.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accounts[id]
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetOwned(ctx context.Context, id, ownerID string) (*domain.Account, error) {
	if m.GetOwnedFunc != nil {
		return m.GetOwnedFunc(ctx, id, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok && a.OwnerID == ownerID {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetOwnedByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string, ownerID string) ([]*domain.Account, error) {
	if m.GetOwnedByIDsForUpdateFunc != nil {
		return m.GetOwnedByIDsForUpdateFunc(ctx, tx, ids, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Account
	for _, id := range ids {
		if a, ok := m.accounts[id]; ok && a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok {
		a.Balance = balance
		a.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Account
	for _, a := range m.accounts {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MockTransactionRepository is a mock implementation of
// TransactionRepository. The aggregate defaults compute over the stored
// transactions so tests can seed history instead of stubbing sums.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns map[string]*domain.Transaction

	CreateFunc                  func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	GetOwnedFunc                func(ctx context.Context, id, ownerID string) (*domain.Transaction, error)
	UpdateFunc                  func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	DeleteFunc                  func(ctx context.Context, tx usecase.Transaction, id string) error
	ListByOwnerFunc             func(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error)
	SumExpensesByCategoriesFunc func(ctx context.Context, ownerID string, categoryIDs []string, from, to time.Time) (decimal.Decimal, error)
	SumExpensesByAccountFunc    func(ctx context.Context, accountID string, to time.Time) (decimal.Decimal, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{txns: make(map[string]*domain.Transaction)}
}

// Seed stores transactions directly.
func (m *MockTransactionRepository) Seed(txns ...*domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range txns {
		m.txns[t.ID] = t
	}
}

// Get returns a stored transaction for assertions.
func (m *MockTransactionRepository) Get(id string) *domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.txns[id]
}

// Count returns the number of stored transactions.
func (m *MockTransactionRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.txns)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) GetOwned(ctx context.Context, id, ownerID string) (*domain.Transaction, error) {
	if m.GetOwnedFunc != nil {
		return m.GetOwnedFunc(ctx, id, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.txns[id]; ok && t.OwnerID == ownerID {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.txns, id)
	return nil
}

func (m *MockTransactionRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, t := range m.txns {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (m *MockTransactionRepository) SumExpensesByCategories(ctx context.Context, ownerID string, categoryIDs []string, from, to time.Time) (decimal.Decimal, error) {
	if m.SumExpensesByCategoriesFunc != nil {
		return m.SumExpensesByCategoriesFunc(ctx, ownerID, categoryIDs, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	wanted := make(map[string]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = true
	}
	sum := decimal.Zero
	for _, t := range m.txns {
		if t.OwnerID != ownerID || t.Kind != domain.KindExpense || !wanted[t.CategoryID] {
			continue
		}
		if t.Timestamp.Before(from) || t.Timestamp.After(to) {
			continue
		}
		sum = sum.Add(t.Amount)
	}
	return sum, nil
}

func (m *MockTransactionRepository) SumExpensesByAccount(ctx context.Context, accountID string, to time.Time) (decimal.Decimal, error) {
	if m.SumExpensesByAccountFunc != nil {
		return m.SumExpensesByAccountFunc(ctx, accountID, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, t := range m.txns {
		if t.SourceAccountID != accountID || t.Kind != domain.KindExpense {
			continue
		}
		if t.Timestamp.After(to) {
			continue
		}
		sum = sum.Add(t.Amount)
	}
	return sum, nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category

	GetOwnedFunc func(ctx context.Context, id, ownerID string) (*domain.Category, error)
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{categories: make(map[string]*domain.Category)}
}

func (m *MockCategoryRepository) Seed(categories ...*domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range categories {
		m.categories[c.ID] = c
	}
}

func (m *MockCategoryRepository) GetOwned(ctx context.Context, id, ownerID string) (*domain.Category, error) {
	if m.GetOwnedFunc != nil {
		return m.GetOwnedFunc(ctx, id, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.categories[id]; ok && c.OwnerID == ownerID {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// MockBudgetRepository is a mock implementation of BudgetRepository.
type MockBudgetRepository struct {
	Budgets []*domain.Budget

	ListDayToDayFunc func(ctx context.Context, ownerID string, month, year int) ([]*domain.Budget, error)
}

func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{}
}

func (m *MockBudgetRepository) ListDayToDay(ctx context.Context, ownerID string, month, year int) ([]*domain.Budget, error) {
	if m.ListDayToDayFunc != nil {
		return m.ListDayToDayFunc(ctx, ownerID, month, year)
	}
	var out []*domain.Budget
	for _, b := range m.Budgets {
		if b.OwnerID == ownerID && b.Month == month && b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

// MockRecurringRepository is a mock implementation of RecurringRepository.
type MockRecurringRepository struct {
	mu        sync.RWMutex
	templates map[string]*domain.RecurringTemplate

	CreateFunc      func(ctx context.Context, tpl *domain.RecurringTemplate) error
	GetOwnedFunc    func(ctx context.Context, id, ownerID string) (*domain.RecurringTemplate, error)
	UpdateFunc      func(ctx context.Context, tpl *domain.RecurringTemplate) error
	UpdateTxFunc    func(ctx context.Context, tx usecase.Transaction, tpl *domain.RecurringTemplate) error
	DeleteFunc      func(ctx context.Context, id, ownerID string) error
	ListByOwnerFunc func(ctx context.Context, ownerID string) ([]*domain.RecurringTemplate, error)
	ListDueFunc     func(ctx context.Context, dueOn time.Time) ([]*domain.RecurringTemplate, error)
}

func NewMockRecurringRepository() *MockRecurringRepository {
	return &MockRecurringRepository{templates: make(map[string]*domain.RecurringTemplate)}
}

func (m *MockRecurringRepository) Seed(templates ...*domain.RecurringTemplate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range templates {
		m.templates[t.ID] = t
	}
}

func (m *MockRecurringRepository) Get(id string) *domain.RecurringTemplate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.templates[id]
}

func (m *MockRecurringRepository) Create(ctx context.Context, tpl *domain.RecurringTemplate) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tpl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[tpl.ID] = tpl
	return nil
}

func (m *MockRecurringRepository) GetOwned(ctx context.Context, id, ownerID string) (*domain.RecurringTemplate, error) {
	if m.GetOwnedFunc != nil {
		return m.GetOwnedFunc(ctx, id, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.templates[id]; ok && t.OwnerID == ownerID {
		return t, nil
	}
	return nil, domain.ErrTemplateNotFound
}

func (m *MockRecurringRepository) Update(ctx context.Context, tpl *domain.RecurringTemplate) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tpl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[tpl.ID] = tpl
	return nil
}

func (m *MockRecurringRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, tpl *domain.RecurringTemplate) error {
	if m.UpdateTxFunc != nil {
		return m.UpdateTxFunc(ctx, tx, tpl)
	}
	return m.Update(ctx, tpl)
}

func (m *MockRecurringRepository) Delete(ctx context.Context, id, ownerID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, ownerID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.templates, id)
	return nil
}

func (m *MockRecurringRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.RecurringTemplate, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.RecurringTemplate
	for _, t := range m.templates {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockRecurringRepository) ListDue(ctx context.Context, dueOn time.Time) ([]*domain.RecurringTemplate, error) {
	if m.ListDueFunc != nil {
		return m.ListDueFunc(ctx, dueOn)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.RecurringTemplate
	for _, t := range m.templates {
		if t.Due(dueOn) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MockGoalRepository is a mock implementation of GoalRepository.
type MockGoalRepository struct {
	mu    sync.RWMutex
	goals map[string]*domain.SavingsGoal

	CreateFunc   func(ctx context.Context, goal *domain.SavingsGoal) error
	GetOwnedFunc func(ctx context.Context, id, ownerID string) (*domain.SavingsGoal, error)
	UpdateTxFunc func(ctx context.Context, tx usecase.Transaction, goal *domain.SavingsGoal) error
}

func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{goals: make(map[string]*domain.SavingsGoal)}
}

func (m *MockGoalRepository) Seed(goals ...*domain.SavingsGoal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range goals {
		m.goals[g.ID] = g
	}
}

func (m *MockGoalRepository) Get(id string) *domain.SavingsGoal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.goals[id]
}

func (m *MockGoalRepository) Create(ctx context.Context, goal *domain.SavingsGoal) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, goal)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[goal.ID] = goal
	return nil
}

func (m *MockGoalRepository) GetOwned(ctx context.Context, id, ownerID string) (*domain.SavingsGoal, error) {
	if m.GetOwnedFunc != nil {
		return m.GetOwnedFunc(ctx, id, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.goals[id]; ok && g.OwnerID == ownerID {
		return g, nil
	}
	return nil, domain.ErrGoalNotFound
}

func (m *MockGoalRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, goal *domain.SavingsGoal) error {
	if m.UpdateTxFunc != nil {
		return m.UpdateTxFunc(ctx, tx, goal)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[goal.ID] = goal
	return nil
}

func (m *MockGoalRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.SavingsGoal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.SavingsGoal
	for _, g := range m.goals {
		if g.OwnerID == ownerID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MockDebtRepository is a mock implementation of DebtRepository.
type MockDebtRepository struct {
	mu    sync.RWMutex
	debts map[string]*domain.Debt

	GetOwnedForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id, ownerID string) (*domain.Debt, error)
	UpdateTxFunc          func(ctx context.Context, tx usecase.Transaction, debt *domain.Debt) error
}

func NewMockDebtRepository() *MockDebtRepository {
	return &MockDebtRepository{debts: make(map[string]*domain.Debt)}
}

func (m *MockDebtRepository) Seed(debts ...*domain.Debt) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range debts {
		m.debts[d.ID] = d
	}
}

func (m *MockDebtRepository) Get(id string) *domain.Debt {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.debts[id]
}

func (m *MockDebtRepository) Create(ctx context.Context, debt *domain.Debt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debts[debt.ID] = debt
	return nil
}

func (m *MockDebtRepository) GetOwned(ctx context.Context, id, ownerID string) (*domain.Debt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.debts[id]; ok && d.OwnerID == ownerID {
		return d, nil
	}
	return nil, domain.ErrDebtNotFound
}

func (m *MockDebtRepository) GetOwnedForUpdate(ctx context.Context, tx usecase.Transaction, id, ownerID string) (*domain.Debt, error) {
	if m.GetOwnedForUpdateFunc != nil {
		return m.GetOwnedForUpdateFunc(ctx, tx, id, ownerID)
	}
	return m.GetOwned(ctx, id, ownerID)
}

func (m *MockDebtRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, debt *domain.Debt) error {
	if m.UpdateTxFunc != nil {
		return m.UpdateTxFunc(ctx, tx, debt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debts[debt.ID] = debt
	return nil
}

func (m *MockDebtRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Debt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Debt
	for _, d := range m.debts {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MockTx is a no-op database transaction that records its lifecycle.
type MockTx struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTx) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTxManager is a mock implementation of TransactionManager.
type MockTxManager struct {
	mu     sync.Mutex
	Begun  []*MockTx
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTx{}
	m.Begun = append(m.Begun, tx)
	return tx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator generating a
// deterministic sequence.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%d", m.next)
}

// MockCache is an in-memory implementation of Cache. TTLs are ignored.
type MockCache struct {
	mu     sync.RWMutex
	values map[string]string

	GetFunc func(ctx context.Context, key string) (string, error)
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (c *MockCache) Get(ctx context.Context, key string) (string, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, key)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("cache miss: %s", key)
}

func (c *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *MockCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}
