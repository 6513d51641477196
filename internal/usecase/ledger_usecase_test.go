package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/odra/finbook/internal/domain"
	"github.com/odra/finbook/internal/usecase"
	"github.com/odra/finbook/internal/usecase/mocks"
)

const testOwner = "owner-1"

var testNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptrDec(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func ptrInt(i int) *int { return &i }

type ledgerFixture struct {
	txManager    *mocks.MockTxManager
	accounts     *mocks.MockAccountRepository
	transactions *mocks.MockTransactionRepository
	categories   *mocks.MockCategoryRepository
	ledger       *usecase.LedgerUseCase
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(testNow).AnyTimes()

	f := &ledgerFixture{
		txManager:    mocks.NewMockTxManager(),
		accounts:     mocks.NewMockAccountRepository(),
		transactions: mocks.NewMockTransactionRepository(),
		categories:   mocks.NewMockCategoryRepository(),
	}
	f.ledger = usecase.NewLedgerUseCase(
		f.txManager, f.accounts, f.transactions, f.categories,
		mocks.NewMockIDGenerator(), clock,
	)

	f.categories.Seed(&domain.Category{ID: "cat-1", OwnerID: testOwner, Name: "Groceries"})

	return f
}

func (f *ledgerFixture) seedAccount(id string, typ domain.AccountType, balance string) *domain.Account {
	a := &domain.Account{
		ID:       id,
		OwnerID:  testOwner,
		Name:     "Account " + id,
		Type:     typ,
		Currency: "MXN",
		Balance:  dec(balance),
		Active:   true,
	}
	f.accounts.Seed(a)
	return a
}

func TestCreateTransaction_BalanceEffects(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		kind        domain.Kind
		amount      string
		wantBalance string
	}{
		{"expense shrinks asset balance", domain.AccountAssetDebit, domain.KindExpense, "150.50", "849.50"},
		{"income grows asset balance", domain.AccountAssetDebit, domain.KindIncome, "200", "1200"},
		{"expense grows credit debt", domain.AccountCredit, domain.KindExpense, "150.50", "1150.50"},
		{"income shrinks credit debt", domain.AccountCredit, domain.KindIncome, "200", "800"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t)
			f.seedAccount("acc-1", tt.accountType, "1000")

			result, err := f.ledger.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
				OwnerID:         testOwner,
				Kind:            tt.kind,
				Amount:          dec(tt.amount),
				SourceAccountID: "acc-1",
				CategoryID:      "cat-1",
			})
			require.NoError(t, err)

			assert.True(t, f.accounts.Get("acc-1").Balance.Equal(dec(tt.wantBalance)),
				"balance = %s, want %s", f.accounts.Get("acc-1").Balance, tt.wantBalance)
			assert.Equal(t, "Account acc-1", result.SourceAccountName)
			assert.Equal(t, "Groceries", result.CategoryName)
			assert.True(t, f.txManager.Begun[0].Committed)
		})
	}
}

func TestCreateTransaction_Transfer(t *testing.T) {
	t.Run("same currency conserves amount", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedAccount("acc-1", domain.AccountAssetDebit, "1000")
		f.seedAccount("acc-2", domain.AccountAssetCash, "50")

		_, err := f.ledger.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
			OwnerID:              testOwner,
			Kind:                 domain.KindTransfer,
			Amount:               dec("300"),
			SourceAccountID:      "acc-1",
			DestinationAccountID: "acc-2",
		})
		require.NoError(t, err)

		assert.True(t, f.accounts.Get("acc-1").Balance.Equal(dec("700")))
		assert.True(t, f.accounts.Get("acc-2").Balance.Equal(dec("350")))
	})

	t.Run("cross currency multiplies by rate", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedAccount("acc-1", domain.AccountAssetDebit, "1000")
		dest := f.seedAccount("acc-2", domain.AccountAssetDebit, "0")
		dest.Currency = "USD"

		_, err := f.ledger.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
			OwnerID:              testOwner,
			Kind:                 domain.KindTransfer,
			Amount:               dec("175"),
			ExchangeRate:         dec("0.058"),
			SourceAccountID:      "acc-1",
			DestinationAccountID: "acc-2",
		})
		require.NoError(t, err)

		assert.True(t, f.accounts.Get("acc-1").Balance.Equal(dec("825")))
		assert.True(t, f.accounts.Get("acc-2").Balance.Equal(dec("10.15")))
	})

	t.Run("transfer into credit card pays down debt", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedAccount("acc-1", domain.AccountAssetDebit, "1000")
		f.seedAccount("card-1", domain.AccountCredit, "400")

		_, err := f.ledger.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
			OwnerID:              testOwner,
			Kind:                 domain.KindTransfer,
			Amount:               dec("250"),
			SourceAccountID:      "acc-1",
			DestinationAccountID: "card-1",
		})
		require.NoError(t, err)

		assert.True(t, f.accounts.Get("acc-1").Balance.Equal(dec("750")))
		assert.True(t, f.accounts.Get("card-1").Balance.Equal(dec("150")))
	})
}

func TestCreateTransaction_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateTransactionInput
		wantErr error
	}{
		{
			name: "expense without category",
			input: usecase.CreateTransactionInput{
				OwnerID: testOwner, Kind: domain.KindExpense,
				Amount: dec("10"), SourceAccountID: "acc-1",
			},
			wantErr: domain.ErrCategoryRequired,
		},
		{
			name: "transfer without destination",
			input: usecase.CreateTransactionInput{
				OwnerID: testOwner, Kind: domain.KindTransfer,
				Amount: dec("10"), SourceAccountID: "acc-1",
			},
			wantErr: domain.ErrDestinationRequired,
		},
		{
			name: "transfer to itself",
			input: usecase.CreateTransactionInput{
				OwnerID: testOwner, Kind: domain.KindTransfer,
				Amount: dec("10"), SourceAccountID: "acc-1", DestinationAccountID: "acc-1",
			},
			wantErr: domain.ErrSameAccountTransfer,
		},
		{
			name: "zero amount",
			input: usecase.CreateTransactionInput{
				OwnerID: testOwner, Kind: domain.KindExpense,
				Amount: decimal.Zero, SourceAccountID: "acc-1", CategoryID: "cat-1",
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "unknown source account",
			input: usecase.CreateTransactionInput{
				OwnerID: testOwner, Kind: domain.KindExpense,
				Amount: dec("10"), SourceAccountID: "nope", CategoryID: "cat-1",
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "foreign source account",
			input: usecase.CreateTransactionInput{
				OwnerID: "other-owner", Kind: domain.KindExpense,
				Amount: dec("10"), SourceAccountID: "acc-1", CategoryID: "cat-1",
			},
			wantErr: domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t)
			f.seedAccount("acc-1", domain.AccountAssetDebit, "1000")

			_, err := f.ledger.CreateTransaction(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.transactions.Count(), "no transaction should be stored")
			assert.True(t, f.accounts.Get("acc-1").Balance.Equal(dec("1000")), "balance must be untouched")
		})
	}
}

func TestCreateTransaction_CrossCurrencyWithoutRate(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedAccount("acc-1", domain.AccountAssetDebit, "1000")
	dest := f.seedAccount("acc-2", domain.AccountAssetDebit, "0")
	dest.Currency = "USD"

	// The input defaults a zero rate to 1, so force a negative one.
	_, err := f.ledger.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		OwnerID:              testOwner,
		Kind:                 domain.KindTransfer,
		Amount:               dec("100"),
		ExchangeRate:         dec("-1"),
		SourceAccountID:      "acc-1",
		DestinationAccountID: "acc-2",
	})
	assert.ErrorIs(t, err, domain.ErrExchangeRateRequired)
	assert.True(t, f.accounts.Get("acc-1").Balance.Equal(dec("1000")))
}

func TestDeleteTransaction_RevertsEffect(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		kind        domain.Kind
	}{
		{"expense on asset", domain.AccountAssetDebit, domain.KindExpense},
		{"income on asset", domain.AccountAssetDebit, domain.KindIncome},
		{"expense on credit", domain.AccountCredit, domain.KindExpense},
		{"income on credit", domain.AccountCredit, domain.KindIncome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t)
			f.seedAccount("acc-1", tt.accountType, "1000")

			result, err := f.ledger.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
				OwnerID:         testOwner,
				Kind:            tt.kind,
				Amount:          dec("123.45"),
				SourceAccountID: "acc-1",
				CategoryID:      "cat-1",
			})
			require.NoError(t, err)

			err = f.ledger.DeleteTransaction(context.Background(), result.Transaction.ID, testOwner)
			require.NoError(t, err)

			assert.True(t, f.accounts.Get("acc-1").Balance.Equal(dec("1000")),
				"apply then revert must restore the original balance, got %s", f.accounts.Get("acc-1").Balance)
			assert.Zero(t, f.transactions.Count())
		})
	}
}

func TestDeleteTransaction_RevertsTransfer(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedAccount("acc-1", domain.AccountAssetDebit, "1000")
	f.seedAccount("card-1", domain.AccountCredit, "400")

	result, err := f.ledger.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		OwnerID:              testOwner,
		Kind:                 domain.KindTransfer,
		Amount:               dec("250"),
		SourceAccountID:      "acc-1",
		DestinationAccountID: "card-1",
	})
	require.NoError(t, err)

	require.NoError(t, f.ledger.DeleteTransaction(context.Background(), result.Transaction.ID, testOwner))

	assert.True(t, f.accounts.Get("acc-1").Balance.Equal(dec("1000")))
	assert.True(t, f.accounts.Get("card-1").Balance.Equal(dec("400")))
}

func TestUpdateTransaction_RevertsThenReapplies(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedAccount("acc-1", domain.AccountAssetDebit, "1000")
	f.seedAccount("acc-2", domain.AccountAssetDebit, "500")

	result, err := f.ledger.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		OwnerID:         testOwner,
		Kind:            domain.KindExpense,
		Amount:          dec("100"),
		SourceAccountID: "acc-1",
		CategoryID:      "cat-1",
	})
	require.NoError(t, err)
	require.True(t, f.accounts.Get("acc-1").Balance.Equal(dec("900")))

	// Move the expense to the other account with a different amount. The end
	// state must equal applying only the final version.
	updated, err := f.ledger.UpdateTransaction(context.Background(), result.Transaction.ID, usecase.CreateTransactionInput{
		OwnerID:         testOwner,
		Kind:            domain.KindExpense,
		Amount:          dec("250"),
		SourceAccountID: "acc-2",
		CategoryID:      "cat-1",
	})
	require.NoError(t, err)

	assert.True(t, f.accounts.Get("acc-1").Balance.Equal(dec("1000")))
	assert.True(t, f.accounts.Get("acc-2").Balance.Equal(dec("250")))
	assert.Equal(t, result.Transaction.ID, updated.Transaction.ID)
	assert.Equal(t, 1, f.transactions.Count())
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedAccount("acc-1", domain.AccountAssetDebit, "1000")

	_, err := f.ledger.UpdateTransaction(context.Background(), "missing", usecase.CreateTransactionInput{
		OwnerID:         testOwner,
		Kind:            domain.KindExpense,
		Amount:          dec("10"),
		SourceAccountID: "acc-1",
		CategoryID:      "cat-1",
	})
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestCreateTransaction_RollbackOnRepositoryFailure(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedAccount("acc-1", domain.AccountAssetDebit, "1000")

	f.transactions.CreateFunc = func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
		return context.DeadlineExceeded
	}

	_, err := f.ledger.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		OwnerID:         testOwner,
		Kind:            domain.KindExpense,
		Amount:          dec("100"),
		SourceAccountID: "acc-1",
		CategoryID:      "cat-1",
	})
	require.Error(t, err)
	assert.True(t, f.txManager.Begun[0].RolledBack)
	assert.False(t, f.txManager.Begun[0].Committed)
}

func TestListTransactions_ClampsLimit(t *testing.T) {
	f := newLedgerFixture(t)

	var gotLimit int
	f.transactions.ListByOwnerFunc = func(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error) {
		gotLimit = limit
		return nil, nil
	}

	_, err := f.ledger.ListTransactions(context.Background(), testOwner, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)

	_, err = f.ledger.ListTransactions(context.Background(), testOwner, 500, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, gotLimit)
}
