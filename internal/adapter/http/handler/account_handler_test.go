package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/odra/finbook/internal/adapter/http/dto"
	"github.com/odra/finbook/internal/adapter/http/handler"
	"github.com/odra/finbook/internal/domain"
	"github.com/odra/finbook/internal/usecase"
)

type fakeAccountService struct {
	createFunc     func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFunc        func(ctx context.Context, id, ownerID string) (*domain.Account, error)
	listFunc       func(ctx context.Context, ownerID string) ([]*usecase.AccountWithCycle, error)
	updateFunc     func(ctx context.Context, id, ownerID string, input usecase.UpdateAccountInput) (*domain.Account, error)
	deactivateFunc func(ctx context.Context, id, ownerID string) error
}

func (f *fakeAccountService) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return f.createFunc(ctx, input)
}

func (f *fakeAccountService) GetAccount(ctx context.Context, id, ownerID string) (*domain.Account, error) {
	return f.getFunc(ctx, id, ownerID)
}

func (f *fakeAccountService) ListAccounts(ctx context.Context, ownerID string) ([]*usecase.AccountWithCycle, error) {
	return f.listFunc(ctx, ownerID)
}

func (f *fakeAccountService) UpdateAccount(ctx context.Context, id, ownerID string, input usecase.UpdateAccountInput) (*domain.Account, error) {
	return f.updateFunc(ctx, id, ownerID, input)
}

func (f *fakeAccountService) DeactivateAccount(ctx context.Context, id, ownerID string) error {
	return f.deactivateFunc(ctx, id, ownerID)
}

func accountRoutes(h *handler.AccountHandler) func(r chi.Router) {
	return func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", h.Create)
			r.Get("/", h.List)
			r.Get("/{id}", h.Get)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Deactivate)
		})
	}
}

func TestAccountCreate(t *testing.T) {
	svc := &fakeAccountService{
		createFunc: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			if input.OwnerID != testOwner {
				t.Fatalf("owner = %q, want %q", input.OwnerID, testOwner)
			}
			return &domain.Account{
				ID:       "acc-1",
				OwnerID:  input.OwnerID,
				Name:     input.Name,
				Type:     input.Type,
				Currency: input.Currency,
				Balance:  input.Balance,
				Active:   true,
			}, nil
		},
	}
	h := handler.NewAccountHandler(svc)

	req := ownedRequest(http.MethodPost, "/api/v1/accounts",
		`{"name":"Checking","type":"ASSET_DEBIT","currency":"MXN","balance":"1500.50"}`)
	rec := serve(accountRoutes(h), req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.ID != "acc-1" || resp.Name != "Checking" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !resp.Balance.Equal(decimal.RequireFromString("1500.50")) {
		t.Fatalf("balance = %s, want 1500.50", resp.Balance)
	}
}

func TestAccountCreateRequiresOwnerHeader(t *testing.T) {
	h := handler.NewAccountHandler(&fakeAccountService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", nil)
	rec := serve(accountRoutes(h), req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAccountCreateValidationError(t *testing.T) {
	svc := &fakeAccountService{
		createFunc: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			return nil, domain.ErrCreditFieldsRequired
		},
	}
	h := handler.NewAccountHandler(svc)

	req := ownedRequest(http.MethodPost, "/api/v1/accounts", `{"name":"Card","type":"CREDIT","currency":"MXN"}`)
	rec := serve(accountRoutes(h), req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAccountGetNotFound(t *testing.T) {
	svc := &fakeAccountService{
		getFunc: func(ctx context.Context, id, ownerID string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}
	h := handler.NewAccountHandler(svc)

	req := ownedRequest(http.MethodGet, "/api/v1/accounts/missing", "")
	rec := serve(accountRoutes(h), req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestAccountListIncludesCycleFigures(t *testing.T) {
	limit := decimal.RequireFromString("50000")
	closing, payment := 15, 5

	svc := &fakeAccountService{
		listFunc: func(ctx context.Context, ownerID string) ([]*usecase.AccountWithCycle, error) {
			return []*usecase.AccountWithCycle{
				{
					Account: &domain.Account{
						ID: "card-1", OwnerID: ownerID, Name: "Gold", Type: domain.AccountCredit,
						Currency: "MXN", Balance: decimal.RequireFromString("900"),
						CreditLimit: &limit, ClosingDay: &closing, PaymentDay: &payment, Active: true,
					},
					StatementBalance:    decimal.RequireFromString("600"),
					CurrentCycleBalance: decimal.RequireFromString("300"),
				},
			}, nil
		},
	}
	h := handler.NewAccountHandler(svc)

	req := ownedRequest(http.MethodGet, "/api/v1/accounts", "")
	rec := serve(accountRoutes(h), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp []dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 account, got %d", len(resp))
	}
	if !resp[0].StatementBalance.Equal(decimal.RequireFromString("600")) {
		t.Fatalf("statement = %s, want 600", resp[0].StatementBalance)
	}
	if !resp[0].CurrentCycleBalance.Equal(decimal.RequireFromString("300")) {
		t.Fatalf("current cycle = %s, want 300", resp[0].CurrentCycleBalance)
	}
}

func TestAccountDeactivate(t *testing.T) {
	var gotID string
	svc := &fakeAccountService{
		deactivateFunc: func(ctx context.Context, id, ownerID string) error {
			gotID = id
			return nil
		},
	}
	h := handler.NewAccountHandler(svc)

	req := ownedRequest(http.MethodDelete, "/api/v1/accounts/acc-9", "")
	rec := serve(accountRoutes(h), req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if gotID != "acc-9" {
		t.Fatalf("deactivated id = %q, want acc-9", gotID)
	}
}
