package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odra/finbook/internal/adapter/http/dto"
	"github.com/odra/finbook/internal/adapter/http/middleware"
	"github.com/odra/finbook/internal/domain"
	"github.com/odra/finbook/internal/usecase"
)

// AccountService defines the account operations the handler depends on.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id, ownerID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, ownerID string) ([]*usecase.AccountWithCycle, error)
	UpdateAccount(ctx context.Context, id, ownerID string, input usecase.UpdateAccountInput) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, id, ownerID string) error
}

// AccountHandler handles account endpoints.
type AccountHandler struct {
	service AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Create handles POST /api/v1/accounts.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ownerID := middleware.OwnerIDFromContext(r.Context())

	account, err := h.service.CreateAccount(r.Context(), req.ToUseCaseInput(ownerID))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// List handles GET /api/v1/accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerIDFromContext(r.Context())

	accounts, err := h.service.ListAccounts(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromCycle(accounts))
}

// Get handles GET /api/v1/accounts/{id}.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerIDFromContext(r.Context())

	account, err := h.service.GetAccount(r.Context(), chi.URLParam(r, "id"), ownerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Update handles PUT /api/v1/accounts/{id}.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ownerID := middleware.OwnerIDFromContext(r.Context())

	account, err := h.service.UpdateAccount(r.Context(), chi.URLParam(r, "id"), ownerID, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Deactivate handles DELETE /api/v1/accounts/{id}. History is preserved; the
// account is only marked inactive.
func (h *AccountHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerIDFromContext(r.Context())

	if err := h.service.DeactivateAccount(r.Context(), chi.URLParam(r, "id"), ownerID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
