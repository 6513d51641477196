package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odra/finbook/internal/adapter/http/dto"
	"github.com/odra/finbook/internal/adapter/http/middleware"
	"github.com/odra/finbook/internal/domain"
	"github.com/odra/finbook/internal/infrastructure/metrics"
	"github.com/odra/finbook/internal/usecase"
)

// LedgerService defines the ledger operations the handler depends on.
type LedgerService interface {
	CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*usecase.TransactionResult, error)
	UpdateTransaction(ctx context.Context, id string, input usecase.CreateTransactionInput) (*usecase.TransactionResult, error)
	DeleteTransaction(ctx context.Context, id, ownerID string) error
	ListTransactions(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error)
}

// TransactionHandler handles transaction endpoints. Every mutation drops the
// owner's cached daily status, which is derived from transaction history.
type TransactionHandler struct {
	service LedgerService
	cache   usecase.Cache
	metrics *metrics.Metrics
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(service LedgerService, cache usecase.Cache, m *metrics.Metrics) *TransactionHandler {
	return &TransactionHandler{service: service, cache: cache, metrics: m}
}

// Create handles POST /api/v1/transactions.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ownerID := middleware.OwnerIDFromContext(r.Context())

	result, err := h.service.CreateTransaction(r.Context(), req.ToUseCaseInput(ownerID))
	if err != nil {
		h.metrics.TransactionErrors.WithLabelValues("create").Inc()
		writeDomainError(w, err)
		return
	}

	h.metrics.TransactionsCreated.WithLabelValues(string(result.Transaction.Kind)).Inc()
	h.dropDailyCache(r.Context(), ownerID)

	writeJSON(w, http.StatusCreated, dto.TransactionFromResult(result))
}

// List handles GET /api/v1/transactions.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerIDFromContext(r.Context())

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	txns, err := h.service.ListTransactions(r.Context(), ownerID, limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txns))
}

// Update handles PUT /api/v1/transactions/{id}.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ownerID := middleware.OwnerIDFromContext(r.Context())

	result, err := h.service.UpdateTransaction(r.Context(), chi.URLParam(r, "id"), req.ToUseCaseInput(ownerID))
	if err != nil {
		h.metrics.TransactionErrors.WithLabelValues("update").Inc()
		writeDomainError(w, err)
		return
	}

	h.dropDailyCache(r.Context(), ownerID)

	writeJSON(w, http.StatusOK, dto.TransactionFromResult(result))
}

// Delete handles DELETE /api/v1/transactions/{id}.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerIDFromContext(r.Context())

	if err := h.service.DeleteTransaction(r.Context(), chi.URLParam(r, "id"), ownerID); err != nil {
		h.metrics.TransactionErrors.WithLabelValues("delete").Inc()
		writeDomainError(w, err)
		return
	}

	h.metrics.TransactionsReverted.Inc()
	h.dropDailyCache(r.Context(), ownerID)

	w.WriteHeader(http.StatusNoContent)
}

// dropDailyCache invalidates the derived daily status. Failure is harmless:
// the entry expires on its own TTL.
func (h *TransactionHandler) dropDailyCache(ctx context.Context, ownerID string) {
	if h.cache != nil {
		h.cache.Delete(ctx, dailyCacheKey(ownerID))
	}
}
