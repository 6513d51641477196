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

// DebtService defines the debt operations the handler depends on.
type DebtService interface {
	CreateDebt(ctx context.Context, input usecase.CreateDebtInput) (*domain.Debt, error)
	ListDebts(ctx context.Context, ownerID string) ([]*domain.Debt, error)
	RegisterPayment(ctx context.Context, debtID, ownerID string, input usecase.PaymentInput) (*domain.Debt, error)
}

// DebtHandler handles debt endpoints.
type DebtHandler struct {
	service DebtService
	metrics *metrics.Metrics
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(service DebtService, m *metrics.Metrics) *DebtHandler {
	return &DebtHandler{service: service, metrics: m}
}

// Create handles POST /api/v1/debts.
func (h *DebtHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDebtRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ownerID := middleware.OwnerIDFromContext(r.Context())

	debt, err := h.service.CreateDebt(r.Context(), req.ToUseCaseInput(ownerID))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.DebtFromDomain(debt))
}

// List handles GET /api/v1/debts.
func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerIDFromContext(r.Context())

	debts, err := h.service.ListDebts(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DebtsFromDomain(debts))
}

// RegisterPayment handles POST /api/v1/debts/{id}/payments.
func (h *DebtHandler) RegisterPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.DebtPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ownerID := middleware.OwnerIDFromContext(r.Context())

	debt, err := h.service.RegisterPayment(r.Context(), chi.URLParam(r, "id"), ownerID, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.metrics.DebtPayments.Inc()

	writeJSON(w, http.StatusOK, dto.DebtFromDomain(debt))
}
