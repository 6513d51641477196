package handler

import (
	"context"
	"net/http"

	"github.com/odra/finbook/internal/adapter/http/dto"
	"github.com/odra/finbook/internal/adapter/http/middleware"
	"github.com/odra/finbook/internal/domain"
	"github.com/odra/finbook/internal/usecase"
)

// GoalService defines the savings goal operations the handler depends on.
type GoalService interface {
	CreateGoal(ctx context.Context, input usecase.CreateGoalInput) (*domain.SavingsGoal, error)
	ListGoals(ctx context.Context, ownerID string) ([]*domain.SavingsGoal, error)
}

// GoalHandler handles savings goal endpoints.
type GoalHandler struct {
	service GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(service GoalService) *GoalHandler {
	return &GoalHandler{service: service}
}

// Create handles POST /api/v1/goals.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGoalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ownerID := middleware.OwnerIDFromContext(r.Context())

	goal, err := h.service.CreateGoal(r.Context(), req.ToUseCaseInput(ownerID))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.GoalFromDomain(goal))
}

// List handles GET /api/v1/goals.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerIDFromContext(r.Context())

	goals, err := h.service.ListGoals(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalsFromDomain(goals))
}
