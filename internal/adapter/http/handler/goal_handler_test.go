package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/odra/finbook/internal/adapter/http/dto"
	"github.com/odra/finbook/internal/adapter/http/handler"
	"github.com/odra/finbook/internal/domain"
	"github.com/odra/finbook/internal/usecase"
)

type fakeGoalService struct {
	createFunc func(ctx context.Context, input usecase.CreateGoalInput) (*domain.SavingsGoal, error)
	listFunc   func(ctx context.Context, ownerID string) ([]*domain.SavingsGoal, error)
}

func (f *fakeGoalService) CreateGoal(ctx context.Context, input usecase.CreateGoalInput) (*domain.SavingsGoal, error) {
	return f.createFunc(ctx, input)
}

func (f *fakeGoalService) ListGoals(ctx context.Context, ownerID string) ([]*domain.SavingsGoal, error) {
	return f.listFunc(ctx, ownerID)
}

func goalRoutes(h *handler.GoalHandler) func(r chi.Router) {
	return func(r chi.Router) {
		r.Route("/goals", func(r chi.Router) {
			r.Post("/", h.Create)
			r.Get("/", h.List)
		})
	}
}

func TestGoalCreate(t *testing.T) {
	svc := &fakeGoalService{
		createFunc: func(ctx context.Context, input usecase.CreateGoalInput) (*domain.SavingsGoal, error) {
			if input.OwnerID != testOwner {
				t.Fatalf("owner id = %q, want %q", input.OwnerID, testOwner)
			}
			return &domain.SavingsGoal{
				ID:            "goal-1",
				OwnerID:       input.OwnerID,
				Name:          input.Name,
				TargetAmount:  input.TargetAmount,
				CurrentAmount: decimal.Zero,
			}, nil
		},
	}
	h := handler.NewGoalHandler(svc)

	req := ownedRequest(http.MethodPost, "/api/v1/goals", `{"name":"Vacation","target_amount":"1500"}`)
	rec := serve(goalRoutes(h), req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp dto.GoalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.TargetAmount == nil || !resp.TargetAmount.Equal(decimal.RequireFromString("1500")) {
		t.Fatalf("target = %v, want 1500", resp.TargetAmount)
	}
	if !resp.CurrentAmount.IsZero() {
		t.Fatalf("current = %s, want 0", resp.CurrentAmount)
	}
}

func TestGoalCreateNegativeTarget(t *testing.T) {
	svc := &fakeGoalService{
		createFunc: func(ctx context.Context, input usecase.CreateGoalInput) (*domain.SavingsGoal, error) {
			return nil, domain.ErrInvalidAmount
		},
	}
	h := handler.NewGoalHandler(svc)

	req := ownedRequest(http.MethodPost, "/api/v1/goals", `{"name":"Vacation","target_amount":"-5"}`)
	rec := serve(goalRoutes(h), req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGoalList(t *testing.T) {
	target := decimal.RequireFromString("1500")
	svc := &fakeGoalService{
		listFunc: func(ctx context.Context, ownerID string) ([]*domain.SavingsGoal, error) {
			return []*domain.SavingsGoal{
				{ID: "goal-1", OwnerID: ownerID, Name: "Vacation", TargetAmount: &target, CurrentAmount: decimal.RequireFromString("250")},
				{ID: "goal-2", OwnerID: ownerID, Name: "Rainy day", CurrentAmount: decimal.Zero},
			}, nil
		},
	}
	h := handler.NewGoalHandler(svc)

	rec := serve(goalRoutes(h), ownedRequest(http.MethodGet, "/api/v1/goals", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp []dto.GoalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("len = %d, want 2", len(resp))
	}
	if resp[1].TargetAmount != nil {
		t.Fatalf("open-ended goal has target %s", resp[1].TargetAmount)
	}
}
