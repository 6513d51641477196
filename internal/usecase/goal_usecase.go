package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/odra/finbook/internal/domain"
)

// GoalUseCase manages savings goals. The close-of-day SAVE action funds them
// through DailyUseCase.
type GoalUseCase struct {
	goals GoalRepository
	idGen IDGenerator
	clock Clock
}

// NewGoalUseCase creates a new GoalUseCase.
func NewGoalUseCase(goals GoalRepository, idGen IDGenerator, clock Clock) *GoalUseCase {
	return &GoalUseCase{goals: goals, idGen: idGen, clock: clock}
}

// CreateGoalInput represents input for creating a savings goal.
type CreateGoalInput struct {
	OwnerID      string
	Name         string
	TargetAmount *decimal.Decimal
}

// CreateGoal creates a goal with nothing saved yet.
func (uc *GoalUseCase) CreateGoal(ctx context.Context, input CreateGoalInput) (*domain.SavingsGoal, error) {
	if input.TargetAmount != nil && input.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	now := uc.clock.Now()
	goal := &domain.SavingsGoal{
		ID:            uc.idGen.Generate(),
		OwnerID:       input.OwnerID,
		Name:          input.Name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.goals.Create(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// ListGoals lists an owner's goals.
func (uc *GoalUseCase) ListGoals(ctx context.Context, ownerID string) ([]*domain.SavingsGoal, error) {
	return uc.goals.ListByOwner(ctx, ownerID)
}
