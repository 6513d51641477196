package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/odra/finbook/internal/domain"
	"github.com/odra/finbook/internal/usecase"
	"github.com/odra/finbook/internal/usecase/mocks"
)

func newGoalUseCase(t *testing.T) (*usecase.GoalUseCase, *mocks.MockGoalRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(testNow).AnyTimes()

	goals := mocks.NewMockGoalRepository()
	return usecase.NewGoalUseCase(goals, mocks.NewMockIDGenerator(), clock), goals
}

func TestCreateGoal(t *testing.T) {
	uc, _ := newGoalUseCase(t)

	goal, err := uc.CreateGoal(context.Background(), usecase.CreateGoalInput{
		OwnerID:      testOwner,
		Name:         "Vacation",
		TargetAmount: ptrDec("12000"),
	})
	require.NoError(t, err)

	assertDec(t, "0", goal.CurrentAmount, "starts empty")
	assert.Equal(t, testNow, goal.CreatedAt)
}

func TestCreateGoal_OpenEnded(t *testing.T) {
	uc, _ := newGoalUseCase(t)

	goal, err := uc.CreateGoal(context.Background(), usecase.CreateGoalInput{
		OwnerID: testOwner,
		Name:    "Rainy day",
	})
	require.NoError(t, err)
	assert.Nil(t, goal.TargetAmount)
}

func TestCreateGoal_RejectsNonPositiveTarget(t *testing.T) {
	uc, _ := newGoalUseCase(t)

	_, err := uc.CreateGoal(context.Background(), usecase.CreateGoalInput{
		OwnerID:      testOwner,
		Name:         "Broken",
		TargetAmount: ptrDec("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestListGoals_ScopedToOwner(t *testing.T) {
	uc, goals := newGoalUseCase(t)
	goals.Seed(
		&domain.SavingsGoal{ID: "g-1", OwnerID: testOwner, Name: "Vacation"},
		&domain.SavingsGoal{ID: "g-2", OwnerID: "other-owner", Name: "Foreign"},
	)

	out, err := uc.ListGoals(context.Background(), testOwner)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "g-1", out[0].ID)
}
