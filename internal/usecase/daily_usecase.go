package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odra/finbook/internal/domain"
)

// BudgetStatus is the daily traffic light.
type BudgetStatus string

const (
	StatusOnTrack   BudgetStatus = "ON_TRACK"
	StatusStop      BudgetStatus = "STOP"
	StatusOverspent BudgetStatus = "OVERSPENT"
)

// CloseAction is the end-of-day settlement choice.
type CloseAction string

const (
	ActionSave     CloseAction = "SAVE"
	ActionRollover CloseAction = "ROLLOVER"
)

// DailyStatus is the allocator's output: the day-by-day safe-to-spend figure
// with its retrospective and projected companions.
type DailyStatus struct {
	Date                  time.Time       `json:"date"`
	TotalLimit            decimal.Decimal `json:"total_limit"`
	SpentThroughYesterday decimal.Decimal `json:"spent_through_yesterday"`
	SpentToday            decimal.Decimal `json:"spent_today"`
	RemainingDays         int             `json:"remaining_days"`
	RemainingAtDayStart   decimal.Decimal `json:"remaining_at_day_start"`
	BaseDailyBudget       decimal.Decimal `json:"base_daily_budget"`
	AvailableForToday     decimal.Decimal `json:"available_for_today"`
	ProjectedTomorrow     decimal.Decimal `json:"projected_tomorrow"`
	YesterdaySpent        decimal.Decimal `json:"yesterday_spent"`
	YesterdaySaved        decimal.Decimal `json:"yesterday_saved"`
	Status                BudgetStatus    `json:"status"`
}

// DailyUseCase converts the month's day-to-day budgets into a daily spending
// envelope and settles the day at close-out.
type DailyUseCase struct {
	txManager    TransactionManager
	budgets      BudgetRepository
	transactions TransactionRepository
	goals        GoalRepository
	ledger       *LedgerUseCase
	clock        Clock
}

// NewDailyUseCase creates a new DailyUseCase.
func NewDailyUseCase(
	txManager TransactionManager,
	budgets BudgetRepository,
	transactions TransactionRepository,
	goals GoalRepository,
	ledger *LedgerUseCase,
	clock Clock,
) *DailyUseCase {
	return &DailyUseCase{
		txManager:    txManager,
		budgets:      budgets,
		transactions: transactions,
		goals:        goals,
		ledger:       ledger,
		clock:        clock,
	}
}

// Status computes today's spending envelope. Divisions round toward negative
// infinity at two decimals so the figure never over-promises; aggregates
// with no matching rows count as zero.
func (uc *DailyUseCase) Status(ctx context.Context, ownerID string) (*DailyStatus, error) {
	now := uc.clock.Now()
	year, month, day := now.Date()

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, now.Location()).Day()
	todayStart := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1).Add(-time.Second)
	yesterdayEnd := todayStart.Add(-time.Second)
	twoDaysAgoEnd := todayStart.AddDate(0, 0, -1).Add(-time.Second)

	status := &DailyStatus{
		Date:                  todayStart,
		TotalLimit:            decimal.Zero,
		SpentThroughYesterday: decimal.Zero,
		SpentToday:            decimal.Zero,
		RemainingAtDayStart:   decimal.Zero,
		BaseDailyBudget:       decimal.Zero,
		AvailableForToday:     decimal.Zero,
		ProjectedTomorrow:     decimal.Zero,
		YesterdaySpent:        decimal.Zero,
		YesterdaySaved:        decimal.Zero,
		Status:                StatusOnTrack,
	}

	budgets, err := uc.budgets.ListDayToDay(ctx, ownerID, int(month), year)
	if err != nil {
		return nil, err
	}

	categoryIDs := make([]string, 0, len(budgets))
	for _, b := range budgets {
		status.TotalLimit = status.TotalLimit.Add(b.Limit)
		categoryIDs = append(categoryIDs, b.CategoryID)
	}

	remainingDays := daysInMonth - (day - 1)
	if remainingDays < 1 {
		remainingDays = 1
	}
	status.RemainingDays = remainingDays

	if len(categoryIDs) > 0 {
		if day > 1 {
			status.SpentThroughYesterday, err = uc.transactions.SumExpensesByCategories(ctx, ownerID, categoryIDs, monthStart, yesterdayEnd)
			if err != nil {
				return nil, err
			}

			status.YesterdaySpent, err = uc.transactions.SumExpensesByCategories(ctx, ownerID, categoryIDs, todayStart.AddDate(0, 0, -1), yesterdayEnd)
			if err != nil {
				return nil, err
			}
		}

		status.SpentToday, err = uc.transactions.SumExpensesByCategories(ctx, ownerID, categoryIDs, todayStart, todayEnd)
		if err != nil {
			return nil, err
		}
	}

	status.RemainingAtDayStart = status.TotalLimit.Sub(status.SpentThroughYesterday)

	if status.RemainingAtDayStart.IsPositive() {
		status.BaseDailyBudget = floorDiv(status.RemainingAtDayStart, remainingDays)
	}

	status.AvailableForToday = status.BaseDailyBudget.Sub(status.SpentToday)

	switch {
	case status.RemainingAtDayStart.IsNegative():
		status.Status = StatusOverspent
	case status.AvailableForToday.IsNegative():
		status.Status = StatusStop
	default:
		status.Status = StatusOnTrack
	}

	if remainingDays > 1 {
		remForTomorrow := status.RemainingAtDayStart.Sub(status.SpentToday)
		if remForTomorrow.IsPositive() {
			status.ProjectedTomorrow = floorDiv(remForTomorrow, remainingDays-1)
		}
	} else {
		// Last day of the month: whatever remains is pure surplus.
		status.ProjectedTomorrow = status.RemainingAtDayStart
	}

	if day > 2 && len(categoryIDs) > 0 {
		saved, err := uc.yesterdaySaved(ctx, ownerID, categoryIDs, status, monthStart, twoDaysAgoEnd, daysInMonth, day)
		if err != nil {
			return nil, err
		}
		status.YesterdaySaved = saved
	}

	return status, nil
}

// yesterdaySaved re-derives yesterday's own base daily budget from the
// month-to-two-days-ago spend and subtracts what was actually spent
// yesterday. Only meaningful from day 3 on; earlier there is no prior full
// day to evaluate.
func (uc *DailyUseCase) yesterdaySaved(ctx context.Context, ownerID string, categoryIDs []string, status *DailyStatus, monthStart, twoDaysAgoEnd time.Time, daysInMonth, day int) (decimal.Decimal, error) {
	spentThroughTwoDaysAgo, err := uc.transactions.SumExpensesByCategories(ctx, ownerID, categoryIDs, monthStart, twoDaysAgoEnd)
	if err != nil {
		return decimal.Zero, err
	}

	yRemainingDays := daysInMonth - (day - 2)
	if yRemainingDays < 1 {
		yRemainingDays = 1
	}

	yRemaining := status.TotalLimit.Sub(spentThroughTwoDaysAgo)

	yBase := decimal.Zero
	if yRemaining.IsPositive() {
		yBase = floorDiv(yRemaining, yRemainingDays)
	}

	return yBase.Sub(status.YesterdaySpent), nil
}

// floorDiv divides and rounds toward negative infinity at two decimals.
func floorDiv(amount decimal.Decimal, days int) decimal.Decimal {
	return amount.Div(decimal.NewFromInt(int64(days))).RoundFloor(2)
}

// CloseDayInput represents the end-of-day settlement request.
type CloseDayInput struct {
	Action          CloseAction
	Amount          decimal.Decimal
	GoalID          string
	SourceAccountID string
	CategoryID      string
}

// CloseDay settles the day. ROLLOVER is a no-op: unspent budget naturally
// rolls into tomorrow's computation because that computation is driven by
// month-to-date spend. SAVE moves the amount into a savings goal through a
// ledger expense, in one unit of work.
func (uc *DailyUseCase) CloseDay(ctx context.Context, ownerID string, input CloseDayInput) error {
	if input.Action == ActionRollover {
		return nil
	}

	if input.GoalID == "" || input.SourceAccountID == "" || input.CategoryID == "" {
		return domain.ErrSavingsTargetsRequired
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	goal, err := uc.goals.GetOwned(ctx, input.GoalID, ownerID)
	if err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	movement := domain.MovementFields{
		OwnerID:         ownerID,
		Kind:            domain.KindExpense,
		Amount:          input.Amount,
		ExchangeRate:    decimal.NewFromInt(1),
		Description:     "Daily close -> savings: " + goal.Name,
		SourceAccountID: input.SourceAccountID,
		CategoryID:      input.CategoryID,
	}

	if _, err := uc.ledger.createInTx(ctx, tx, movement, uc.clock.Now()); err != nil {
		return err
	}

	goal.AddSavings(input.Amount)
	goal.UpdatedAt = uc.clock.Now()

	if err := uc.goals.UpdateTx(ctx, tx, goal); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
