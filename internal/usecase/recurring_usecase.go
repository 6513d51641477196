package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/odra/finbook/internal/domain"
)

// automationMarker is appended to descriptions of materialized transactions
// so they are distinguishable from manual ones.
const automationMarker = " (auto)"

// RecurringUseCase manages recurring templates and runs the batch tick that
// materializes due templates through the ledger.
type RecurringUseCase struct {
	txManager  TransactionManager
	templates  RecurringRepository
	accounts   AccountRepository
	categories CategoryRepository
	ledger     *LedgerUseCase
	idGen      IDGenerator
	clock      Clock
	logger     zerolog.Logger
}

// NewRecurringUseCase creates a new RecurringUseCase.
func NewRecurringUseCase(
	txManager TransactionManager,
	templates RecurringRepository,
	accounts AccountRepository,
	categories CategoryRepository,
	ledger *LedgerUseCase,
	idGen IDGenerator,
	clock Clock,
	logger zerolog.Logger,
) *RecurringUseCase {
	return &RecurringUseCase{
		txManager:  txManager,
		templates:  templates,
		accounts:   accounts,
		categories: categories,
		ledger:     ledger,
		idGen:      idGen,
		clock:      clock,
		logger:     logger,
	}
}

// CreateTemplateInput represents input for creating a recurring template.
type CreateTemplateInput struct {
	OwnerID              string
	Kind                 domain.Kind
	Amount               decimal.Decimal
	ExchangeRate         decimal.Decimal
	Description          string
	SourceAccountID      string
	CategoryID           string
	DestinationAccountID string
	Frequency            domain.Frequency
	StartDate            time.Time
	EndDate              *time.Time
}

// CreateTemplate validates the template's relations and stores it with its
// first execution scheduled on the start date.
func (uc *RecurringUseCase) CreateTemplate(ctx context.Context, input CreateTemplateInput) (*domain.RecurringTemplate, error) {
	if !input.Frequency.Valid() {
		return nil, domain.ErrInvalidFrequency
	}

	rate := input.ExchangeRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}

	tpl := &domain.RecurringTemplate{
		ID: uc.idGen.Generate(),
		MovementFields: domain.MovementFields{
			OwnerID:              input.OwnerID,
			Kind:                 input.Kind,
			Amount:               input.Amount,
			ExchangeRate:         rate,
			Description:          input.Description,
			SourceAccountID:      input.SourceAccountID,
			CategoryID:           input.CategoryID,
			DestinationAccountID: input.DestinationAccountID,
		},
		Frequency:         input.Frequency,
		StartDate:         input.StartDate,
		NextExecutionDate: input.StartDate,
		EndDate:           input.EndDate,
		Active:            true,
		CreatedAt:         uc.clock.Now(),
		UpdatedAt:         uc.clock.Now(),
	}

	if err := tpl.MovementFields.Validate(); err != nil {
		return nil, err
	}

	if err := uc.checkRelations(ctx, tpl.MovementFields); err != nil {
		return nil, err
	}

	if err := uc.templates.Create(ctx, tpl); err != nil {
		return nil, err
	}

	return tpl, nil
}

// checkRelations verifies the referenced account(s) and category exist and
// belong to the template's owner.
func (uc *RecurringUseCase) checkRelations(ctx context.Context, m domain.MovementFields) error {
	if _, err := uc.accounts.GetOwned(ctx, m.SourceAccountID, m.OwnerID); err != nil {
		return err
	}

	if m.CategoryID != "" {
		if _, err := uc.categories.GetOwned(ctx, m.CategoryID, m.OwnerID); err != nil {
			return err
		}
	}

	if m.Kind == domain.KindTransfer {
		if _, err := uc.accounts.GetOwned(ctx, m.DestinationAccountID, m.OwnerID); err != nil {
			return err
		}
	}

	return nil
}

// GetTemplate retrieves an owned template.
func (uc *RecurringUseCase) GetTemplate(ctx context.Context, id, ownerID string) (*domain.RecurringTemplate, error) {
	return uc.templates.GetOwned(ctx, id, ownerID)
}

// ListTemplates lists an owner's templates.
func (uc *RecurringUseCase) ListTemplates(ctx context.Context, ownerID string) ([]*domain.RecurringTemplate, error) {
	return uc.templates.ListByOwner(ctx, ownerID)
}

// UpdateTemplateInput represents mutable template attributes.
type UpdateTemplateInput struct {
	Amount      decimal.Decimal
	Description string
	EndDate     *time.Time
	Active      *bool
}

// UpdateTemplate updates a template's amount, description, end date and
// active flag. Cadence and relations are fixed at creation.
func (uc *RecurringUseCase) UpdateTemplate(ctx context.Context, id, ownerID string, input UpdateTemplateInput) (*domain.RecurringTemplate, error) {
	tpl, err := uc.templates.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Amount.IsPositive() {
		tpl.Amount = input.Amount
	}
	if input.Description != "" {
		tpl.Description = input.Description
	}
	tpl.EndDate = input.EndDate
	if input.Active != nil {
		tpl.Active = *input.Active
	}
	tpl.UpdatedAt = uc.clock.Now()

	if err := uc.templates.Update(ctx, tpl); err != nil {
		return nil, err
	}

	return tpl, nil
}

// DeleteTemplate removes a template. Transactions already materialized from
// it are untouched.
func (uc *RecurringUseCase) DeleteTemplate(ctx context.Context, id, ownerID string) error {
	if _, err := uc.templates.GetOwned(ctx, id, ownerID); err != nil {
		return err
	}

	return uc.templates.Delete(ctx, id, ownerID)
}

// TickSummary reports the outcome of one batch tick.
type TickSummary struct {
	Candidates int
	Processed  int
	Failed     int
}

// RunBatchTick materializes every due template. Each template runs in its
// own unit of work: the created transaction and the advanced template commit
// together, so a failed materialization leaves the template due for the next
// tick. A single template failure never aborts the batch.
func (uc *RecurringUseCase) RunBatchTick(ctx context.Context) (TickSummary, error) {
	today := uc.clock.Now()

	candidates, err := uc.templates.ListDue(ctx, today)
	if err != nil {
		return TickSummary{}, err
	}

	summary := TickSummary{Candidates: len(candidates)}

	if len(candidates) == 0 {
		uc.logger.Debug().Msg("no recurring templates due")
		return summary, nil
	}

	uc.logger.Info().Int("candidates", len(candidates)).Msg("processing due recurring templates")

	for _, tpl := range candidates {
		if err := uc.runTemplate(ctx, tpl); err != nil {
			summary.Failed++
			uc.logger.Error().
				Err(err).
				Str("template_id", tpl.ID).
				Str("owner_id", tpl.OwnerID).
				Msg("recurring template failed, will retry next tick")

			continue
		}

		summary.Processed++
		uc.logger.Info().
			Str("template_id", tpl.ID).
			Bool("active", tpl.Active).
			Time("next_execution", tpl.NextExecutionDate).
			Msg("recurring template materialized")
	}

	return summary, nil
}

// runTemplate materializes one template and advances it by exactly one
// period, regardless of how many periods have elapsed. A backlog drains one
// period per tick.
func (uc *RecurringUseCase) runTemplate(ctx context.Context, tpl *domain.RecurringTemplate) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	movement := tpl.MovementFields
	movement.Description = tpl.Description + automationMarker

	if _, err := uc.ledger.createInTx(ctx, tx, movement, uc.clock.Now()); err != nil {
		return err
	}

	tpl.Advance()
	tpl.UpdatedAt = uc.clock.Now()

	if err := uc.templates.UpdateTx(ctx, tx, tpl); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
