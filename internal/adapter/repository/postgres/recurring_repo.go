package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odra/finbook/internal/domain"
	"github.com/odra/finbook/internal/usecase"
)

const recurringColumns = `id, owner_id, kind, amount, exchange_rate, description,
	source_account_id, category_id, destination_account_id, frequency,
	start_date, next_execution_date, end_date, active, created_at, updated_at`

// RecurringRepository implements usecase.RecurringRepository.
type RecurringRepository struct {
	pool *pgxpool.Pool
}

// NewRecurringRepository creates a new RecurringRepository.
func NewRecurringRepository(pool *pgxpool.Pool) *RecurringRepository {
	return &RecurringRepository{pool: pool}
}

// Create creates a new recurring template.
func (r *RecurringRepository) Create(ctx context.Context, tpl *domain.RecurringTemplate) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO recurring_templates (`+recurringColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		tpl.ID,
		tpl.OwnerID,
		string(tpl.Kind),
		decimalToNumeric(tpl.Amount),
		decimalToNumeric(tpl.ExchangeRate),
		tpl.Description,
		tpl.SourceAccountID,
		tpl.CategoryID,
		tpl.DestinationAccountID,
		string(tpl.Frequency),
		timeToPgTimestamptz(tpl.StartDate),
		timeToPgTimestamptz(tpl.NextExecutionDate),
		timePtrToPgTimestamptz(tpl.EndDate),
		tpl.Active,
		timeToPgTimestamptz(tpl.CreatedAt),
		timeToPgTimestamptz(tpl.UpdatedAt),
	)

	return err
}

// GetOwned retrieves a template scoped to its owner.
func (r *RecurringRepository) GetOwned(ctx context.Context, id, ownerID string) (*domain.RecurringTemplate, error) {
	return scanTemplate(r.pool.QueryRow(ctx, `
		SELECT `+recurringColumns+`
		FROM recurring_templates
		WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	))
}

// Update persists template changes outside a unit of work.
func (r *RecurringRepository) Update(ctx context.Context, tpl *domain.RecurringTemplate) error {
	_, err := r.pool.Exec(ctx, updateTemplateSQL, updateTemplateArgs(tpl)...)

	return err
}

// UpdateTx persists template changes inside the unit of work that also holds
// the materialized transaction.
func (r *RecurringRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, tpl *domain.RecurringTemplate) error {
	_, err := tx.(*Tx).PgxTx().Exec(ctx, updateTemplateSQL, updateTemplateArgs(tpl)...)

	return err
}

const updateTemplateSQL = `
	UPDATE recurring_templates
	SET amount = $2, description = $3, next_execution_date = $4, end_date = $5,
		active = $6, updated_at = $7
	WHERE id = $1`

func updateTemplateArgs(tpl *domain.RecurringTemplate) []any {
	return []any{
		tpl.ID,
		decimalToNumeric(tpl.Amount),
		tpl.Description,
		timeToPgTimestamptz(tpl.NextExecutionDate),
		timePtrToPgTimestamptz(tpl.EndDate),
		tpl.Active,
		timeToPgTimestamptz(tpl.UpdatedAt),
	}
}

// Delete removes an owned template.
func (r *RecurringRepository) Delete(ctx context.Context, id, ownerID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM recurring_templates WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)

	return err
}

// ListByOwner lists an owner's templates.
func (r *RecurringRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.RecurringTemplate, error) {
	return r.list(ctx, `
		SELECT `+recurringColumns+`
		FROM recurring_templates
		WHERE owner_id = $1
		ORDER BY created_at, id`,
		ownerID,
	)
}

// ListDue returns active templates across all owners whose next execution
// date is on or before the given day.
func (r *RecurringRepository) ListDue(ctx context.Context, dueOn time.Time) ([]*domain.RecurringTemplate, error) {
	return r.list(ctx, `
		SELECT `+recurringColumns+`
		FROM recurring_templates
		WHERE active AND next_execution_date <= $1
		ORDER BY next_execution_date, id`,
		timeToPgTimestamptz(dueOn),
	)
}

func (r *RecurringRepository) list(ctx context.Context, query string, args ...any) ([]*domain.RecurringTemplate, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*domain.RecurringTemplate
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}

	return templates, rows.Err()
}

func scanTemplate(row pgx.Row) (*domain.RecurringTemplate, error) {
	var (
		tpl       domain.RecurringTemplate
		kind      string
		amount    pgtype.Numeric
		rate      pgtype.Numeric
		frequency string
		startDate pgtype.Timestamptz
		nextDate  pgtype.Timestamptz
		endDate   pgtype.Timestamptz
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&tpl.ID,
		&tpl.OwnerID,
		&kind,
		&amount,
		&rate,
		&tpl.Description,
		&tpl.SourceAccountID,
		&tpl.CategoryID,
		&tpl.DestinationAccountID,
		&frequency,
		&startDate,
		&nextDate,
		&endDate,
		&tpl.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}

		return nil, err
	}

	tpl.Kind = domain.Kind(kind)
	tpl.Amount = numericToDecimal(amount)
	tpl.ExchangeRate = numericToDecimal(rate)
	tpl.Frequency = domain.Frequency(frequency)
	tpl.StartDate = startDate.Time
	tpl.NextExecutionDate = nextDate.Time
	tpl.EndDate = pgTimestamptzToTimePtr(endDate)
	tpl.CreatedAt = createdAt.Time
	tpl.UpdatedAt = updatedAt.Time

	return &tpl, nil
}
