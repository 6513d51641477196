package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/odra/finbook/internal/infrastructure/metrics"
	"github.com/odra/finbook/internal/usecase"
)

// ticker runs one batch tick. Implemented by usecase.RecurringUseCase.
type ticker interface {
	RunBatchTick(ctx context.Context) (usecase.TickSummary, error)
}

// TickLock serializes ticks across server instances. Implemented by
// redis.TickLock.
type TickLock interface {
	TryAcquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// Runner fires the recurring batch tick once at startup, so a stopped server
// catches up on missed days, and then daily at the configured wall-clock
// time.
type Runner struct {
	recurring ticker
	lock      TickLock
	retrier   usecase.Retrier
	metrics   *metrics.Metrics
	clock     usecase.Clock
	logger    zerolog.Logger

	hour   int
	minute int
}

// New creates a Runner firing at tickTime, formatted HH:MM.
func New(
	recurring ticker,
	lock TickLock,
	retrier usecase.Retrier,
	m *metrics.Metrics,
	clock usecase.Clock,
	logger zerolog.Logger,
	tickTime string,
) (*Runner, error) {
	hour, minute, err := parseTickTime(tickTime)
	if err != nil {
		return nil, err
	}

	return &Runner{
		recurring: recurring,
		lock:      lock,
		retrier:   retrier,
		metrics:   m,
		clock:     clock,
		logger:    logger,
		hour:      hour,
		minute:    minute,
	}, nil
}

// Run blocks until ctx is cancelled, ticking at startup and then once per
// day.
func (r *Runner) Run(ctx context.Context) {
	r.Tick(ctx)

	for {
		wait := time.Until(r.nextTick(r.clock.Now()))

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
			r.Tick(ctx)
		}
	}
}

// Tick runs one guarded batch tick. When another instance holds the lock the
// tick is skipped; that instance is already doing the work.
func (r *Runner) Tick(ctx context.Context) {
	if r.lock != nil {
		acquired, err := r.lock.TryAcquire(ctx)
		if err != nil {
			r.logger.Error().Err(err).Msg("tick lock unavailable, running unguarded")
		} else if !acquired {
			r.metrics.SchedulerSkipped.Inc()
			r.logger.Info().Msg("tick already running elsewhere, skipping")
			return
		} else {
			defer func() {
				if err := r.lock.Release(ctx); err != nil {
					r.logger.Error().Err(err).Msg("failed to release tick lock")
				}
			}()
		}
	}

	r.metrics.SchedulerTicks.Inc()

	var summary usecase.TickSummary
	err := r.retrier.Retry(ctx, func() error {
		var tickErr error
		summary, tickErr = r.recurring.RunBatchTick(ctx)
		return tickErr
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("recurring batch tick failed")
		return
	}

	r.metrics.TemplatesProcessed.Add(float64(summary.Processed))
	r.metrics.TemplatesFailed.Add(float64(summary.Failed))

	r.logger.Info().
		Int("candidates", summary.Candidates).
		Int("processed", summary.Processed).
		Int("failed", summary.Failed).
		Msg("recurring batch tick finished")
}

func (r *Runner) nextTick(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), r.hour, r.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func parseTickTime(s string) (hour, minute int, err error) {
	if _, err := time.Parse("15:04", s); err != nil {
		return 0, 0, fmt.Errorf("invalid tick time %q: %w", s, err)
	}

	_, _ = fmt.Sscanf(s, "%d:%d", &hour, &minute)

	return hour, minute, nil
}
