package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Ledger metrics
	TransactionsCreated  *prometheus.CounterVec
	TransactionsReverted prometheus.Counter
	TransactionErrors    *prometheus.CounterVec

	// Scheduler metrics
	SchedulerTicks     prometheus.Counter
	SchedulerSkipped   prometheus.Counter
	TemplatesProcessed prometheus.Counter
	TemplatesFailed    prometheus.Counter

	// Daily budget metrics
	DailyStatusRequests prometheus.Counter
	DailyCacheHits      prometheus.Counter
	DailyCloseouts      *prometheus.CounterVec

	// Debt metrics
	DebtPayments prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_transactions_created_total",
				Help: "Total number of transactions created by kind",
			},
			[]string{"kind"},
		),
		TransactionsReverted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_transactions_reverted_total",
			Help: "Total number of transactions updated or deleted with a balance revert",
		}),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_transaction_errors_total",
				Help: "Total number of rejected transaction requests by reason",
			},
			[]string{"reason"},
		),

		SchedulerTicks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_scheduler_ticks_total",
			Help: "Total number of recurring batch ticks run",
		}),
		SchedulerSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_scheduler_ticks_skipped_total",
			Help: "Total number of ticks skipped because another instance held the lock",
		}),
		TemplatesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_recurring_templates_processed_total",
			Help: "Total number of recurring templates materialized",
		}),
		TemplatesFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_recurring_templates_failed_total",
			Help: "Total number of recurring templates that failed to materialize",
		}),

		DailyStatusRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_daily_status_requests_total",
			Help: "Total number of daily status computations requested",
		}),
		DailyCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_daily_status_cache_hits_total",
			Help: "Total number of daily status requests served from cache",
		}),
		DailyCloseouts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_daily_closeouts_total",
				Help: "Total number of close-of-day settlements by action",
			},
			[]string{"action"},
		),

		DebtPayments: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_debt_payments_total",
			Help: "Total number of debt payments registered",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finbook_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
