package domain

import "time"

// Frequency is the cadence of a recurring template.
type Frequency string

const (
	FreqDaily      Frequency = "DAILY"
	FreqWeekly     Frequency = "WEEKLY"
	FreqMonthly    Frequency = "MONTHLY"
	FreqBimonthly  Frequency = "BIMONTHLY"
	FreqQuarterly  Frequency = "QUARTERLY"
	FreqSemiannual Frequency = "SEMIANNUAL"
	FreqAnnual     Frequency = "ANNUAL"
	FreqOnce       Frequency = "ONCE"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FreqDaily, FreqWeekly, FreqMonthly, FreqBimonthly,
		FreqQuarterly, FreqSemiannual, FreqAnnual, FreqOnce:
		return true
	}
	return false
}

// Next returns the execution date one period after from, or false for ONCE.
// Month-based steps clamp to the target month's last day (Jan 31 + 1 month
// is Feb 28), matching calendar billing behavior rather than Go's
// normalizing date arithmetic.
func (f Frequency) Next(from time.Time) (time.Time, bool) {
	switch f {
	case FreqDaily:
		return from.AddDate(0, 0, 1), true
	case FreqWeekly:
		return from.AddDate(0, 0, 7), true
	case FreqMonthly:
		return addMonthsClamped(from, 1), true
	case FreqBimonthly:
		return addMonthsClamped(from, 2), true
	case FreqQuarterly:
		return addMonthsClamped(from, 3), true
	case FreqSemiannual:
		return addMonthsClamped(from, 6), true
	case FreqAnnual:
		return addMonthsClamped(from, 12), true
	default: // ONCE
		return time.Time{}, false
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	if last := daysInMonth(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// RecurringTemplate is a transaction blueprint replayed on a cadence.
type RecurringTemplate struct {
	ID string
	MovementFields
	Frequency         Frequency
	StartDate         time.Time
	NextExecutionDate time.Time
	EndDate           *time.Time
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Advance moves the template one period forward after a successful
// materialization. ONCE templates deactivate; so do templates whose next
// date would pass the configured end date. Exactly one period is consumed
// per call regardless of accumulated backlog.
func (t *RecurringTemplate) Advance() {
	next, ok := t.Frequency.Next(t.NextExecutionDate)
	if !ok {
		t.Active = false
		return
	}
	if t.EndDate != nil && next.After(*t.EndDate) {
		t.Active = false
		return
	}
	t.NextExecutionDate = next
}

// Due reports whether the template should run on the given day.
func (t *RecurringTemplate) Due(today time.Time) bool {
	return t.Active && !t.NextExecutionDate.After(today)
}
