package domain

import "time"

// StatementCutoff computes the end of the most recently closed billing cycle
// for a credit account, given its closing day and the current date.
//
// If today's day-of-month is on or before the closing day the cycle is still
// open, so the payable statement closed on the previous month's closing day
// (clamped to that month's last day). Otherwise this month's cycle has
// closed and the cutoff is the closing day of the current month.
// The cutoff is the last second of the closing day.
func StatementCutoff(closingDay int, today time.Time) time.Time {
	year, month, day := today.Date()

	if day <= closingDay {
		prev := time.Date(year, month, 1, 0, 0, 0, 0, today.Location()).AddDate(0, -1, 0)
		year, month = prev.Year(), prev.Month()
	}

	cutoffDay := closingDay
	if last := daysInMonth(year, month); cutoffDay > last {
		cutoffDay = last
	}

	return time.Date(year, month, cutoffDay, 23, 59, 59, 0, today.Location())
}
