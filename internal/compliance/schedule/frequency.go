// Package schedule computes inspection due dates from recurrence cadences.
// Pure functions only: no I/O, deterministic given anchor and frequency.
package schedule

import (
	"time"

	id "complytrack/pkg/domain"
)

// NextDueDate returns the next inspection due date for the given cadence,
// anchored at the supplied date. An unknown or unset frequency defaults to
// monthly so a misconfigured requirement still gets a finite due date rather
// than never coming due.
//
// Calendar arithmetic follows time.AddDate normalization: Jan 31 + 1 month
// resolves to Mar 2 (or Mar 3 in non-leap years). This rollover rule is
// pinned by tests since date libraries disagree on it.
func NextDueDate(frequency id.Frequency, anchor time.Time) time.Time {
	switch frequency {
	case id.FrequencyDaily:
		return anchor.AddDate(0, 0, 1)
	case id.FrequencyWeekly:
		return anchor.AddDate(0, 0, 7)
	case id.FrequencyMonthly:
		return anchor.AddDate(0, 1, 0)
	case id.FrequencyQuarterly:
		return anchor.AddDate(0, 3, 0)
	case id.FrequencyAnnually:
		return anchor.AddDate(1, 0, 0)
	default:
		return anchor.AddDate(0, 1, 0)
	}
}

// DateOnly truncates a timestamp to midnight UTC. Due-date comparisons and
// day-count arithmetic operate at date granularity, so two timestamps on the
// same calendar day compare equal.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole days from a to b at date granularity,
// negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
