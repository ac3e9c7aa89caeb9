package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "complytrack/pkg/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDate_Cadences(t *testing.T) {
	anchor := date(2024, time.January, 15)

	cases := []struct {
		name      string
		frequency id.Frequency
		want      time.Time
	}{
		{"daily", id.FrequencyDaily, date(2024, time.January, 16)},
		{"weekly", id.FrequencyWeekly, date(2024, time.January, 22)},
		{"monthly", id.FrequencyMonthly, date(2024, time.February, 15)},
		{"quarterly", id.FrequencyQuarterly, date(2024, time.April, 15)},
		{"annually", id.FrequencyAnnually, date(2025, time.January, 15)},
		{"unknown defaults to monthly", id.Frequency("fortnightly"), date(2024, time.February, 15)},
		{"unset defaults to monthly", id.Frequency(""), date(2024, time.February, 15)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextDueDate(tc.frequency, anchor))
		})
	}
}

// TestNextDueDate_MonthOverflow pins the calendar rollover rule: AddDate
// normalizes out-of-range days instead of clamping to month end.
func TestNextDueDate_MonthOverflow(t *testing.T) {
	t.Run("Jan 31 plus one month normalizes into March", func(t *testing.T) {
		got := NextDueDate(id.FrequencyMonthly, date(2024, time.January, 31))
		// 2024 is a leap year: Jan 31 + 1 month = Feb 31 -> Mar 2
		assert.Equal(t, date(2024, time.March, 2), got)
	})

	t.Run("non-leap year rolls one day further", func(t *testing.T) {
		got := NextDueDate(id.FrequencyMonthly, date(2023, time.January, 31))
		assert.Equal(t, date(2023, time.March, 3), got)
	})

	t.Run("leap day plus one year normalizes to Mar 1", func(t *testing.T) {
		got := NextDueDate(id.FrequencyAnnually, date(2024, time.February, 29))
		assert.Equal(t, date(2025, time.March, 1), got)
	})

	t.Run("Nov 30 plus quarter spills past leap February", func(t *testing.T) {
		got := NextDueDate(id.FrequencyQuarterly, date(2023, time.November, 30))
		// Feb 30 normalizes to Mar 1 in a leap year
		assert.Equal(t, date(2024, time.March, 1), got)
	})
}

// TestNextDueDate_Monotonic verifies the property that the due date is
// strictly after the anchor and repeated application keeps increasing.
func TestNextDueDate_Monotonic(t *testing.T) {
	frequencies := []id.Frequency{
		id.FrequencyDaily, id.FrequencyWeekly, id.FrequencyMonthly,
		id.FrequencyQuarterly, id.FrequencyAnnually,
	}
	for _, f := range frequencies {
		t.Run(f.String(), func(t *testing.T) {
			current := date(2024, time.January, 31)
			for i := 0; i < 12; i++ {
				next := NextDueDate(f, current)
				assert.True(t, next.After(current), "%s: %v not after %v", f, next, current)
				current = next
			}
		})
	}
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2024, time.March, 1, 23, 59, 10, 0, time.UTC)
	assert.Equal(t, date(2024, time.March, 1), DateOnly(ts))
}

func TestDaysBetween(t *testing.T) {
	t.Run("forward", func(t *testing.T) {
		assert.Equal(t, 15, DaysBetween(date(2024, time.February, 15), date(2024, time.March, 1)))
	})
	t.Run("backward is negative", func(t *testing.T) {
		assert.Equal(t, -15, DaysBetween(date(2024, time.March, 1), date(2024, time.February, 15)))
	})
	t.Run("intra-day difference is zero", func(t *testing.T) {
		a := time.Date(2024, time.March, 1, 1, 0, 0, 0, time.UTC)
		b := time.Date(2024, time.March, 1, 23, 0, 0, 0, time.UTC)
		assert.Equal(t, 0, DaysBetween(a, b))
	})
}
