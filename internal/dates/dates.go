// Package dates holds the local-calendar-date primitives every derivation
// in the engine is built on. A date is a "YYYY-MM-DD" string taken from a
// time.Time in its own location. All comparisons happen on these strings;
// mixing in a UTC-derived instant is how streaks silently corrupt, so
// nothing outside this package formats or parses a date itself.
package dates

import (
	"sort"
	"time"
)

const Layout = "2006-01-02"

// FromTime formats t as a local calendar date in t's own location.
func FromTime(t time.Time) string {
	return t.Format(Layout)
}

// Parse returns the date at UTC midnight. Only used internally for day
// arithmetic; the zero offset cancels out because every date goes through
// the same parse.
func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

// AddDays shifts a date by n calendar days.
func AddDays(s string, n int) string {
	t, err := Parse(s)
	if err != nil {
		return s
	}
	return t.AddDate(0, 0, n).Format(Layout)
}

// DaysBetween returns b - a in whole calendar days (positive when b is
// after a). Invalid input yields 0.
func DaysBetween(a, b string) int {
	ta, err := Parse(a)
	if err != nil {
		return 0
	}
	tb, err := Parse(b)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// Distinct dedupes a date list and returns it sorted ascending. The raw
// check-in log allows duplicate same-day entries and arbitrary order.
func Distinct(dateList []string) []string {
	seen := make(map[string]struct{}, len(dateList))
	out := make([]string, 0, len(dateList))
	for _, d := range dateList {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// PeriodStart returns the first date of the period window containing now:
// the day itself, the Sunday starting its week, or the first of its month.
func PeriodStart(now time.Time, period string) string {
	switch period {
	case "week":
		start := now.AddDate(0, 0, -int(now.Weekday()))
		return start.Format(Layout)
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(Layout)
	default: // day
		return now.Format(Layout)
	}
}

// CountInPeriod counts distinct dates falling inside the current period
// window, start through today inclusive. ISO date strings order
// lexicographically, so plain string comparison is exact.
func CountInPeriod(dateList []string, period string, now time.Time) int {
	start := PeriodStart(now, period)
	today := FromTime(now)

	count := 0
	for _, d := range Distinct(dateList) {
		if d >= start && d <= today {
			count++
		}
	}
	return count
}
