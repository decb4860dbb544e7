// Package streak derives consecutive-day runs from a check-in log. Both
// derivations are pure functions of (log, today) and are recomputed on
// every read; "today" moves between calls, so a cached streak field would
// go stale the moment midnight passes.
package streak

import (
	"time"

	"github.com/resolveapp/resolve/internal/dates"
)

// Current returns the run of consecutive days ending at today or
// yesterday. A most recent check-in older than yesterday means the streak
// is broken and the result is 0. The log may be unsorted and may contain
// duplicate dates.
func Current(dateList []string, now time.Time) int {
	distinct := dates.Distinct(dateList)
	if len(distinct) == 0 {
		return 0
	}

	today := dates.FromTime(now)
	yesterday := dates.AddDays(today, -1)

	latest := distinct[len(distinct)-1]
	if latest != today && latest != yesterday {
		return 0
	}

	count := 1
	for i := len(distinct) - 1; i > 0; i-- {
		if dates.DaysBetween(distinct[i-1], distinct[i]) != 1 {
			break
		}
		count++
	}
	return count
}

// Longest returns the longest consecutive-day run anywhere in the log.
func Longest(dateList []string) int {
	distinct := dates.Distinct(dateList)
	if len(distinct) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(distinct); i++ {
		switch dates.DaysBetween(distinct[i-1], distinct[i]) {
		case 1:
			run++
		case 0:
			// duplicate slipped through, ignore
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
