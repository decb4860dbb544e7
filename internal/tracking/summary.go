package tracking

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/resolveapp/resolve/internal/model"
)

// printer formats numbers with locale grouping, e.g. 2000 -> "2,000".
var printer = message.NewPrinter(language.AmericanEnglish)

func periodLabel(p model.FrequencyPeriod) string {
	switch p {
	case model.PeriodWeek:
		return "this week"
	case model.PeriodMonth:
		return "this month"
	default:
		return "today"
	}
}

func frequencySummary(g model.Goal, count int, now time.Time) string {
	s := fmt.Sprintf("%d/%d %s", count, g.TargetFrequency, periodLabel(g.FrequencyPeriod))
	if cur := CurrentStreak(g, now); cur > 1 {
		s += fmt.Sprintf(" · %d day streak", cur)
	}
	return s
}

// amount drops a trailing ".0" so whole values print as integers while
// fractional ones keep their decimals.
func amount(v float64) string {
	if v == float64(int64(v)) {
		return printer.Sprint(number.Decimal(int64(v)))
	}
	return printer.Sprint(number.Decimal(v))
}

func withUnit(s, unit string) string {
	if unit == "" {
		return s
	}
	return s + " " + unit
}

func cumulativeSummary(g model.Goal) string {
	return withUnit(amount(g.CurrentValue)+" / "+amount(g.TargetValue), g.Unit)
}

func targetSummary(g model.Goal, complete bool) string {
	if complete {
		return withUnit("reached "+amount(g.TargetValue), g.Unit)
	}
	return withUnit(amount(g.CurrentValue)+" → "+amount(g.TargetValue), g.Unit)
}

func checklistSummary(g model.Goal) string {
	var doneAmount, totalAmount float64
	done := 0
	for _, m := range g.Milestones {
		totalAmount += m.Amount
		if m.Completed {
			done++
			doneAmount += m.Amount
		}
	}

	// Dollar-style summary when any milestone carries an amount.
	if totalAmount > 0 {
		return "$" + amount(doneAmount) + " / $" + amount(totalAmount)
	}
	return fmt.Sprintf("%d/%d milestones", done, len(g.Milestones))
}

func reflectionSummary(g model.Goal) string {
	n := len(g.Journal)
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

func legacySummary(pct int) string {
	return fmt.Sprintf("%d%%", pct)
}

// MilestoneSummary is shown for any goal carrying milestones, regardless
// of tracking type.
func MilestoneSummary(g model.Goal) string {
	if len(g.Milestones) == 0 {
		return ""
	}
	done := 0
	for _, m := range g.Milestones {
		if m.Completed {
			done++
		}
	}
	return fmt.Sprintf("%d/%d", done, len(g.Milestones))
}
