// Package tracking derives progress, completion, and a display summary
// from a goal's persisted fields. One pure strategy per tracking type; the
// type tag is resolved exactly once, in Derive, so no consumer re-switches
// on it.
package tracking

import (
	"math"
	"time"

	"github.com/resolveapp/resolve/internal/dates"
	"github.com/resolveapp/resolve/internal/model"
	"github.com/resolveapp/resolve/internal/streak"
)

// State is the derived view of a goal at one instant. ProgressPct is
// always 0-100; Complete is the strategy's own notion of done.
type State struct {
	ProgressPct int    `json:"progressPct"`
	Complete    bool   `json:"complete"`
	Summary     string `json:"summary"`
}

type strategy func(g model.Goal, now time.Time) State

var strategies = map[model.TrackingType]strategy{
	model.TrackingFrequency:  deriveFrequency,
	model.TrackingCumulative: deriveCumulative,
	model.TrackingTarget:     deriveTarget,
	model.TrackingChecklist:  deriveChecklist,
	model.TrackingReflection: deriveReflection,
	model.TrackingLegacy:     deriveLegacy,
}

// Derive computes the state of g as of now. Unknown or absent tracking
// types fall back to the legacy strategy; pre-migration records depend on
// this and it must never error.
func Derive(g model.Goal, now time.Time) State {
	s, ok := strategies[g.Tracking.Normalize()]
	if !ok {
		s = deriveLegacy
	}
	return s(g, now)
}

// percent returns round(100*part/total) clamped to 0-100, with a zero or
// negative total yielding 0 rather than NaN.
func percent(part, total float64) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(100 * part / total))
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// Frequency goals are perpetual habits: progress is check-ins in the
// current period window over the target count, and they never complete.
func deriveFrequency(g model.Goal, now time.Time) State {
	count := dates.CountInPeriod(g.CheckInDates(), string(g.FrequencyPeriod), now)
	return State{
		ProgressPct: percent(float64(count), float64(g.TargetFrequency)),
		Complete:    false,
		Summary:     frequencySummary(g, count, now),
	}
}

func deriveCumulative(g model.Goal, _ time.Time) State {
	return State{
		ProgressPct: percent(g.CurrentValue, g.TargetValue),
		Complete:    g.TargetValue > 0 && g.CurrentValue >= g.TargetValue,
		Summary:     cumulativeSummary(g),
	}
}

// Target goals are direction-aware: losing weight counts down, saving up
// counts up. Movement the wrong way shows 0, never negative progress.
func deriveTarget(g model.Goal, _ time.Time) State {
	goingDown := g.TargetValue < g.StartingValue
	total := math.Abs(g.TargetValue - g.StartingValue)

	rightDirection := g.CurrentValue >= g.StartingValue
	complete := g.CurrentValue >= g.TargetValue
	if goingDown {
		rightDirection = g.CurrentValue <= g.StartingValue
		complete = g.CurrentValue <= g.TargetValue
	}

	pct := 0
	if rightDirection {
		pct = percent(math.Abs(g.CurrentValue-g.StartingValue), total)
	}

	return State{
		ProgressPct: pct,
		Complete:    complete,
		Summary:     targetSummary(g, complete),
	}
}

// Checklist progress is amount-weighted when any milestone carries an
// amount, count-weighted otherwise. An empty list is 0 and never complete.
func deriveChecklist(g model.Goal, _ time.Time) State {
	if len(g.Milestones) == 0 {
		return State{Summary: checklistSummary(g)}
	}

	var doneAmount, totalAmount float64
	done := 0
	for _, m := range g.Milestones {
		totalAmount += m.Amount
		if m.Completed {
			done++
			doneAmount += m.Amount
		}
	}

	var pct int
	if totalAmount > 0 {
		pct = percent(doneAmount, totalAmount)
	} else {
		pct = percent(float64(done), float64(len(g.Milestones)))
	}

	return State{
		ProgressPct: pct,
		Complete:    done == len(g.Milestones),
		Summary:     checklistSummary(g),
	}
}

// Reflection goals only anchor journal entries; they carry no progress
// and never complete.
func deriveReflection(g model.Goal, _ time.Time) State {
	return State{Summary: reflectionSummary(g)}
}

// Legacy goals predate tracking types: the stored progress field is the
// source of truth, stepped directly by the owner.
func deriveLegacy(g model.Goal, _ time.Time) State {
	pct := g.Progress
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return State{
		ProgressPct: pct,
		Complete:    g.Progress >= 100,
		Summary:     legacySummary(pct),
	}
}

// CurrentStreak and LongestStreak are re-exported here so consumers of
// derived state reach one package. Both are recomputed per call.
func CurrentStreak(g model.Goal, now time.Time) int {
	return streak.Current(g.CheckInDates(), now)
}

func LongestStreak(g model.Goal) int {
	return streak.Longest(g.CheckInDates())
}
