package achievement

import (
	"fmt"
	"testing"
	"time"

	"github.com/resolveapp/resolve/internal/dates"
	"github.com/resolveapp/resolve/internal/model"
)

var now = time.Date(2026, 1, 6, 12, 0, 0, 0, time.UTC)

func unlockedSet(t *testing.T, goals []model.Goal) map[string]bool {
	t.Helper()
	out := make(map[string]bool)
	for _, a := range Evaluate(goals, now) {
		out[a.ID] = a.Unlocked
	}
	return out
}

func TestEmptyCollection(t *testing.T) {
	got := unlockedSet(t, nil)
	if len(got) != len(definitions) {
		t.Fatalf("badge count = %d, want %d", len(got), len(definitions))
	}
	for id, unlocked := range got {
		if unlocked {
			t.Errorf("%s unlocked with no goals", id)
		}
	}
}

func TestProgressBadges(t *testing.T) {
	goals := []model.Goal{{
		Title:        "save",
		Tracking:     model.TrackingCumulative,
		TargetValue:  100,
		CurrentValue: 55,
	}}
	got := unlockedSet(t, goals)

	for _, id := range []string{"first-goal", "first-steps", "halfway"} {
		if !got[id] {
			t.Errorf("%s locked, want unlocked", id)
		}
	}
	if got["finisher"] {
		t.Error("finisher unlocked at 55%")
	}
}

func TestFinisherAndPerfectionist(t *testing.T) {
	done := func(title string) model.Goal {
		return model.Goal{
			Title:        title,
			Tracking:     model.TrackingCumulative,
			TargetValue:  10,
			CurrentValue: 10,
		}
	}

	// Two complete goals: finisher yes, perfectionist needs three.
	got := unlockedSet(t, []model.Goal{done("a"), done("b")})
	if !got["finisher"] {
		t.Error("finisher locked with a complete goal")
	}
	if got["perfectionist"] {
		t.Error("perfectionist unlocked below three goals")
	}

	got = unlockedSet(t, []model.Goal{done("a"), done("b"), done("c")})
	if !got["perfectionist"] {
		t.Error("perfectionist locked with three complete goals")
	}

	// One lagging goal locks it again.
	lagging := model.Goal{Title: "d", Tracking: model.TrackingCumulative, TargetValue: 10}
	got = unlockedSet(t, []model.Goal{done("a"), done("b"), done("c"), lagging})
	if got["perfectionist"] {
		t.Error("perfectionist stayed unlocked with an incomplete goal")
	}
}

func TestJournalerCountsAcrossGoals(t *testing.T) {
	entries := func(n int) []model.JournalEntry {
		out := make([]model.JournalEntry, n)
		for i := range out {
			out[i] = model.JournalEntry{ID: fmt.Sprintf("e%d", i)}
		}
		return out
	}
	goals := []model.Goal{
		{Title: "a", Journal: entries(12)},
		{Title: "b", Journal: entries(8)},
	}
	if !unlockedSet(t, goals)["journaler"] {
		t.Error("journaler locked at 20 entries total")
	}
	goals[1].Journal = entries(7)
	if unlockedSet(t, goals)["journaler"] {
		t.Error("journaler unlocked at 19 entries")
	}
}

func TestStreakWeek(t *testing.T) {
	checkIns := func(days int) []model.CheckIn {
		today := dates.FromTime(now)
		out := make([]model.CheckIn, days)
		for i := range out {
			out[i] = model.CheckIn{ID: fmt.Sprintf("c%d", i), Date: dates.AddDays(today, -i)}
		}
		return out
	}

	goals := []model.Goal{{Title: "run", Tracking: model.TrackingFrequency, CheckIns: checkIns(7)}}
	if !unlockedSet(t, goals)["streak-week"] {
		t.Error("streak-week locked after 7 consecutive days")
	}

	goals[0].CheckIns = checkIns(6)
	if unlockedSet(t, goals)["streak-week"] {
		t.Error("streak-week unlocked at 6 days")
	}
}

func TestHabitBuilderCountsRawCheckIns(t *testing.T) {
	// 30 check-ins even on the same date count: the badge rewards logging,
	// not distinct days.
	out := make([]model.CheckIn, 30)
	for i := range out {
		out[i] = model.CheckIn{ID: fmt.Sprintf("c%d", i), Date: "2026-01-06"}
	}
	goals := []model.Goal{{Title: "run", CheckIns: out}}
	if !unlockedSet(t, goals)["habit-builder"] {
		t.Error("habit-builder locked at 30 check-ins")
	}
}
