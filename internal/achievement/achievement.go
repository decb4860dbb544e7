// Package achievement evaluates badge predicates over the whole goal
// collection. Nothing is persisted: every call recomputes from scratch,
// so a badge can re-lock when progress is taken away. That is the
// intended behavior, not a bug.
package achievement

import (
	"time"

	"github.com/resolveapp/resolve/internal/model"
	"github.com/resolveapp/resolve/internal/tracking"
)

type definition struct {
	id          string
	title       string
	description string
	icon        string
	unlocked    func(e evalContext) bool
}

type evalContext struct {
	goals []model.Goal
	now   time.Time
}

func (e evalContext) anyProgressAtLeast(pct int) bool {
	for _, g := range e.goals {
		if tracking.Derive(g, e.now).ProgressPct >= pct {
			return true
		}
	}
	return false
}

func (e evalContext) completeCount() int {
	n := 0
	for _, g := range e.goals {
		if tracking.Derive(g, e.now).Complete {
			n++
		}
	}
	return n
}

func (e evalContext) journalTotal() int {
	n := 0
	for _, g := range e.goals {
		n += len(g.Journal)
	}
	return n
}

func (e evalContext) checkInTotal() int {
	n := 0
	for _, g := range e.goals {
		n += len(g.CheckIns)
	}
	return n
}

func (e evalContext) bestCurrentStreak() int {
	best := 0
	for _, g := range e.goals {
		if s := tracking.CurrentStreak(g, e.now); s > best {
			best = s
		}
	}
	return best
}

var definitions = []definition{
	{
		id: "first-goal", title: "Dreamer", icon: "🌱",
		description: "Create your first resolution",
		unlocked:    func(e evalContext) bool { return len(e.goals) >= 1 },
	},
	{
		id: "first-steps", title: "First Steps", icon: "👣",
		description: "Reach 10% on any resolution",
		unlocked:    func(e evalContext) bool { return e.anyProgressAtLeast(10) },
	},
	{
		id: "halfway", title: "Halfway There", icon: "⛰️",
		description: "Reach 50% on any resolution",
		unlocked:    func(e evalContext) bool { return e.anyProgressAtLeast(50) },
	},
	{
		id: "finisher", title: "Finisher", icon: "🏁",
		description: "Complete a resolution",
		unlocked:    func(e evalContext) bool { return e.completeCount() >= 1 },
	},
	{
		id: "perfectionist", title: "Perfectionist", icon: "🏆",
		description: "Complete every resolution, with at least three in play",
		unlocked: func(e evalContext) bool {
			return len(e.goals) >= 3 && e.completeCount() == len(e.goals)
		},
	},
	{
		id: "journaler", title: "Journaler", icon: "📓",
		description: "Write 20 journal entries across all resolutions",
		unlocked:    func(e evalContext) bool { return e.journalTotal() >= 20 },
	},
	{
		id: "streak-week", title: "On a Roll", icon: "🔥",
		description: "Hold a 7-day check-in streak",
		unlocked:    func(e evalContext) bool { return e.bestCurrentStreak() >= 7 },
	},
	{
		id: "habit-builder", title: "Habit Builder", icon: "📅",
		description: "Log 30 check-ins in total",
		unlocked:    func(e evalContext) bool { return e.checkInTotal() >= 30 },
	},
}

// Evaluate returns every badge with its live unlocked state as of now.
func Evaluate(goals []model.Goal, now time.Time) []model.Achievement {
	e := evalContext{goals: goals, now: now}
	out := make([]model.Achievement, len(definitions))
	for i, d := range definitions {
		out[i] = model.Achievement{
			ID:          d.id,
			Title:       d.title,
			Description: d.description,
			Icon:        d.icon,
			Unlocked:    d.unlocked(e),
		}
	}
	return out
}
