package store

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/resolveapp/resolve/internal/dates"
	"github.com/resolveapp/resolve/internal/model"
	"github.com/resolveapp/resolve/internal/tracking"
)

// Patch carries optional field updates for UpdateGoal. Nil means "leave
// alone". Progress is only honored for legacy goals, whose stored
// percentage is the source of truth.
type Patch struct {
	Title           *string
	Description     *string
	Category        *model.Category
	Notes           *string
	TargetFrequency *int
	FrequencyPeriod *model.FrequencyPeriod
	TargetValue     *float64
	StartingValue   *float64
	Unit            *string
	Deadline        *string
	Reminder        *string
	Progress        *int
}

// AddGoal fills required defaults, prepends the goal, and persists it.
// The store accepts whatever it is given; input contracts live at the
// API boundary.
func (s *Store) AddGoal(g model.Goal) model.Goal {
	now := s.now()
	g.ID = uuid.New().String()
	g.CreatedAt = now
	g.UpdatedAt = now
	g.CompletedAt = nil
	if g.Milestones == nil {
		g.Milestones = []model.Milestone{}
	}
	if g.Journal == nil {
		g.Journal = []model.JournalEntry{}
	}
	if g.CheckIns == nil {
		g.CheckIns = []model.CheckIn{}
	}
	for i := range g.Milestones {
		if g.Milestones[i].ID == "" {
			g.Milestones[i].ID = uuid.New().String()
		}
	}

	s.mu.Lock()
	s.goals = append([]model.Goal{g.Clone()}, s.goals...)
	s.mu.Unlock()

	if g.Reminder != "" && !tracking.Derive(g, now).Complete {
		s.reminders.Schedule(g)
	}
	s.persist(g)
	return g
}

// UpdateGoal merges a patch onto the goal, bumps UpdatedAt, and persists.
// Touching the reminder or deadline reschedules (or cancels) the external
// reminder as a side effect of the field diff.
func (s *Store) UpdateGoal(id string, p Patch) (model.Goal, error) {
	return s.mutate(id, func(g *model.Goal) error {
		if p.Title != nil {
			g.Title = *p.Title
		}
		if p.Description != nil {
			g.Description = *p.Description
		}
		if p.Category != nil {
			g.Category = *p.Category
		}
		if p.Notes != nil {
			g.Notes = *p.Notes
		}
		if p.TargetFrequency != nil {
			g.TargetFrequency = *p.TargetFrequency
		}
		if p.FrequencyPeriod != nil {
			g.FrequencyPeriod = *p.FrequencyPeriod
		}
		if p.TargetValue != nil {
			g.TargetValue = *p.TargetValue
		}
		if p.StartingValue != nil {
			g.StartingValue = *p.StartingValue
		}
		if p.Unit != nil {
			g.Unit = *p.Unit
		}
		if p.Deadline != nil {
			g.Deadline = *p.Deadline
		}
		if p.Reminder != nil {
			g.Reminder = *p.Reminder
		}
		if p.Progress != nil && g.Tracking.Normalize() == model.TrackingLegacy {
			g.Progress = clampPct(*p.Progress)
		}
		return nil
	}, mutateOpts{reminderDiff: p.Reminder != nil || p.Deadline != nil})
}

// DeleteGoal removes the goal from memory, deletes it remotely, and
// cancels its reminder. There is no soft delete.
func (s *Store) DeleteGoal(id string) error {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrGoalNotFound
	}
	s.goals = append(s.goals[:i], s.goals[i+1:]...)
	s.mu.Unlock()

	s.reminders.Cancel(id)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.repo.Delete(id)
		if err != nil {
			slog.Error("goal delete failed remotely, removed locally", "goal_id", id, "error", err)
		}
	}()
	return nil
}

// ReorderGoals splices the in-memory list and persists the resulting id
// order to the local ordering store only. Remote records are untouched:
// order is a presentation concern layered on top.
func (s *Store) ReorderGoals(from, to int) error {
	s.mu.Lock()
	if from < 0 || from >= len(s.goals) || to < 0 || to >= len(s.goals) {
		s.mu.Unlock()
		return ErrBadIndex
	}
	g := s.goals[from]
	rest := append(s.goals[:from:from], s.goals[from+1:]...)
	s.goals = append(rest[:to:to], append([]model.Goal{g}, rest[to:]...)...)
	ids := make([]string, len(s.goals))
	for i := range s.goals {
		ids[i] = s.goals[i].ID
	}
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.orderRepo.SetOrder(ids)
		if err != nil {
			slog.Error("goal order save failed", "error", err)
		}
	}()
	return nil
}

// ToggleMilestone flips one milestone. Legacy goals recompute the stored
// progress from the milestone count right here; typed goals leave the
// field to their strategy cache so the two paths never fight over it.
func (s *Store) ToggleMilestone(goalID, milestoneID string) (model.Goal, error) {
	return s.mutate(goalID, func(g *model.Goal) error {
		now := s.now()
		found := false
		for i := range g.Milestones {
			if g.Milestones[i].ID != milestoneID {
				continue
			}
			found = true
			m := &g.Milestones[i]
			m.Completed = !m.Completed
			if m.Completed {
				m.CompletedAt = &now
			} else {
				m.CompletedAt = nil
			}
			break
		}
		if !found {
			return ErrMilestoneNotFound
		}
		if g.Tracking.Normalize() == model.TrackingLegacy {
			done := 0
			for _, m := range g.Milestones {
				if m.Completed {
					done++
				}
			}
			g.Progress = clampPct(int(math.Round(float64(done) / float64(len(g.Milestones)) * 100)))
		} else {
			g.Progress = tracking.Derive(*g, now).ProgressPct
		}
		return nil
	}, mutateOpts{})
}

// AddCheckIn appends a check-in dated today (local) unless the input
// carries its own date. Progress is not recomputed here: frequency
// progress is derived at read time, never cached.
func (s *Store) AddCheckIn(goalID string, in model.CheckIn) (model.Goal, error) {
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	if in.Date == "" {
		in.Date = dates.FromTime(s.now())
	}
	return s.mutate(goalID, func(g *model.Goal) error {
		g.CheckIns = append(g.CheckIns, in)
		return nil
	}, mutateOpts{})
}

func (s *Store) RemoveCheckIn(goalID, checkInID string) (model.Goal, error) {
	return s.mutate(goalID, func(g *model.Goal) error {
		for i := range g.CheckIns {
			if g.CheckIns[i].ID == checkInID {
				g.CheckIns = append(g.CheckIns[:i], g.CheckIns[i+1:]...)
				return nil
			}
		}
		return ErrCheckInNotFound
	}, mutateOpts{quiet: true})
}

// UpdateCumulativeValue sets the running total, clamped to zero, and
// refreshes the cached progress percentage.
func (s *Store) UpdateCumulativeValue(goalID string, value float64) (model.Goal, error) {
	if value < 0 {
		value = 0
	}
	return s.mutate(goalID, func(g *model.Goal) error {
		g.CurrentValue = value
		g.Progress = tracking.Derive(*g, s.now()).ProgressPct
		return nil
	}, mutateOpts{progressFeedback: true})
}

// UpdateTargetValue sets the current reading of a target goal. Values
// are not clamped: moving past the start the wrong way is legal input
// and simply derives zero progress.
func (s *Store) UpdateTargetValue(goalID string, value float64) (model.Goal, error) {
	return s.mutate(goalID, func(g *model.Goal) error {
		g.CurrentValue = value
		g.Progress = tracking.Derive(*g, s.now()).ProgressPct
		return nil
	}, mutateOpts{progressFeedback: true})
}

// AddJournalEntry prepends an entry, newest first.
func (s *Store) AddJournalEntry(goalID, content, mood string) (model.Goal, error) {
	entry := model.JournalEntry{
		ID:        uuid.New().String(),
		Content:   content,
		Mood:      mood,
		CreatedAt: s.now(),
	}
	return s.mutate(goalID, func(g *model.Goal) error {
		g.Journal = append([]model.JournalEntry{entry}, g.Journal...)
		return nil
	}, mutateOpts{quiet: true})
}

func (s *Store) DeleteJournalEntry(goalID, entryID string) (model.Goal, error) {
	return s.mutate(goalID, func(g *model.Goal) error {
		for i := range g.Journal {
			if g.Journal[i].ID == entryID {
				g.Journal = append(g.Journal[:i], g.Journal[i+1:]...)
				return nil
			}
		}
		return ErrJournalEntryNotFound
	}, mutateOpts{quiet: true})
}

type mutateOpts struct {
	reminderDiff     bool // reschedule/cancel the reminder after the merge
	progressFeedback bool // fire progress feedback when not completing
	quiet            bool // no routine feedback
}

// mutate applies apply to the goal under the lock, stamps UpdatedAt,
// detects the completion edge, commits, then runs side effects and the
// background persist. An error from apply aborts before anything is
// committed. The celebration fires only on the false→true edge, and
// CompletedAt once set never auto-clears on regression.
func (s *Store) mutate(id string, apply func(*model.Goal) error, opts mutateOpts) (model.Goal, error) {
	now := s.now()

	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return model.Goal{}, ErrGoalNotFound
	}

	next := s.goals[i].Clone()
	wasComplete := tracking.Derive(next, now).Complete
	err := apply(&next)
	if err != nil {
		s.mu.Unlock()
		return model.Goal{}, err
	}
	next.UpdatedAt = now
	isComplete := tracking.Derive(next, now).Complete

	completedEdge := !wasComplete && isComplete
	if completedEdge {
		t := now
		next.CompletedAt = &t
	}

	s.goals[i] = next.Clone()
	s.mu.Unlock()

	s.runSideEffects(next, completedEdge, isComplete, opts)
	s.persist(next)
	return next, nil
}

func (s *Store) runSideEffects(g model.Goal, completedEdge, isComplete bool, opts mutateOpts) {
	if completedEdge {
		s.feedback.Celebrate()
		s.reminders.Cancel(g.ID)
		return
	}
	if opts.reminderDiff {
		if g.Reminder != "" && !isComplete {
			s.reminders.Schedule(g)
		} else {
			s.reminders.Cancel(g.ID)
		}
	}
	if opts.progressFeedback {
		s.feedback.ProgressFeedback()
	} else if !opts.quiet {
		s.feedback.LightFeedback()
	}
}

func clampPct(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// CurrentStreak and LongestStreak expose per-goal streaks as of now.
func (s *Store) CurrentStreak(goalID string) (int, error) {
	g, err := s.Goal(goalID)
	if err != nil {
		return 0, err
	}
	return tracking.CurrentStreak(g, s.now()), nil
}

func (s *Store) LongestStreak(goalID string) (int, error) {
	g, err := s.Goal(goalID)
	if err != nil {
		return 0, err
	}
	return tracking.LongestStreak(g), nil
}

// SetNow overrides the store clock. Tests only.
func (s *Store) SetNow(now func() time.Time) {
	s.now = now
}
