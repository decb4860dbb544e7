// Package reminder schedules daily goal reminders on a cron runner.
// Delivery is out of scope: the scheduler hands a due goal to a Notifier
// and forgets about it.
package reminder

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/resolveapp/resolve/internal/model"
	"github.com/resolveapp/resolve/internal/tracking"
)

// Notifier delivers a due reminder. Implementations are external
// collaborators (push, chat, email); the default just logs.
type Notifier interface {
	Notify(g model.Goal)
}

type LogNotifier struct{}

func (LogNotifier) Notify(g model.Goal) {
	slog.Info("reminder due", "goal_id", g.ID, "title", g.Title)
}

// Scheduler keeps one cron entry per goal with an enabled reminder.
type Scheduler struct {
	cron     *cron.Cron
	notifier Notifier

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

func NewScheduler(notifier Notifier) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		notifier: notifier,
		entries:  make(map[string]cron.EntryID),
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// cronSpec converts a "HH:MM" wall-clock reminder into a daily cron spec.
func cronSpec(reminder string) (string, error) {
	parts := strings.SplitN(reminder, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("bad reminder time %q", reminder)
	}
	t, err := time.Parse("15:04", reminder)
	if err != nil {
		return "", fmt.Errorf("bad reminder time %q: %w", reminder, err)
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}

// Schedule (re)registers the goal's daily reminder. A goal without a
// reminder time is just cancelled.
func (s *Scheduler) Schedule(g model.Goal) {
	s.Cancel(g.ID)
	if g.Reminder == "" {
		return
	}

	spec, err := cronSpec(g.Reminder)
	if err != nil {
		slog.Warn("reminder not scheduled", "goal_id", g.ID, "error", err)
		return
	}

	goal := g.Clone()
	id, err := s.cron.AddFunc(spec, func() {
		s.notifier.Notify(goal)
	})
	if err != nil {
		slog.Warn("reminder not scheduled", "goal_id", g.ID, "error", err)
		return
	}

	s.mu.Lock()
	s.entries[g.ID] = id
	s.mu.Unlock()
}

func (s *Scheduler) Cancel(goalID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.entries[goalID]
	if !ok {
		return
	}
	s.cron.Remove(id)
	delete(s.entries, goalID)
}

// SyncAll rebuilds the schedule from the full collection: reminders run
// only for goals that have one enabled and are not yet complete.
func (s *Scheduler) SyncAll(goals []model.Goal) {
	s.mu.Lock()
	for goalID, id := range s.entries {
		s.cron.Remove(id)
		delete(s.entries, goalID)
	}
	s.mu.Unlock()

	now := time.Now()
	for _, g := range goals {
		if g.Reminder == "" || tracking.Derive(g, now).Complete {
			continue
		}
		s.Schedule(g)
	}
}
