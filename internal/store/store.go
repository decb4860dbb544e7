// Package store owns the in-memory goal collection and its mutation API.
//
// Writes are optimistic: every mutation updates the in-memory slice
// synchronously, so callers always read their own writes, and the
// repository write runs on a background goroutine. A failed write never
// rolls memory back; it flips the goal's sync status to failed and is
// retried explicitly via RetryFailed.
package store

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/resolveapp/resolve/internal/model"
	"github.com/resolveapp/resolve/internal/repository"
	"github.com/resolveapp/resolve/internal/tracking"
)

var (
	ErrGoalNotFound         = errors.New("goal not found")
	ErrMilestoneNotFound    = errors.New("milestone not found")
	ErrCheckInNotFound      = errors.New("check-in not found")
	ErrJournalEntryNotFound = errors.New("journal entry not found")
	ErrBadIndex             = errors.New("reorder index out of range")
)

// ReminderScheduler is the contract for the external reminder
// collaborator. Calls are advisory and never awaited.
type ReminderScheduler interface {
	Schedule(g model.Goal)
	Cancel(goalID string)
	SyncAll(goals []model.Goal)
}

// Feedback is the contract for haptic/celebration feedback. Purely
// advisory; failures are the collaborator's problem.
type Feedback interface {
	Celebrate()
	LightFeedback()
	ProgressFeedback()
}

type Store struct {
	mu    sync.Mutex
	goals []model.Goal

	repo      repository.GoalRepository
	orderRepo repository.OrderRepository
	reminders ReminderScheduler
	feedback  Feedback

	// now is swappable so derivations are testable at a fixed instant.
	now func() time.Time

	wg sync.WaitGroup
}

func New(
	repo repository.GoalRepository,
	orderRepo repository.OrderRepository,
	reminders ReminderScheduler,
	feedback Feedback,
) *Store {
	return &Store{
		repo:      repo,
		orderRepo: orderRepo,
		reminders: reminders,
		feedback:  feedback,
		now:       time.Now,
	}
}

// Init loads the collection from the repository, applies the locally
// persisted presentation order, and resyncs reminders. Must run before
// any mutation.
func (s *Store) Init() error {
	goals, err := s.repo.Load()
	if err != nil {
		return err
	}

	order, err := s.orderRepo.Order()
	if err != nil {
		slog.Warn("goal order unavailable, keeping load order", "error", err)
		order = nil
	}

	s.mu.Lock()
	s.goals = applyOrder(goals, order)
	for i := range s.goals {
		s.goals[i].SyncStatus = model.SyncClean
	}
	snapshot := cloneAll(s.goals)
	s.mu.Unlock()

	s.reminders.SyncAll(snapshot)
	slog.Info("goal store initialized", "goals", len(snapshot))
	return nil
}

// Close drains in-flight persistence writes.
func (s *Store) Close() {
	s.wg.Wait()
}

// applyOrder sorts goals by the saved id order; ids missing from the
// order keep their load position, after the ordered ones.
func applyOrder(goals []model.Goal, order []string) []model.Goal {
	if len(order) == 0 {
		return goals
	}
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}

	ordered := make([]model.Goal, 0, len(goals))
	var rest []model.Goal
	for _, g := range goals {
		if _, ok := pos[g.ID]; ok {
			ordered = append(ordered, g)
		} else {
			rest = append(rest, g)
		}
	}
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && pos[ordered[j-1].ID] > pos[ordered[j].ID]; j-- {
			ordered[j-1], ordered[j] = ordered[j], ordered[j-1]
		}
	}
	return append(ordered, rest...)
}

func cloneAll(goals []model.Goal) []model.Goal {
	out := make([]model.Goal, len(goals))
	for i, g := range goals {
		out[i] = g.Clone()
	}
	return out
}

// Goals returns a deep copy of the collection in presentation order.
func (s *Store) Goals() []model.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.goals)
}

// Goal returns a deep copy of one goal.
func (s *Store) Goal(id string) (model.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return model.Goal{}, ErrGoalNotFound
	}
	return s.goals[i].Clone(), nil
}

// Derive returns the strategy-derived state of one goal as of now.
func (s *Store) Derive(id string) (tracking.State, error) {
	g, err := s.Goal(id)
	if err != nil {
		return tracking.State{}, err
	}
	return tracking.Derive(g, s.now()), nil
}

// index locates a goal by id. Caller holds the lock.
func (s *Store) index(id string) int {
	for i := range s.goals {
		if s.goals[i].ID == id {
			return i
		}
	}
	return -1
}

// persist saves one goal in the background. Memory is already committed;
// a failure is logged and marks the goal failed, nothing is rolled back.
func (s *Store) persist(g model.Goal) {
	s.setSyncStatus(g.ID, model.SyncPending)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.repo.Save(g)
		if err != nil {
			slog.Error("goal save failed, local copy kept", "goal_id", g.ID, "error", err)
			s.setSyncStatus(g.ID, model.SyncFailed)
			return
		}
		s.setSyncStatus(g.ID, model.SyncClean)
	}()
}

func (s *Store) setSyncStatus(id string, status model.SyncStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i >= 0 {
		s.goals[i].SyncStatus = status
	}
}

// RetryFailed re-persists every goal whose last background write failed.
func (s *Store) RetryFailed() int {
	s.mu.Lock()
	var retry []model.Goal
	for i := range s.goals {
		if s.goals[i].SyncStatus == model.SyncFailed {
			retry = append(retry, s.goals[i].Clone())
		}
	}
	s.mu.Unlock()

	for _, g := range retry {
		s.persist(g)
	}
	return len(retry)
}
