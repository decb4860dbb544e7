package model

import (
	"time"
)

// TrackingType selects the strategy that derives progress and completion
// for a goal. The empty string is valid: goals created before tracking
// types existed carry no type and fall back to TrackingLegacy.
type TrackingType string

const (
	TrackingFrequency  TrackingType = "frequency"
	TrackingCumulative TrackingType = "cumulative"
	TrackingTarget     TrackingType = "target"
	TrackingChecklist  TrackingType = "checklist"
	TrackingReflection TrackingType = "reflection"
	TrackingLegacy     TrackingType = "legacy"
)

// Normalize maps the absent tracking type to legacy. Pre-migration records
// have no tracking type stored and must derive through the legacy path.
func (t TrackingType) Normalize() TrackingType {
	if t == "" {
		return TrackingLegacy
	}
	return t
}

func (t TrackingType) Valid() bool {
	switch t.Normalize() {
	case TrackingFrequency, TrackingCumulative, TrackingTarget,
		TrackingChecklist, TrackingReflection, TrackingLegacy:
		return true
	}
	return false
}

type FrequencyPeriod string

const (
	PeriodDay   FrequencyPeriod = "day"
	PeriodWeek  FrequencyPeriod = "week"
	PeriodMonth FrequencyPeriod = "month"
)

type Category string

const (
	CategoryHealth   Category = "health"
	CategoryFitness  Category = "fitness"
	CategoryFinance  Category = "finance"
	CategoryCareer   Category = "career"
	CategoryLearning Category = "learning"
	CategoryPersonal Category = "personal"
	CategoryOther    Category = "other"
)

// SyncStatus records the persistence state of the in-memory copy of a goal.
// Mutations are optimistic: memory changes first, the repository write runs
// in the background and only flips this flag on failure.
type SyncStatus string

const (
	SyncClean   SyncStatus = "clean"
	SyncPending SyncStatus = "pending"
	SyncFailed  SyncStatus = "failed"
)

// Goal is a user resolution with one tracking strategy. Only the fields
// matching Tracking carry meaning; the rest stay zero-valued.
//
// Progress is a stored 0-100 percentage. For legacy goals it is the source
// of truth, mutated directly; for typed goals it is a display cache
// recomputed by the owning strategy on each mutation.
type Goal struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Category    Category     `json:"category,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	Tracking    TrackingType `json:"trackingType,omitempty"`
	Progress    int          `json:"progress"`

	// frequency
	TargetFrequency int             `json:"targetFrequency,omitempty"`
	FrequencyPeriod FrequencyPeriod `json:"frequencyPeriod,omitempty"`

	// cumulative and target
	TargetValue   float64 `json:"targetValue,omitempty"`
	StartingValue float64 `json:"startingValue,omitempty"`
	CurrentValue  float64 `json:"currentValue,omitempty"`
	Unit          string  `json:"unit,omitempty"`

	Milestones []Milestone    `json:"milestones,omitempty"`
	Journal    []JournalEntry `json:"journal,omitempty"`
	CheckIns   []CheckIn      `json:"checkIns,omitempty"`

	Deadline string `json:"deadline,omitempty"` // local calendar date "YYYY-MM-DD"
	Reminder string `json:"reminder,omitempty"` // "HH:MM" local wall-clock time, empty = off

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// Maintained by the store, not persisted to the repository.
	SyncStatus SyncStatus `json:"syncStatus,omitempty"`
}

// Clone returns a deep copy. The store hands out copies so no caller can
// mutate the in-memory collection in place.
func (g Goal) Clone() Goal {
	c := g
	c.Milestones = append([]Milestone(nil), g.Milestones...)
	c.Journal = append([]JournalEntry(nil), g.Journal...)
	c.CheckIns = append([]CheckIn(nil), g.CheckIns...)
	if g.CompletedAt != nil {
		t := *g.CompletedAt
		c.CompletedAt = &t
	}
	return c
}

// CheckInDates returns the raw local-date strings of the check-in log,
// duplicates and all. Derivations dedupe as needed.
func (g Goal) CheckInDates() []string {
	dates := make([]string, len(g.CheckIns))
	for i, c := range g.CheckIns {
		dates[i] = c.Date
	}
	return dates
}
