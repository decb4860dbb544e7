package model

import (
	"time"
)

// JournalEntry is a free-form dated note on a goal, newest first.
// Immutable once created except for deletion.
type JournalEntry struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
