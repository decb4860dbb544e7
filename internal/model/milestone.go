package model

import (
	"time"
)

// Milestone is a sub-task of a goal. Any tracking type may carry
// milestones; checklist goals derive their whole progress from them.
// Amount is optional and enables dollar-style weighted aggregation.
type Milestone struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	DueDate     string     `json:"dueDate,omitempty"` // local calendar date
	Amount      float64    `json:"amount,omitempty"`
}
