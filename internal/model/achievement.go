package model

// Achievement is a badge derived live from the goal collection. There is
// no stored unlocked flag: evaluation always runs from scratch, so losing
// progress can re-lock a badge.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}
