package handler

import (
	"net/http"
	"time"

	"github.com/resolveapp/resolve/internal/achievement"
	"github.com/resolveapp/resolve/internal/store"
	"github.com/resolveapp/resolve/internal/tracking"
)

type AchievementHandler struct {
	store *store.Store
}

func NewAchievementHandler(s *store.Store) *AchievementHandler {
	return &AchievementHandler{store: s}
}

// List evaluates every badge live. Unlocked state is never stored, so a
// regressed collection re-locks here too.
func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, achievement.Evaluate(h.store.Goals(), time.Now()))
}

type statsResponse struct {
	Goals          int     `json:"goals"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completionRate"`
	CheckIns       int     `json:"checkIns"`
	JournalEntries int     `json:"journalEntries"`
	BestStreak     int     `json:"bestStreak"`
}

// Stats is a cheap aggregate over the collection.
func (h *AchievementHandler) Stats(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	goals := h.store.Goals()

	var resp statsResponse
	resp.Goals = len(goals)
	for _, g := range goals {
		if tracking.Derive(g, now).Complete {
			resp.Completed++
		}
		resp.CheckIns += len(g.CheckIns)
		resp.JournalEntries += len(g.Journal)
		if s := tracking.CurrentStreak(g, now); s > resp.BestStreak {
			resp.BestStreak = s
		}
	}
	if resp.Goals > 0 {
		resp.CompletionRate = float64(resp.Completed) / float64(resp.Goals)
	}
	writeJSON(w, http.StatusOK, resp)
}
