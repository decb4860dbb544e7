package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/resolveapp/resolve/internal/model"
	"github.com/resolveapp/resolve/internal/store"
	"github.com/resolveapp/resolve/internal/tracking"
	"github.com/resolveapp/resolve/internal/validation"
)

type GoalHandler struct {
	store *store.Store
}

func NewGoalHandler(s *store.Store) *GoalHandler {
	return &GoalHandler{store: s}
}

// goalView is a goal plus everything derived from it at read time.
// Streaks and frequency progress are never cached, so the view is built
// fresh per request.
type goalView struct {
	model.Goal
	State            tracking.State `json:"state"`
	CurrentStreak    int            `json:"currentStreak"`
	LongestStreak    int            `json:"longestStreak"`
	MilestoneSummary string         `json:"milestoneSummary,omitempty"`
}

func newGoalView(g model.Goal, now time.Time) goalView {
	return goalView{
		Goal:             g,
		State:            tracking.Derive(g, now),
		CurrentStreak:    tracking.CurrentStreak(g, now),
		LongestStreak:    tracking.LongestStreak(g),
		MilestoneSummary: tracking.MilestoneSummary(g),
	}
}

func (h *GoalHandler) respondGoal(w http.ResponseWriter, status int, g model.Goal) {
	writeJSON(w, status, newGoalView(g, time.Now()))
}

func (h *GoalHandler) notFound(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, store.ErrGoalNotFound):
		writeError(w, http.StatusNotFound, "goal not found")
	case errors.Is(err, store.ErrMilestoneNotFound):
		writeError(w, http.StatusNotFound, "milestone not found")
	case errors.Is(err, store.ErrCheckInNotFound):
		writeError(w, http.StatusNotFound, "check-in not found")
	case errors.Is(err, store.ErrJournalEntryNotFound):
		writeError(w, http.StatusNotFound, "journal entry not found")
	default:
		return false
	}
	return true
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	goals := h.store.Goals()
	views := make([]goalView, len(goals))
	for i, g := range goals {
		views[i] = newGoalView(g, now)
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.store.Goal(r.PathValue("id"))
	if err != nil {
		if !h.notFound(w, err) {
			writeError(w, http.StatusInternalServerError, "failed to load goal")
		}
		return
	}
	h.respondGoal(w, http.StatusOK, g)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var g model.Goal
	if !decodeJSON(w, r, &g) {
		return
	}

	err := validation.ValidateGoal(g)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created := h.store.AddGoal(g)
	slog.Info("goal created", "goal_id", created.ID, "tracking", created.Tracking.Normalize())
	h.respondGoal(w, http.StatusCreated, created)
}

type patchRequest struct {
	Title           *string                `json:"title"`
	Description     *string                `json:"description"`
	Category        *model.Category        `json:"category"`
	Notes           *string                `json:"notes"`
	TargetFrequency *int                   `json:"targetFrequency"`
	FrequencyPeriod *model.FrequencyPeriod `json:"frequencyPeriod"`
	TargetValue     *float64               `json:"targetValue"`
	StartingValue   *float64               `json:"startingValue"`
	Unit            *string                `json:"unit"`
	Deadline        *string                `json:"deadline"`
	Reminder        *string                `json:"reminder"`
	Progress        *int                   `json:"progress"`
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req patchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Title != nil {
		err := validation.ValidateTitle(*req.Title)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	g, err := h.store.UpdateGoal(r.PathValue("id"), store.Patch{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Notes:           req.Notes,
		TargetFrequency: req.TargetFrequency,
		FrequencyPeriod: req.FrequencyPeriod,
		TargetValue:     req.TargetValue,
		StartingValue:   req.StartingValue,
		Unit:            req.Unit,
		Deadline:        req.Deadline,
		Reminder:        req.Reminder,
		Progress:        req.Progress,
	})
	if err != nil {
		if !h.notFound(w, err) {
			writeError(w, http.StatusInternalServerError, "failed to update goal")
		}
		return
	}
	h.respondGoal(w, http.StatusOK, g)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")
	err := h.store.DeleteGoal(goalID)
	if err != nil {
		if !h.notFound(w, err) {
			writeError(w, http.StatusInternalServerError, "failed to delete goal")
		}
		return
	}
	slog.Info("goal deleted", "goal_id", goalID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.store.ReorderGoals(req.From, req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.store.Goals())
}

func (h *GoalHandler) AddCheckIn(w http.ResponseWriter, r *http.Request) {
	// Body is optional: an empty POST checks in for today.
	var req struct {
		Date string `json:"date"`
		Note string `json:"note"`
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	g, err := h.store.AddCheckIn(r.PathValue("id"), model.CheckIn{Date: req.Date, Note: req.Note})
	if err != nil {
		if !h.notFound(w, err) {
			writeError(w, http.StatusInternalServerError, "failed to add check-in")
		}
		return
	}
	h.respondGoal(w, http.StatusCreated, g)
}

func (h *GoalHandler) RemoveCheckIn(w http.ResponseWriter, r *http.Request) {
	g, err := h.store.RemoveCheckIn(r.PathValue("id"), r.PathValue("checkInID"))
	if err != nil {
		if !h.notFound(w, err) {
			writeError(w, http.StatusInternalServerError, "failed to remove check-in")
		}
		return
	}
	h.respondGoal(w, http.StatusOK, g)
}

func (h *GoalHandler) AddJournalEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
		Mood    string `json:"mood"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	err := validation.ValidateJournalContent(req.Content)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := h.store.AddJournalEntry(r.PathValue("id"), req.Content, req.Mood)
	if err != nil {
		if !h.notFound(w, err) {
			writeError(w, http.StatusInternalServerError, "failed to add journal entry")
		}
		return
	}
	h.respondGoal(w, http.StatusCreated, g)
}

func (h *GoalHandler) DeleteJournalEntry(w http.ResponseWriter, r *http.Request) {
	g, err := h.store.DeleteJournalEntry(r.PathValue("id"), r.PathValue("entryID"))
	if err != nil {
		if !h.notFound(w, err) {
			writeError(w, http.StatusInternalServerError, "failed to delete journal entry")
		}
		return
	}
	h.respondGoal(w, http.StatusOK, g)
}

func (h *GoalHandler) ToggleMilestone(w http.ResponseWriter, r *http.Request) {
	g, err := h.store.ToggleMilestone(r.PathValue("id"), r.PathValue("milestoneID"))
	if err != nil {
		if !h.notFound(w, err) {
			writeError(w, http.StatusInternalServerError, "failed to toggle milestone")
		}
		return
	}
	h.respondGoal(w, http.StatusOK, g)
}

// UpdateValue routes to the owning strategy's mutation: cumulative totals
// clamp at zero, target readings take any value.
func (h *GoalHandler) UpdateValue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value float64 `json:"value"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	goalID := r.PathValue("id")
	g, err := h.store.Goal(goalID)
	if err != nil {
		if !h.notFound(w, err) {
			writeError(w, http.StatusInternalServerError, "failed to load goal")
		}
		return
	}

	switch g.Tracking.Normalize() {
	case model.TrackingCumulative:
		g, err = h.store.UpdateCumulativeValue(goalID, req.Value)
	case model.TrackingTarget:
		g, err = h.store.UpdateTargetValue(goalID, req.Value)
	default:
		writeError(w, http.StatusBadRequest, "goal does not track a numeric value")
		return
	}
	if err != nil {
		if !h.notFound(w, err) {
			writeError(w, http.StatusInternalServerError, "failed to update value")
		}
		return
	}
	h.respondGoal(w, http.StatusOK, g)
}

func (h *GoalHandler) RetrySync(w http.ResponseWriter, r *http.Request) {
	retried := h.store.RetryFailed()
	writeJSON(w, http.StatusOK, map[string]int{"retried": retried})
}
