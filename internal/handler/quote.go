package handler

import (
	"net/http"
	"time"

	"github.com/resolveapp/resolve/internal/quote"
	"github.com/resolveapp/resolve/internal/store"
	"github.com/resolveapp/resolve/internal/tracking"
)

type QuoteHandler struct {
	store  *store.Store
	quotes *quote.Service
}

func NewQuoteHandler(s *store.Store, quotes *quote.Service) *QuoteHandler {
	return &QuoteHandler{store: s, quotes: quotes}
}

// Get returns the motivational line for a goal's current progress and
// staleness. Pure function of the two inputs, no state.
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.store.Goal(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	now := time.Now()
	state := tracking.Derive(g, now)
	daysSince := int(now.Sub(g.UpdatedAt).Hours() / 24)
	if daysSince < 0 {
		daysSince = 0
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"quote": h.quotes.ForProgress(state.ProgressPct, daysSince),
	})
}
