package routes

import (
	"net/http"

	"github.com/resolveapp/resolve/internal/app"
	"github.com/resolveapp/resolve/internal/handler"
	"github.com/resolveapp/resolve/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	goal := handler.NewGoalHandler(app.Store)
	achievement := handler.NewAchievementHandler(app.Store)
	quote := handler.NewQuoteHandler(app.Store, app.Quotes)

	mux := http.NewServeMux()

	// Goals
	mux.HandleFunc("GET /api/goals", goal.List)
	mux.HandleFunc("POST /api/goals", goal.Create)
	mux.HandleFunc("POST /api/goals/reorder", goal.Reorder)
	mux.HandleFunc("GET /api/goals/{id}", goal.Get)
	mux.HandleFunc("PATCH /api/goals/{id}", goal.Update)
	mux.HandleFunc("DELETE /api/goals/{id}", goal.Delete)

	// Events
	mux.HandleFunc("POST /api/goals/{id}/checkins", goal.AddCheckIn)
	mux.HandleFunc("DELETE /api/goals/{id}/checkins/{checkInID}", goal.RemoveCheckIn)
	mux.HandleFunc("POST /api/goals/{id}/journal", goal.AddJournalEntry)
	mux.HandleFunc("DELETE /api/goals/{id}/journal/{entryID}", goal.DeleteJournalEntry)
	mux.HandleFunc("POST /api/goals/{id}/milestones/{milestoneID}/toggle", goal.ToggleMilestone)
	mux.HandleFunc("PUT /api/goals/{id}/value", goal.UpdateValue)

	// Derived collections
	mux.HandleFunc("GET /api/goals/{id}/quote", quote.Get)
	mux.HandleFunc("GET /api/achievements", achievement.List)
	mux.HandleFunc("GET /api/stats", achievement.Stats)

	// Sync
	mux.HandleFunc("POST /api/sync/retry", goal.RetrySync)

	return middleware.Chain(mux,
		middleware.Recover,
		middleware.RequestLogging,
	)
}
