package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/resolveapp/resolve/internal/feedback"
	"github.com/resolveapp/resolve/internal/model"
	"github.com/resolveapp/resolve/internal/store"
)

type memRepo struct {
	goals map[string]model.Goal
}

func (m *memRepo) Load() ([]model.Goal, error) { return nil, nil }
func (m *memRepo) Save(g model.Goal) error {
	m.goals[g.ID] = g
	return nil
}
func (m *memRepo) Delete(id string) error {
	delete(m.goals, id)
	return nil
}

type memOrder struct{ ids []string }

func (m *memOrder) Order() ([]string, error) { return m.ids, nil }
func (m *memOrder) SetOrder(ids []string) error {
	m.ids = ids
	return nil
}

type noReminders struct{}

func (noReminders) Schedule(model.Goal)  {}
func (noReminders) Cancel(string)        {}
func (noReminders) SyncAll([]model.Goal) {}

func newTestHandler(t *testing.T) (*GoalHandler, *store.Store) {
	t.Helper()
	s := store.New(&memRepo{goals: make(map[string]model.Goal)}, &memOrder{}, noReminders{}, feedback.None{})
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	return NewGoalHandler(s), s
}

func doJSON(t *testing.T, h http.HandlerFunc, method, body string, pathValues map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
	}
	return out
}

func TestCreateReturnsDerivedView(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h.Create, http.MethodPost, `{
		"title": "Save for the trip",
		"trackingType": "cumulative",
		"targetValue": 500,
		"currentValue": 120,
		"unit": "dollars"
	}`, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeView(t, rec)
	state, ok := view["state"].(map[string]any)
	if !ok {
		t.Fatalf("no derived state in response: %s", rec.Body.String())
	}
	if state["progressPct"] != float64(24) {
		t.Errorf("progressPct = %v, want 24", state["progressPct"])
	}
	if state["summary"] != "120 / 500 dollars" {
		t.Errorf("summary = %q", state["summary"])
	}
}

func TestCreateRejectsInvalidGoal(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"trackingType": "cumulative", "targetValue": 10}`},
		{"unknown tracking", `{"title": "x", "trackingType": "hourly"}`},
		{"cumulative without target", `{"title": "x", "trackingType": "cumulative"}`},
		{"malformed json", `{"title": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h.Create, http.MethodPost, tt.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestGetUnknownGoal(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doJSON(t, h.Get, http.MethodGet, "", map[string]string{"id": "nope"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestUpdatePatchesFields(t *testing.T) {
	h, s := newTestHandler(t)
	g := s.AddGoal(model.Goal{Title: "old", Tracking: model.TrackingCumulative, TargetValue: 10})

	rec := doJSON(t, h.Update, http.MethodPatch, `{"title": "new", "targetValue": 20}`,
		map[string]string{"id": g.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeView(t, rec)
	if view["title"] != "new" {
		t.Errorf("title = %v", view["title"])
	}
	if view["targetValue"] != float64(20) {
		t.Errorf("targetValue = %v", view["targetValue"])
	}
}

func TestUpdateValidatesTitle(t *testing.T) {
	h, s := newTestHandler(t)
	g := s.AddGoal(model.Goal{Title: "keep me"})

	rec := doJSON(t, h.Update, http.MethodPatch, `{"title": "  "}`, map[string]string{"id": g.ID})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	got, _ := s.Goal(g.ID)
	if got.Title != "keep me" {
		t.Errorf("rejected patch still applied: %q", got.Title)
	}
}

func TestAddCheckInWithEmptyBody(t *testing.T) {
	h, s := newTestHandler(t)
	g := s.AddGoal(model.Goal{Title: "run", Tracking: model.TrackingFrequency, TargetFrequency: 3, FrequencyPeriod: model.PeriodWeek})

	rec := doJSON(t, h.AddCheckIn, http.MethodPost, "", map[string]string{"id": g.ID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeView(t, rec)
	checkIns, ok := view["checkIns"].([]any)
	if !ok || len(checkIns) != 1 {
		t.Fatalf("checkIns = %v", view["checkIns"])
	}
}

func TestUpdateValueRoutesByTracking(t *testing.T) {
	h, s := newTestHandler(t)
	cumulative := s.AddGoal(model.Goal{Title: "save", Tracking: model.TrackingCumulative, TargetValue: 100})
	reflection := s.AddGoal(model.Goal{Title: "journal", Tracking: model.TrackingReflection})

	rec := doJSON(t, h.UpdateValue, http.MethodPut, `{"value": 40}`,
		map[string]string{"id": cumulative.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeView(t, rec)
	if view["currentValue"] != float64(40) {
		t.Errorf("currentValue = %v", view["currentValue"])
	}

	rec = doJSON(t, h.UpdateValue, http.MethodPut, `{"value": 40}`,
		map[string]string{"id": reflection.ID})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("reflection goal accepted a value update: %d", rec.Code)
	}
}

func TestToggleMilestoneNotFound(t *testing.T) {
	h, s := newTestHandler(t)
	g := s.AddGoal(model.Goal{Title: "list", Tracking: model.TrackingChecklist,
		Milestones: []model.Milestone{{Title: "only"}}})

	rec := doJSON(t, h.ToggleMilestone, http.MethodPost, "",
		map[string]string{"id": g.ID, "milestoneID": "missing"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteThenGet(t *testing.T) {
	h, s := newTestHandler(t)
	g := s.AddGoal(model.Goal{Title: "gone soon"})

	rec := doJSON(t, h.Delete, http.MethodDelete, "", map[string]string{"id": g.ID})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, h.Get, http.MethodGet, "", map[string]string{"id": g.ID})
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", rec.Code)
	}
}

func TestReorderBadIndex(t *testing.T) {
	h, s := newTestHandler(t)
	s.AddGoal(model.Goal{Title: "only one"})

	rec := doJSON(t, h.Reorder, http.MethodPost, `{"from": 0, "to": 5}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRetrySyncReportsCount(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doJSON(t, h.RetrySync, http.MethodPost, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out["retried"] != 0 {
		t.Errorf("retried = %d, want 0", out["retried"])
	}
}
