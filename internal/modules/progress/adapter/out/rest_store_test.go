package out_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitterm/internal/modules/progress/adapter/out"
	"fitterm/internal/modules/progress/domain"
	"fitterm/internal/platform/httpx"
	"fitterm/internal/platform/id"
)

type noTokens struct{}

func (noTokens) Token() (string, bool) { return "", false }

func newClient(t *testing.T, handler http.Handler) *httpx.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpx.New(srv.URL, time.Second, noTokens{}, id.UUID{}, log, nil)
}

func TestWeekSendsISOInstantsAndDecodesEntries(t *testing.T) {
	t.Parallel()
	var gotStart, gotEnd string
	store := out.NewRESTStore(newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/progress" || r.Method != http.MethodGet {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		gotStart = r.URL.Query().Get("startDate")
		gotEnd = r.URL.Query().Get("endDate")
		w.Write([]byte(`[{"date":"2024-06-10T00:00:00.000Z","meals":[{"time":"08:00","mealId":"m1","completed":true}],"exercises":[]}]`))
	})))

	zone := time.FixedZone("UTC+7", 7*3600)
	from := time.Date(2024, time.June, 10, 0, 0, 0, 0, zone)
	entries, err := store.Week(context.Background(), from, from.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("week: %v", err)
	}
	if gotStart != "2024-06-10T00:00:00+07:00" {
		t.Fatalf("startDate = %s", gotStart)
	}
	if gotEnd != "2024-06-17T00:00:00+07:00" {
		t.Fatalf("endDate = %s", gotEnd)
	}
	if len(entries) != 1 || entries[0].Key() != "2024-06-10" {
		t.Fatalf("entries = %+v", entries)
	}
	if !entries[0].Meals[0].Completed {
		t.Fatalf("meal completion lost in decode")
	}
}

func TestSaveDayPostsWholeDayUpsert(t *testing.T) {
	t.Parallel()
	var body map[string]json.RawMessage
	store := out.NewRESTStore(newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/progress" || r.Method != http.MethodPost {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"date":"2024-06-12T00:00:00.000Z","meals":[],"exercises":[],"notes":"saved"}`))
	})))

	entry := domain.Entry{
		Date:      domain.NewFlexDate(time.Date(2024, time.June, 12, 9, 30, 0, 0, time.Local)),
		Meals:     []domain.MealSlot{},
		Exercises: []domain.ExerciseSlot{},
		Notes:     "saved",
	}
	saved, err := store.SaveDay(context.Background(), entry)
	if err != nil {
		t.Fatalf("save day: %v", err)
	}
	if string(body["date"]) != `"2024-06-12"` {
		t.Fatalf("posted date %s, want bare day key", body["date"])
	}
	if string(body["meals"]) != `[]` {
		t.Fatalf("meals must be an empty list, got %s", body["meals"])
	}
	if saved.Notes != "saved" {
		t.Fatalf("server response not returned: %+v", saved)
	}
}

func TestToggleCompletionWireShape(t *testing.T) {
	t.Parallel()
	var body struct {
		Date  string `json:"date"`
		Type  string `json:"type"`
		Index int    `json:"index"`
	}
	store := out.NewRESTStore(newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/progress/toggle-completion" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"date":"2024-06-12T00:00:00.000Z","meals":[{"time":"08:00","mealId":"m1","completed":true}],"exercises":[]}`))
	})))

	updated, err := store.ToggleCompletion(context.Background(), "2024-06-12", domain.KindMeal, 0)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if body.Date != "2024-06-12" || body.Type != "meal" || body.Index != 0 {
		t.Fatalf("wire body = %+v", body)
	}
	if !updated.Meals[0].Completed {
		t.Fatalf("updated entry not decoded")
	}
}
