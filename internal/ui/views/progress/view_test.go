package progress_test

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	librarydomain "fitterm/internal/modules/library/domain"
	"fitterm/internal/modules/progress/domain"
	"fitterm/internal/modules/progress/dto"
	"fitterm/internal/platform/dates"
	progressview "fitterm/internal/ui/views/progress"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakePort struct {
	week        dto.WeekOutput
	weekErr     error
	weekCalls   int
	validateErr error
	toggleEntry domain.Entry
	toggleErr   error
	toggleCalls int
	lastToggle  dto.ToggleInput
}

func (f *fakePort) Week(_ context.Context, ref time.Time) (dto.WeekOutput, error) {
	f.weekCalls++
	return f.week, f.weekErr
}

func (f *fakePort) ValidateToggle(_ []domain.Entry, _ time.Time, _ domain.ItemKind, _ int) error {
	return f.validateErr
}

func (f *fakePort) Toggle(_ context.Context, input dto.ToggleInput) (domain.Entry, error) {
	f.toggleCalls++
	f.lastToggle = input
	return f.toggleEntry, f.toggleErr
}

func (f *fakePort) SaveDay(_ context.Context, _ dto.SaveDayInput) (domain.Entry, error) {
	return domain.Entry{}, errors.New("not used")
}

// drain executes a command tree and returns every message it produces,
// flattening batches.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// wednesday is mid-week so both past and future days exist around it.
var wednesday = time.Date(2024, time.June, 12, 10, 0, 0, 0, time.Local)

func weekWith(entries ...domain.Entry) dto.WeekOutput {
	start := dates.WeekStart(wednesday)
	return dto.WeekOutput{
		Start:   start,
		Days:    dates.WeekDays(start),
		Entries: entries,
	}
}

func wednesdayEntry(completed bool) domain.Entry {
	return domain.Entry{
		ID:   "entry-1",
		Date: domain.NewFlexDate(wednesday),
		Meals: []domain.MealSlot{
			{Time: "08:00", Meal: domain.NewRef[librarydomain.Meal]("m1"), Completed: completed},
		},
		Exercises: []domain.ExerciseSlot{
			{Time: "18:00", Exercise: domain.NewRef[librarydomain.Exercise]("e1")},
		},
	}
}

// loaded builds a model that has already received its first week.
func loaded(t *testing.T, port *fakePort) progressview.Model {
	t.Helper()
	m := progressview.New(port, fixedClock{now: wednesday})
	for _, msg := range drain(t, m.Init()) {
		if _, ok := msg.(progressview.WeekLoadedMsg); ok {
			m, _ = m.Update(msg)
		}
	}
	return m
}

func pressSpace(m progressview.Model) (progressview.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeySpace})
}

func TestToggleWithoutEntryIsRejectedLocally(t *testing.T) {
	t.Parallel()
	port := &fakePort{week: weekWith()}
	m := loaded(t, port)

	m, cmd := pressSpace(m)

	if port.toggleCalls != 0 {
		t.Fatalf("no entry must never reach the network, got %d calls", port.toggleCalls)
	}
	if len(m.Entries()) != 0 {
		t.Fatalf("rejected toggle must not create entries")
	}
	msgs := drain(t, cmd)
	if len(msgs) != 1 {
		t.Fatalf("want one status message, got %d", len(msgs))
	}
	if _, ok := msgs[0].(progressview.StatusMsg); !ok {
		t.Fatalf("want StatusMsg, got %T", msgs[0])
	}
}

func TestGateRejectionLeavesStateUntouched(t *testing.T) {
	t.Parallel()
	port := &fakePort{
		week:        weekWith(wednesdayEntry(false)),
		validateErr: errors.New("scheduled for 23:00, not yet"),
	}
	m := loaded(t, port)

	m, cmd := pressSpace(m)

	if port.toggleCalls != 0 {
		t.Fatalf("gated toggle must not reach the network")
	}
	if m.Entries()[0].Meals[0].Completed {
		t.Fatalf("gated toggle must not flip local state")
	}
	msgs := drain(t, cmd)
	status, ok := msgs[0].(progressview.StatusMsg)
	if !ok || status.Text != "scheduled for 23:00, not yet" {
		t.Fatalf("status = %#v", msgs[0])
	}
}

func TestToggleFlipsOptimisticallyBeforeServerAnswers(t *testing.T) {
	t.Parallel()
	port := &fakePort{week: weekWith(wednesdayEntry(false))}
	m := loaded(t, port)

	m, cmd := pressSpace(m)

	// State is flipped before the returned command ever runs.
	if !m.Entries()[0].Meals[0].Completed {
		t.Fatalf("toggle must flip local state immediately")
	}
	if cmd == nil {
		t.Fatalf("toggle must issue a server command")
	}
}

func TestServerEntryReplacesOptimisticGuess(t *testing.T) {
	t.Parallel()
	server := wednesdayEntry(true)
	server.Notes = "recalculated server-side"
	port := &fakePort{week: weekWith(wednesdayEntry(false)), toggleEntry: server}
	m := loaded(t, port)

	m, cmd := pressSpace(m)
	for _, msg := range drain(t, cmd) {
		m, _ = m.Update(msg)
	}

	if port.lastToggle.Kind != domain.KindMeal || port.lastToggle.Index != 0 {
		t.Fatalf("toggle request = %+v", port.lastToggle)
	}
	got := m.Entries()[0]
	if got.Notes != "recalculated server-side" {
		t.Fatalf("server entry must win, got %+v", got)
	}
	if !got.Meals[0].Completed {
		t.Fatalf("server completion state lost")
	}
}

func TestFailedToggleReloadsAndMatchesFreshFetch(t *testing.T) {
	t.Parallel()
	port := &fakePort{
		week:      weekWith(wednesdayEntry(false)),
		toggleErr: errors.New("network down"),
	}
	m := loaded(t, port)
	callsAfterLoad := port.weekCalls

	m, cmd := pressSpace(m)
	if !m.Entries()[0].Meals[0].Completed {
		t.Fatalf("precondition: optimistic flip applied")
	}

	// The failed result triggers a status and a full reload.
	var sawStatus, sawReload bool
	for _, msg := range drain(t, cmd) {
		switch msg.(type) {
		case progressview.StatusMsg:
			sawStatus = true
		case progressview.WeekLoadedMsg:
			sawReload = true
		}
		m, _ = m.Update(msg)
	}
	if !sawStatus || !sawReload {
		t.Fatalf("failure must surface a status and reload (status=%v reload=%v)", sawStatus, sawReload)
	}
	if port.weekCalls != callsAfterLoad+1 {
		t.Fatalf("week calls = %d, want %d", port.weekCalls, callsAfterLoad+1)
	}
	if m.Entries()[0].Meals[0].Completed {
		t.Fatalf("reload must discard the optimistic flip")
	}
}

func TestCursorSpansMealsThenExercises(t *testing.T) {
	t.Parallel()
	port := &fakePort{week: weekWith(wednesdayEntry(false)), toggleEntry: wednesdayEntry(false)}
	m := loaded(t, port)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = pressSpace(m)

	if port.lastToggle.Kind != domain.KindExercise || port.lastToggle.Index != 0 {
		t.Fatalf("second row must target the first exercise, got %+v", port.lastToggle)
	}
	if !m.Entries()[0].Exercises[0].Completed {
		t.Fatalf("exercise flip missing")
	}
}
