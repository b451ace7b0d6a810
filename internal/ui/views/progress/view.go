// Package progress renders the weekly calendar and owns the optimistic
// completion toggling: local state flips first, the server's answer either
// confirms it (authoritative entry replaces ours) or throws the whole week
// away and reloads. The week is small, so reload-on-failure beats
// fine-grained rollback.
package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	librarydomain "fitterm/internal/modules/library/domain"
	"fitterm/internal/modules/progress/domain"
	"fitterm/internal/modules/progress/dto"
	"fitterm/internal/platform/clock"
	"fitterm/internal/platform/dates"
	"fitterm/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Week(ctx context.Context, ref time.Time) (dto.WeekOutput, error)
	ValidateToggle(entries []domain.Entry, day time.Time, kind domain.ItemKind, index int) error
	Toggle(ctx context.Context, input dto.ToggleInput) (domain.Entry, error)
	SaveDay(ctx context.Context, input dto.SaveDayInput) (domain.Entry, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type WeekLoadedMsg struct {
	Week dto.WeekOutput
	Err  error
}

type ToggleResultMsg struct {
	Day   time.Time
	Entry domain.Entry
	Err   error
}

type DaySavedMsg struct {
	Entry domain.Entry
	Err   error
}

// StatusMsg bubbles a transient notification up to the status bar.
type StatusMsg struct{ Text string }

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port  Port
	clock clock.Clock

	reference time.Time
	week      dto.WeekOutput
	selected  int // 0..6 within the week
	cursor    int // item position: meals first, then exercises

	meals     map[string]librarydomain.Meal
	exercises map[string]librarydomain.Exercise

	loading bool
	spinner spinner.Model
	width   int
	height  int
}

func New(port Port, clk clock.Clock) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Frost)

	now := clk.Now()
	m := Model{
		port:      port,
		clock:     clk,
		reference: now,
		loading:   true,
		spinner:   sp,
		meals:     map[string]librarydomain.Meal{},
		exercises: map[string]librarydomain.Exercise{},
	}
	m.selected = m.indexOfDay(now)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadWeekCmd(m.reference), m.spinner.Tick)
}

// SetLibrary updates the name/calorie lookup tables used for rendering.
func (m *Model) SetLibrary(meals []librarydomain.Meal, exercises []librarydomain.Exercise) {
	m.meals = make(map[string]librarydomain.Meal, len(meals))
	for _, meal := range meals {
		m.meals[meal.ID] = meal
	}
	m.exercises = make(map[string]librarydomain.Exercise, len(exercises))
	for _, ex := range exercises {
		m.exercises[ex.ID] = ex
	}
}

// SelectedDay returns the day the cursor sits on.
func (m Model) SelectedDay() time.Time {
	if m.week.Start.IsZero() {
		return dates.WeekDays(dates.WeekStart(m.reference))[m.selected]
	}
	return m.week.Days[m.selected]
}

// SelectedEntry returns the selected day's entry, if one exists.
func (m Model) SelectedEntry() (domain.Entry, bool) {
	return domain.FindEntry(m.week.Entries, m.SelectedDay())
}

// Entries exposes the client-held week for the app-level palette commands.
func (m Model) Entries() []domain.Entry {
	return m.week.Entries
}

// Reload refetches the current week.
func (m Model) Reload() tea.Cmd {
	return m.loadWeekCmd(m.reference)
}

// Goto jumps to the week containing ref and selects ref's day.
func (m Model) Goto(ref time.Time) (Model, tea.Cmd) {
	m.reference = ref
	m.selected = m.indexOfDay(ref)
	m.loading = true
	return m, tea.Batch(m.loadWeekCmd(ref), m.spinner.Tick)
}

// ShiftWeek moves the window by whole weeks, keeping the selected weekday.
func (m Model) ShiftWeek(weeks int) (Model, tea.Cmd) {
	return m.Goto(m.reference.AddDate(0, 0, 7*weeks))
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case WeekLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			return m, status("load week: " + msg.Err.Error())
		}
		m.week = msg.Week
		m.clampCursor()

	case ToggleResultMsg:
		if msg.Err != nil {
			// Roll back by reloading: the optimistic flip is discarded and
			// the client converges on server truth.
			m.loading = true
			return m, tea.Batch(
				status("toggle failed: "+msg.Err.Error()),
				m.loadWeekCmd(m.reference),
				m.spinner.Tick,
			)
		}
		m.replaceEntry(msg.Day, msg.Entry)

	case DaySavedMsg:
		if msg.Err != nil {
			return m, status("save failed: " + msg.Err.Error())
		}
		m.replaceEntryByKey(msg.Entry.Key(), msg.Entry)
		return m, status("day saved")

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.selected > 0 {
			m.selected--
			m.clampCursor()
		}
	case "right", "l":
		if m.selected < 6 {
			m.selected++
			m.clampCursor()
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}
	case "[":
		return m.ShiftWeek(-1)
	case "]":
		return m.ShiftWeek(1)
	case "t":
		return m.Goto(m.clock.Now())
	case "r":
		m.loading = true
		return m, tea.Batch(m.loadWeekCmd(m.reference), m.spinner.Tick)
	case " ":
		return m.toggleAtCursor()
	}
	return m, nil
}

// toggleAtCursor runs the full optimistic sequence: gate first, flip local
// state, then let the server confirm or the reload roll back.
func (m Model) toggleAtCursor() (Model, tea.Cmd) {
	day := m.SelectedDay()
	kind, index, ok := m.cursorTarget()
	if !ok {
		return m, status("nothing to toggle; add items first")
	}

	if err := m.port.ValidateToggle(m.week.Entries, day, kind, index); err != nil {
		return m, status(err.Error())
	}

	i, ok := domain.IndexFor(m.week.Entries, day)
	if !ok {
		return m, status("no entry for this day; add items first")
	}
	switch kind {
	case domain.KindMeal:
		m.week.Entries[i].Meals[index].Completed = !m.week.Entries[i].Meals[index].Completed
	case domain.KindExercise:
		m.week.Entries[i].Exercises[index].Completed = !m.week.Entries[i].Exercises[index].Completed
	}

	return m, m.toggleCmd(day, kind, index)
}

// cursorTarget maps the flat cursor onto (kind, index) within the selected
// day's entry: meals first, exercises after.
func (m Model) cursorTarget() (domain.ItemKind, int, bool) {
	entry, ok := m.SelectedEntry()
	if !ok {
		return "", 0, false
	}
	if m.cursor < len(entry.Meals) {
		return domain.KindMeal, m.cursor, true
	}
	exIndex := m.cursor - len(entry.Meals)
	if exIndex < len(entry.Exercises) {
		return domain.KindExercise, exIndex, true
	}
	return "", 0, false
}

func (m Model) itemCount() int {
	entry, ok := m.SelectedEntry()
	if !ok {
		return 0
	}
	return len(entry.Meals) + len(entry.Exercises)
}

func (m *Model) clampCursor() {
	if n := m.itemCount(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) replaceEntry(day time.Time, entry domain.Entry) {
	m.replaceEntryByKey(dates.Key(day), entry)
}

func (m *Model) replaceEntryByKey(key string, entry domain.Entry) {
	for i := range m.week.Entries {
		if m.week.Entries[i].Key() == key {
			m.week.Entries[i] = entry
			return
		}
	}
	m.week.Entries = append(m.week.Entries, entry)
}

func (m Model) indexOfDay(day time.Time) int {
	key := dates.Key(day)
	for i, d := range dates.WeekDays(dates.WeekStart(day)) {
		if dates.Key(d) == key {
			return i
		}
	}
	return 0
}

// ─── commands ─────────────────────────────────────────────────────────────────

func (m Model) loadWeekCmd(ref time.Time) tea.Cmd {
	return func() tea.Msg {
		week, err := m.port.Week(context.Background(), ref)
		return WeekLoadedMsg{Week: week, Err: err}
	}
}

func (m Model) toggleCmd(day time.Time, kind domain.ItemKind, index int) tea.Cmd {
	return func() tea.Msg {
		entry, err := m.port.Toggle(context.Background(), dto.ToggleInput{Day: day, Kind: kind, Index: index})
		return ToggleResultMsg{Day: day, Entry: entry, Err: err}
	}
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading week…")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderWeekStrip(), m.renderDayDetail())
}

func (m Model) renderWeekStrip() string {
	todayKey := dates.Key(m.clock.Now())
	cells := make([]string, 7)
	for i, day := range m.week.Days {
		label := fmt.Sprintf("%s %s", weekdayLabels[i], day.Format("02"))
		if entry, ok := domain.FindEntry(m.week.Entries, day); ok {
			done, total := completedCounts(entry)
			label += fmt.Sprintf("\n%d/%d", done, total)
		} else {
			label += "\n·"
		}

		style := theme.DayCell
		switch {
		case i == m.selected:
			style = theme.DayCellSelected
		case dates.Key(day) == todayKey:
			style = theme.DayCellToday
		}
		cells[i] = style.Render(label)
	}
	header := theme.Title.Render("Week of " + m.week.Start.Format("Jan 2, 2006"))
	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) renderDayDetail() string {
	day := m.SelectedDay()
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(day.Format("Monday, Jan 2")) + "\n\n")

	entry, ok := m.SelectedEntry()
	if !ok {
		sb.WriteString(theme.Muted.Render("No entry for this day. Use the palette to add meals or apply a plan."))
		return theme.Pane.Width(m.width - 2).Render(sb.String())
	}

	row := 0
	sb.WriteString(theme.Muted.Render("Meals") + "\n")
	if len(entry.Meals) == 0 {
		sb.WriteString(theme.Muted.Render("  (none)") + "\n")
	}
	for _, slot := range entry.Meals {
		name := slot.Meal.ID()
		if meal, ok := domain.DataOf(slot.Meal, m.meals); ok {
			name = fmt.Sprintf("%s (%.0f kcal)", meal.Name, meal.Calories)
		}
		sb.WriteString(m.renderItem(row, slot.Time, name, slot.Completed))
		row++
	}

	sb.WriteString("\n" + theme.Muted.Render("Exercises") + "\n")
	if len(entry.Exercises) == 0 {
		sb.WriteString(theme.Muted.Render("  (none)") + "\n")
	}
	for _, slot := range entry.Exercises {
		name := slot.Exercise.ID()
		if ex, ok := domain.DataOf(slot.Exercise, m.exercises); ok {
			name = fmt.Sprintf("%s (%.0f kcal)", ex.Name, ex.CaloriesBurned)
		}
		sb.WriteString(m.renderItem(row, slot.Time, name, slot.Completed))
		row++
	}

	if entry.Notes != "" {
		sb.WriteString("\n" + theme.Muted.Render("Notes: ") + entry.Notes + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("space: toggle  [/]: week  t: today  r: reload"))
	return theme.Pane.Width(m.width - 2).Render(sb.String())
}

func (m Model) renderItem(row int, at, name string, completed bool) string {
	mark := "○"
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if completed {
		mark = "●"
		style = theme.Done
	}
	cursor := "  "
	if row == m.cursor {
		cursor = theme.Hot.Render("❯ ")
	}
	if at == "" {
		at = "--:--"
	}
	return fmt.Sprintf("%s%s %s  %s\n", cursor, style.Render(mark), theme.Muted.Render(at), style.Render(name))
}

func completedCounts(entry domain.Entry) (done, total int) {
	for _, slot := range entry.Meals {
		total++
		if slot.Completed {
			done++
		}
	}
	for _, slot := range entry.Exercises {
		total++
		if slot.Completed {
			done++
		}
	}
	return done, total
}
