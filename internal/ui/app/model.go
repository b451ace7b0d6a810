// Package app is the root bubbletea model: session gate, tab routing
// between the progress, library, and stats views, the command palette, and
// the status bar.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdomain "fitterm/internal/modules/auth/domain"
	authin "fitterm/internal/modules/auth/port/in"
	librarydomain "fitterm/internal/modules/library/domain"
	libraryin "fitterm/internal/modules/library/port/in"
	progressdomain "fitterm/internal/modules/progress/domain"
	progressin "fitterm/internal/modules/progress/port/in"
	"fitterm/internal/modules/progress/dto"
	statsdomain "fitterm/internal/modules/stats/domain"
	"fitterm/internal/platform/clock"
	apperrors "fitterm/internal/platform/errors"
	"fitterm/internal/ui/components"
	"fitterm/internal/ui/theme"
	libraryview "fitterm/internal/ui/views/library"
	loginview "fitterm/internal/ui/views/login"
	progressview "fitterm/internal/ui/views/progress"
	statsview "fitterm/internal/ui/views/stats"
)

type screen int

const (
	screenLogin screen = iota
	screenMain
)

type tab int

const (
	tabProgress tab = iota
	tabLibrary
	tabStats
)

var tabNames = [...]string{"Progress", "Library", "Stats"}

type sessionCheckedMsg struct {
	session authdomain.Session
	err     error
}

type optionsMsg struct {
	meals     []librarydomain.Meal
	exercises []librarydomain.Exercise
	err       error
}

type profileSavedMsg struct {
	user authdomain.User
	err  error
}

type loggedOutMsg struct{ err error }

type Model struct {
	auth       authin.Usecase
	progressUC progressin.Usecase
	libraryUC  libraryin.Usecase
	clock      clock.Clock
	log        *slog.Logger

	screen screen
	tab    tab

	login    loginview.Model
	progress progressview.Model
	library  libraryview.Model
	stats    statsview.Model
	palette  components.Palette

	user      authdomain.User
	meals     map[string]librarydomain.Meal
	exercises map[string]librarydomain.Exercise

	status string
	width  int
	height int
}

func New(
	auth authin.Usecase,
	progressUC progressin.Usecase,
	libraryUC libraryin.Usecase,
	clk clock.Clock,
	log *slog.Logger,
) Model {
	return Model{
		auth:       auth,
		progressUC: progressUC,
		libraryUC:  libraryUC,
		clock:      clk,
		log:        log,
		login:      loginview.New(auth),
		progress:   progressview.New(progressUC, clk),
		library:    libraryview.New(libraryUC),
		stats:      statsview.New(),
		palette:    components.NewPalette(),
		meals:      map[string]librarydomain.Meal{},
		exercises:  map[string]librarydomain.Exercise{},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkSessionCmd(), m.login.Init())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// A rejected token anywhere drops straight to the login screen; the
	// HTTP client has already cleared the stored session.
	if err := msgError(msg); m.screen == screenMain && errors.Is(err, apperrors.ErrUnauthorized) {
		m.screen = screenLogin
		m.login = loginview.New(m.auth)
		m.login, _ = m.login.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.status = "session expired, sign in again"
		return m, m.login.Init()
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(msg.Width-4, 72))
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 3}
		var cmds []tea.Cmd
		m.login, _ = m.login.Update(msg)
		m.progress, _ = m.progress.Update(inner)
		var cmd tea.Cmd
		m.library, cmd = m.library.Update(inner)
		cmds = append(cmds, cmd)
		m.stats, _ = m.stats.Update(inner)
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case sessionCheckedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, apperrors.ErrNoSession) {
				m.log.Warn("session check failed", "error", msg.err)
			}
			m.screen = screenLogin
			return m, nil
		}
		return m.enterMain(msg.session.User)

	case loginview.SessionMsg:
		if msg.Err == nil {
			return m.enterMain(msg.Session.User)
		}
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd

	case optionsMsg:
		if msg.err != nil {
			m.status = "library load failed: " + msg.err.Error()
			return m, nil
		}
		m.meals = make(map[string]librarydomain.Meal, len(msg.meals))
		for _, meal := range msg.meals {
			m.meals[meal.ID] = meal
		}
		m.exercises = make(map[string]librarydomain.Exercise, len(msg.exercises))
		for _, ex := range msg.exercises {
			m.exercises[ex.ID] = ex
		}
		m.progress.SetLibrary(msg.meals, msg.exercises)
		m.syncStats()
		return m, nil

	case profileSavedMsg:
		if msg.err != nil {
			m.status = "profile update failed: " + msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		m.stats.SetProfile(msg.user)
		m.status = "profile updated"
		return m, nil

	case loggedOutMsg:
		if msg.err != nil {
			m.status = "logout failed: " + msg.err.Error()
			return m, nil
		}
		m.screen = screenLogin
		m.login = loginview.New(m.auth)
		m.login, _ = m.login.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.status = ""
		return m, m.login.Init()

	case progressview.StatusMsg:
		m.status = msg.Text
		return m, nil
	}

	if m.screen == screenLogin {
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	}
	return m.updateMain(msg)
}

func (m Model) enterMain(user authdomain.User) (tea.Model, tea.Cmd) {
	m.screen = screenMain
	m.user = user
	m.stats.SetProfile(user)
	m.status = "signed in as " + user.Email
	return m, tea.Batch(m.progress.Init(), m.library.Init(), m.loadOptionsCmd())
}

func (m Model) updateMain(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette swallows all keys while open.
	if m.palette.Visible() {
		if submit, ok := msg.(components.PaletteSubmitMsg); ok {
			return m.executePalette(submit.Input)
		}
		if _, ok := msg.(components.PaletteCancelMsg); ok {
			return m, nil
		}
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q":
			return m, tea.Quit
		case ":":
			return m, m.palette.Open()
		case "1":
			m.tab = tabProgress
			return m, nil
		case "2":
			m.tab = tabLibrary
			return m, nil
		case "3":
			m.tab = tabStats
			m.syncStats()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch msg.(type) {
	case progressview.WeekLoadedMsg:
		m.progress, cmd = m.progress.Update(msg)
		m.syncStats()
		// Entries can embed items outside the user's library; refresh the
		// lookup tables with them merged in.
		return m, tea.Batch(cmd, m.loadOptionsCmd())
	case progressview.ToggleResultMsg, progressview.DaySavedMsg:
		m.progress, cmd = m.progress.Update(msg)
		m.syncStats()
		return m, cmd
	case libraryview.LoadedMsg:
		m.library, cmd = m.library.Update(msg)
		return m, cmd
	case loginview.SessionMsg:
		return m, nil
	}

	switch m.tab {
	case tabProgress:
		m.progress, cmd = m.progress.Update(msg)
		m.syncStats()
	case tabLibrary:
		m.library, cmd = m.library.Update(msg)
	case tabStats:
		m.stats, cmd = m.stats.Update(msg)
	}
	return m, cmd
}

func msgError(msg tea.Msg) error {
	switch msg := msg.(type) {
	case progressview.WeekLoadedMsg:
		return msg.Err
	case progressview.ToggleResultMsg:
		return msg.Err
	case progressview.DaySavedMsg:
		return msg.Err
	case libraryview.LoadedMsg:
		return msg.Err
	case optionsMsg:
		return msg.err
	case profileSavedMsg:
		return msg.err
	}
	return nil
}

// syncStats recomputes the day panel from the progress view's selection.
func (m *Model) syncStats() {
	day := m.progress.SelectedDay()
	entry, _ := m.progress.SelectedEntry()
	m.stats.SetDay(day, statsdomain.Summarize(entry, m.meals, m.exercises))
}

// ─── palette commands ────────────────────────────────────────────────────────

// executePalette handles every command listed in the palette hints.
func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return m, nil
	}
	var cmd tea.Cmd

	switch fields[0] {
	case "week:prev":
		m.progress, cmd = m.progress.ShiftWeek(-1)
	case "week:next":
		m.progress, cmd = m.progress.ShiftWeek(1)
	case "week:today":
		m.progress, cmd = m.progress.Goto(m.clock.Now())
	case "week:goto":
		if len(fields) != 2 {
			m.status = "usage: week:goto <YYYY-MM-DD>"
			return m, nil
		}
		day, err := time.ParseInLocation("2006-01-02", fields[1], time.Local)
		if err != nil {
			m.status = "bad date: " + fields[1]
			return m, nil
		}
		m.progress, cmd = m.progress.Goto(day)

	case "day:note":
		note := strings.TrimSpace(strings.TrimPrefix(input, "day:note"))
		return m, m.saveSelectedDay(func(in *dto.SaveDayInput) error {
			in.Notes = note
			return nil
		})
	case "day:add-meal":
		if len(fields) != 3 {
			m.status = "usage: day:add-meal <mealID> <HH:MM>"
			return m, nil
		}
		return m, m.addSlot(progressdomain.KindMeal, fields[1], fields[2])
	case "day:add-exercise":
		if len(fields) != 3 {
			m.status = "usage: day:add-exercise <exerciseID> <HH:MM>"
			return m, nil
		}
		return m, m.addSlot(progressdomain.KindExercise, fields[1], fields[2])
	case "day:remove-meal":
		return m.removeSlot(progressdomain.KindMeal, fields[1:])
	case "day:remove-exercise":
		return m.removeSlot(progressdomain.KindExercise, fields[1:])
	case "day:clear":
		return m, m.saveSelectedDay(func(in *dto.SaveDayInput) error {
			in.Meals = nil
			in.Exercises = nil
			in.Notes = ""
			return nil
		})

	case "plan:apply":
		if len(fields) != 2 {
			m.status = "usage: plan:apply <weeklyPlanID>"
			return m, nil
		}
		return m, m.applyPlanCmd(fields[1])

	case "profile:set":
		return m.setProfileField(fields[1:])

	case "sync":
		m.status = "refreshing…"
		return m, tea.Batch(m.progress.Reload(), m.library.Init(), m.loadOptionsCmd())

	case "logout":
		return m, m.logoutCmd()

	default:
		m.status = "unknown command: " + fields[0]
	}
	return m, cmd
}

// saveSelectedDay builds a SaveDayInput from the selected day's current
// entry, lets edit mutate it, and ships it.
func (m Model) saveSelectedDay(edit func(*dto.SaveDayInput) error) tea.Cmd {
	day := m.progress.SelectedDay()
	input := dto.SaveDayInput{Day: day}
	if entry, ok := m.progress.SelectedEntry(); ok {
		input.Meals = entry.Meals
		input.Exercises = entry.Exercises
		input.Notes = entry.Notes
	}
	if err := edit(&input); err != nil {
		return func() tea.Msg { return progressview.StatusMsg{Text: err.Error()} }
	}
	uc := m.progressUC
	return func() tea.Msg {
		entry, err := uc.SaveDay(context.Background(), input)
		return progressview.DaySavedMsg{Entry: entry, Err: err}
	}
}

func (m Model) addSlot(kind progressdomain.ItemKind, id, at string) tea.Cmd {
	return m.saveSelectedDay(func(in *dto.SaveDayInput) error {
		if _, err := time.Parse("15:04", at); err != nil {
			return fmt.Errorf("bad time %q, want HH:MM", at)
		}
		if kind == progressdomain.KindMeal {
			in.Meals = append(in.Meals, progressdomain.MealSlot{
				Time: at,
				Meal: progressdomain.NewRef[librarydomain.Meal](id),
			})
			return nil
		}
		in.Exercises = append(in.Exercises, progressdomain.ExerciseSlot{
			Time:     at,
			Exercise: progressdomain.NewRef[librarydomain.Exercise](id),
		})
		return nil
	})
}

func (m Model) removeSlot(kind progressdomain.ItemKind, args []string) (tea.Model, tea.Cmd) {
	if len(args) != 1 {
		m.status = fmt.Sprintf("usage: day:remove-%s <index>", kind)
		return m, nil
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		m.status = "bad index: " + args[0]
		return m, nil
	}
	return m, m.saveSelectedDay(func(in *dto.SaveDayInput) error {
		if kind == progressdomain.KindMeal {
			if index < 0 || index >= len(in.Meals) {
				return fmt.Errorf("no meal at index %d", index)
			}
			in.Meals = append(in.Meals[:index], in.Meals[index+1:]...)
			return nil
		}
		if index < 0 || index >= len(in.Exercises) {
			return fmt.Errorf("no exercise at index %d", index)
		}
		in.Exercises = append(in.Exercises[:index], in.Exercises[index+1:]...)
		return nil
	})
}

func (m Model) applyPlanCmd(planID string) tea.Cmd {
	day := m.progress.SelectedDay()
	notes := ""
	if entry, ok := m.progress.SelectedEntry(); ok {
		notes = entry.Notes
	}
	libraryUC := m.libraryUC
	progressUC := m.progressUC
	return func() tea.Msg {
		ctx := context.Background()
		plans, err := libraryUC.WeeklyPlans(ctx)
		if err != nil {
			return progressview.DaySavedMsg{Err: err}
		}
		for _, plan := range plans {
			if plan.ID == planID {
				entry, err := progressUC.ApplyPlan(ctx, day, plan, notes)
				return progressview.DaySavedMsg{Entry: entry, Err: err}
			}
		}
		return progressview.DaySavedMsg{Err: fmt.Errorf("weekly plan %s not found", planID)}
	}
}

func (m Model) setProfileField(args []string) (tea.Model, tea.Cmd) {
	if len(args) != 2 {
		m.status = "usage: profile:set <height|weight|age|sex|activity> <value>"
		return m, nil
	}
	user := m.user
	field, value := args[0], args[1]
	switch field {
	case "height", "weight":
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			m.status = "bad number: " + value
			return m, nil
		}
		if field == "height" {
			user.HeightCm = n
		} else {
			user.WeightKg = n
		}
	case "age":
		n, err := strconv.Atoi(value)
		if err != nil {
			m.status = "bad number: " + value
			return m, nil
		}
		user.Age = n
	case "sex":
		user.Sex = value
	case "activity":
		user.ActivityLevel = value
	default:
		m.status = "unknown field: " + field
		return m, nil
	}

	auth := m.auth
	return m, func() tea.Msg {
		updated, err := auth.UpdateUser(context.Background(), user)
		return profileSavedMsg{user: updated, err: err}
	}
}

// ─── commands ─────────────────────────────────────────────────────────────────

func (m Model) checkSessionCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.auth.Current(context.Background())
		return sessionCheckedMsg{session: session, err: err}
	}
}

func (m Model) loadOptionsCmd() tea.Cmd {
	var embeddedMeals []librarydomain.Meal
	var embeddedExercises []librarydomain.Exercise
	for _, entry := range m.progress.Entries() {
		embeddedMeals = append(embeddedMeals, entry.EmbeddedMeals()...)
		embeddedExercises = append(embeddedExercises, entry.EmbeddedExercises()...)
	}
	return func() tea.Msg {
		ctx := context.Background()
		meals, err := m.libraryUC.MealOptions(ctx, embeddedMeals)
		if err != nil {
			return optionsMsg{err: err}
		}
		exercises, err := m.libraryUC.ExerciseOptions(ctx, embeddedExercises)
		return optionsMsg{meals: meals, exercises: exercises, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg{err: m.auth.Logout(context.Background())}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.screen == screenLogin {
		return m.login.View()
	}

	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf(" %d %s ", i+1, name)
		if tab(i) == m.tab {
			tabs[i] = theme.Title.Render(label)
		} else {
			tabs[i] = theme.Muted.Render(label)
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	switch m.tab {
	case tabProgress:
		body = m.progress.View()
	case tabLibrary:
		body = m.library.View()
	case tabStats:
		body = m.stats.View()
	}

	footer := m.statusBar()
	if m.palette.Visible() {
		footer = m.palette.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) statusBar() string {
	left := theme.Muted.Render(m.user.Email)
	right := theme.Muted.Render(": palette  q: quit")
	middle := ""
	if m.status != "" {
		middle = "  " + m.status
	}
	return left + middle + "  " + right
}
