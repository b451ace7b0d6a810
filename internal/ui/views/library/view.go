// Package library renders the user's reference lists: meals, exercises,
// single-day plans, and weekly plans. All four tabs share one bubbles list.
package library

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fitterm/internal/modules/library/domain"
	libraryin "fitterm/internal/modules/library/port/in"
	"fitterm/internal/ui/theme"
)

type Tab int

const (
	TabMeals Tab = iota
	TabExercises
	TabPlans
	TabWeeklyPlans
)

var tabNames = [...]string{"Meals", "Exercises", "Plans", "Weekly plans"}

// LoadedMsg carries one tab's items.
type LoadedMsg struct {
	Tab   Tab
	Items []list.Item
	Err   error
}

type item struct {
	id, title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

type Model struct {
	usecase libraryin.Usecase

	tab    Tab
	list   list.Model
	loaded [4]bool
	err    error
	width  int
	height int
}

func New(usecase libraryin.Usecase) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.Frost).BorderForeground(theme.Frost)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.Accent).BorderForeground(theme.Frost)

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	return Model{usecase: usecase, list: l}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd(TabMeals)
}

// SelectedID returns the id of the highlighted item, for palette commands
// like plan:apply.
func (m Model) SelectedID() (string, bool) {
	if sel, ok := m.list.SelectedItem().(item); ok {
		return sel.id, true
	}
	return "", false
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)

	case LoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.loaded[msg.Tab] = true
		if msg.Tab == m.tab {
			return m, m.list.SetItems(msg.Items)
		}

	case tea.KeyMsg:
		// While the list filter is active every key belongs to it.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "tab":
			m.tab = (m.tab + 1) % 4
			return m, m.loadCmd(m.tab)
		case "shift+tab":
			m.tab = (m.tab + 3) % 4
			return m, m.loadCmd(m.tab)
		case "r":
			m.loaded[m.tab] = false
			return m, m.loadCmd(m.tab)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) loadCmd(tab Tab) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		switch tab {
		case TabMeals:
			meals, err := m.usecase.Meals(ctx)
			return LoadedMsg{Tab: tab, Items: mealItems(meals), Err: err}
		case TabExercises:
			exs, err := m.usecase.Exercises(ctx)
			return LoadedMsg{Tab: tab, Items: exerciseItems(exs), Err: err}
		case TabPlans:
			plans, err := m.usecase.Plans(ctx)
			return LoadedMsg{Tab: tab, Items: planItems(plans), Err: err}
		default:
			plans, err := m.usecase.WeeklyPlans(ctx)
			return LoadedMsg{Tab: tab, Items: weeklyPlanItems(plans), Err: err}
		}
	}
}

func mealItems(meals []domain.Meal) []list.Item {
	out := make([]list.Item, len(meals))
	for i, meal := range meals {
		out[i] = item{
			id:    meal.ID,
			title: meal.Name,
			desc: fmt.Sprintf("%.0f kcal · %.0fg protein · %.0fg carbs · %.0fg fat",
				meal.Calories, meal.Protein, meal.Carbs, meal.Fat),
		}
	}
	return out
}

func exerciseItems(exs []domain.Exercise) []list.Item {
	out := make([]list.Item, len(exs))
	for i, ex := range exs {
		out[i] = item{
			id:    ex.ID,
			title: ex.Name,
			desc:  fmt.Sprintf("%.0f kcal · %d min", ex.CaloriesBurned, ex.DurationMin),
		}
	}
	return out
}

func planItems(plans []domain.Plan) []list.Item {
	out := make([]list.Item, len(plans))
	for i, plan := range plans {
		desc := plan.Description
		if desc == "" {
			desc = "single-day plan"
		}
		out[i] = item{id: plan.ID, title: plan.Name, desc: desc}
	}
	return out
}

func weeklyPlanItems(plans []domain.WeeklyPlan) []list.Item {
	out := make([]list.Item, len(plans))
	for i, plan := range plans {
		meals, exs := 0, 0
		for _, day := range plan.Days {
			meals += len(day.Meals)
			exs += len(day.Exercises)
		}
		out[i] = item{
			id:    plan.ID,
			title: plan.Name,
			desc:  fmt.Sprintf("%d days · %d meals · %d exercises", len(plan.Days), meals, exs),
		}
	}
	return out
}

func (m Model) View() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs[i] = theme.Title.Render("[" + name + "]")
		} else {
			tabs[i] = theme.Muted.Render(" " + name + " ")
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	body := m.list.View()
	if m.err != nil {
		body = theme.Failed.Render("load failed: "+m.err.Error()) + "\n\n" +
			theme.Muted.Render("r: retry")
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}
