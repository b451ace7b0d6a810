// Package stats shows the profile-derived body metrics next to the selected
// day's calorie balance. It holds no network port; the app hands it the
// profile and the selected day's summary.
package stats

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdomain "fitterm/internal/modules/auth/domain"
	"fitterm/internal/modules/stats/domain"
	"fitterm/internal/ui/theme"
)

type Model struct {
	user    authdomain.User
	hasUser bool

	day        time.Time
	summary    domain.DaySummary
	hasSummary bool

	width  int
	height int
}

func New() Model {
	return Model{}
}

// SetProfile refreshes the body-metric inputs.
func (m *Model) SetProfile(user authdomain.User) {
	m.user = user
	m.hasUser = true
}

// SetDay refreshes the day panel from the progress view's selection.
func (m *Model) SetDay(day time.Time, summary domain.DaySummary) {
	m.day = day
	m.summary = summary
	m.hasSummary = true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
	}
	return m, nil
}

func (m Model) View() string {
	left := theme.Pane.Render(m.renderBody())
	right := theme.Pane.Render(m.renderDay())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m Model) renderBody() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Body metrics") + "\n\n")
	if !m.hasUser {
		sb.WriteString(theme.Muted.Render("No profile loaded."))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%s  %s, %d\n",
		m.user.Name, m.user.Sex, m.user.Age))
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%.0f cm · %.1f kg · %s\n\n",
		m.user.HeightCm, m.user.WeightKg, m.user.ActivityLevel)))

	bmi, err := domain.BMI(m.user.HeightCm, m.user.WeightKg)
	if err != nil {
		sb.WriteString(theme.Failed.Render("BMI: " + err.Error()))
		sb.WriteString("\n" + theme.Muted.Render("Use profile:set to fill in height and weight."))
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("BMI   %s  %s\n",
		theme.Hot.Render(fmt.Sprintf("%.1f", bmi)),
		theme.Muted.Render(domain.BMICategory(bmi))))

	bmr, err := domain.BMR(m.user.Sex, m.user.Age, m.user.HeightCm, m.user.WeightKg)
	if err != nil {
		sb.WriteString(theme.Failed.Render("BMR: " + err.Error()))
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("BMR   %s kcal/day\n", theme.Hot.Render(fmt.Sprintf("%.0f", bmr))))
	sb.WriteString(fmt.Sprintf("TDEE  %s kcal/day\n",
		theme.Hot.Render(fmt.Sprintf("%.0f", domain.TDEE(bmr, m.user.ActivityLevel)))))
	return sb.String()
}

func (m Model) renderDay() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Day balance") + "\n\n")
	if !m.hasSummary {
		sb.WriteString(theme.Muted.Render("Select a day on the Progress tab."))
		return sb.String()
	}

	sb.WriteString(m.day.Format("Monday, Jan 2") + "\n\n")
	sb.WriteString(fmt.Sprintf("Meals      %d/%d done\n", m.summary.CompletedMeals, m.summary.TotalMeals))
	sb.WriteString(fmt.Sprintf("Exercises  %d/%d done\n\n", m.summary.CompletedExs, m.summary.TotalExs))
	sb.WriteString(fmt.Sprintf("Consumed   %s kcal\n", theme.Done.Render(fmt.Sprintf("%.0f", m.summary.ConsumedKcal))))
	sb.WriteString(fmt.Sprintf("Burned     %s kcal\n", theme.Done.Render(fmt.Sprintf("%.0f", m.summary.BurnedKcal))))

	net := m.summary.NetKcal()
	style := theme.Done
	if net > 0 {
		style = theme.Hot
	}
	sb.WriteString(fmt.Sprintf("Net        %s kcal\n", style.Render(fmt.Sprintf("%+.0f", net))))
	return sb.String()
}
