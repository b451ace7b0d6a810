package theme

import "github.com/charmbracelet/lipgloss"

// Nord-ish palette; the progress grid leans on Good/Warn/Muted to separate
// done, pending, and gated items.
var (
	Base    = lipgloss.Color("#2e3440")
	Mantle  = lipgloss.Color("#272c36")
	Surface = lipgloss.Color("#3b4252")
	Border  = lipgloss.Color("#4c566a")
	Text    = lipgloss.Color("#eceff4")
	Subtext = lipgloss.Color("#9aa5b5")
	Frost   = lipgloss.Color("#88c0d0")
	Accent  = lipgloss.Color("#81a1c1")
	Good    = lipgloss.Color("#a3be8c")
	Warn    = lipgloss.Color("#ebcb8b")
	Bad     = lipgloss.Color("#bf616a")

	Title  = lipgloss.NewStyle().Foreground(Frost).Bold(true)
	Muted  = lipgloss.NewStyle().Foreground(Subtext)
	Hot    = lipgloss.NewStyle().Foreground(Warn).Bold(true)
	Done   = lipgloss.NewStyle().Foreground(Good)
	Failed = lipgloss.NewStyle().Foreground(Bad)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Frost)

	DayCell = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	DayCellToday    = DayCell.BorderForeground(Warn)
	DayCellSelected = DayCell.BorderForeground(Frost).Bold(true)
)
