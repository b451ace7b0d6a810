package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fitterm/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Warn).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext)
)

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []string{
	"week:prev",
	"week:next",
	"week:today",
	"week:goto <YYYY-MM-DD>",
	"day:note <text>",
	"day:add-meal <mealID> <HH:MM>",
	"day:add-exercise <exerciseID> <HH:MM>",
	"day:remove-meal <index>",
	"day:remove-exercise <index>",
	"day:clear",
	"plan:apply <weeklyPlanID>",
	"profile:set <height|weight|age|sex|activity> <value>",
	"sync",
	"logout",
}

// Palette is a command-palette overlay backed by bubbles/textinput.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

// NewPalette creates an inactive Palette ready to be opened.
func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.Prompt = "❯ "
	ti.CharLimit = 200
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) SetWidth(w int) {
	p.width = w
	p.input.Width = w - 6
}

// Open activates the palette and focuses its input.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			value := p.input.Value()
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: value} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(p.input.View())
	sb.WriteString("\n\n")

	prefix := strings.TrimSpace(p.input.Value())
	shown := 0
	for _, hint := range paletteHints {
		if prefix != "" && !strings.HasPrefix(hint, prefix) {
			continue
		}
		sb.WriteString(hintStyle.Render(hint) + "\n")
		shown++
		if shown >= 8 {
			break
		}
	}
	return paletteStyle.Width(p.width).Render(sb.String())
}
