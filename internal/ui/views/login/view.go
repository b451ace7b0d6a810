// Package login is the gate screen shown when no valid session exists.
// It covers both sign-in and sign-up; tab switches modes.
package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdomain "fitterm/internal/modules/auth/domain"
	authin "fitterm/internal/modules/auth/port/in"
	"fitterm/internal/ui/theme"
)

// SessionMsg reports the outcome of a login or register attempt.
type SessionMsg struct {
	Session authdomain.Session
	Err     error
}

type mode int

const (
	modeLogin mode = iota
	modeRegister
)

const (
	fieldName = iota
	fieldEmail
	fieldPassword
)

type Model struct {
	usecase authin.Usecase

	mode   mode
	inputs [3]textinput.Model
	focus  int
	busy   bool
	err    string
	width  int
	height int
}

func New(usecase authin.Usecase) Model {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 80

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120

	m := Model{usecase: usecase, inputs: [3]textinput.Model{name, email, password}, focus: fieldEmail}
	m.inputs[fieldEmail].Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case SessionMsg:
		m.busy = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab":
			if m.mode == modeLogin {
				m.mode = modeRegister
				m.setFocus(fieldName)
			} else {
				m.mode = modeLogin
				m.setFocus(fieldEmail)
			}
			m.err = ""
			return m, nil
		case "up", "shift+tab":
			m.setFocus(m.prevField())
			return m, nil
		case "down":
			m.setFocus(m.nextField())
			return m, nil
		case "enter":
			if m.focus != fieldPassword {
				m.setFocus(m.nextField())
				return m, nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(field int) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = field
	m.inputs[field].Focus()
}

func (m Model) firstField() int {
	if m.mode == modeRegister {
		return fieldName
	}
	return fieldEmail
}

func (m Model) nextField() int {
	if m.focus >= fieldPassword {
		return m.firstField()
	}
	return m.focus + 1
}

func (m Model) prevField() int {
	if m.focus <= m.firstField() {
		return fieldPassword
	}
	return m.focus - 1
}

func (m Model) submit() (Model, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[fieldName].Value())
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()

	if email == "" || password == "" {
		m.err = "email and password are required"
		return m, nil
	}
	if m.mode == modeRegister && name == "" {
		m.err = "name is required"
		return m, nil
	}

	m.busy = true
	m.err = ""
	register := m.mode == modeRegister
	usecase := m.usecase
	return m, func() tea.Msg {
		ctx := context.Background()
		if register {
			session, err := usecase.Register(ctx, name, email, password)
			return SessionMsg{Session: session, Err: err}
		}
		session, err := usecase.Login(ctx, email, password)
		return SessionMsg{Session: session, Err: err}
	}
}

func (m Model) View() string {
	title := "Sign in"
	hint := "tab: create an account"
	if m.mode == modeRegister {
		title = "Create account"
		hint = "tab: back to sign in"
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(title) + "\n\n")
	if m.mode == modeRegister {
		sb.WriteString(m.inputs[fieldName].View() + "\n")
	}
	sb.WriteString(m.inputs[fieldEmail].View() + "\n")
	sb.WriteString(m.inputs[fieldPassword].View() + "\n\n")

	switch {
	case m.busy:
		sb.WriteString(theme.Muted.Render("Signing in…") + "\n")
	case m.err != "":
		sb.WriteString(theme.Failed.Render(m.err) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: submit  "+hint))

	card := theme.PaneActive.Width(46).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}
