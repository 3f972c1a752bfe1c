package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// authModel implements the login and registration screens. Registration
// auto-logs-in with the same credentials on success, mirroring the account
// creation flow of the web client.
type authModel struct {
	ctx         context.Context
	deps        Context
	gen         int
	registering bool
	inputs      []textinput.Model
	focus       int
	busy        bool
	errLine     string
}

// authDoneMsg carries the outcome of a login or register+login flow.
type authDoneMsg struct {
	gen   int
	token string
	err   error
}

const (
	fieldName = iota
	fieldEmail
	fieldPassword
)

func newAuthModel(ctx context.Context, deps Context, gen int, registering bool) *authModel {
	name := textinput.New()
	name.Placeholder = "TheMovieRater01"
	name.Prompt = "Username: "
	name.Focus()

	email := textinput.New()
	email.Placeholder = "rater@example.com"
	email.Prompt = "Mail:     "

	password := textinput.New()
	password.Placeholder = "AVerySecurePassword123!"
	password.Prompt = "Password: "
	password.EchoMode = textinput.EchoPassword

	return &authModel{
		ctx:         ctx,
		deps:        deps,
		gen:         gen,
		registering: registering,
		inputs:      []textinput.Model{name, email, password},
	}
}

func (m *authModel) init() tea.Cmd {
	return textinput.Blink
}

// fields returns the active input indexes for the current mode.
func (m *authModel) fields() []int {
	if m.registering {
		return []int{fieldName, fieldEmail, fieldPassword}
	}
	return []int{fieldName, fieldPassword}
}

func (m *authModel) update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "down", "up":
			m.cycleFocus(msg.String() == "tab" || msg.String() == "down")
			return m, nil
		case "enter":
			return m, m.submit()
		case "ctrl+r":
			return m, navigate(RegisterRoute)
		case "ctrl+l":
			return m, navigate(LoginRoute)
		}

	case authDoneMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.errLine = msg.err.Error()
			return m, nil
		}
		if err := m.deps.Store.Save(msg.token); err != nil {
			m.errLine = err.Error()
			return m, nil
		}
		return m, navigate(UserRoute)
	}

	fieldIdx := m.fields()[m.focus]
	var cmd tea.Cmd
	m.inputs[fieldIdx], cmd = m.inputs[fieldIdx].Update(msg)
	return m, cmd
}

func (m *authModel) cycleFocus(forward bool) {
	fields := m.fields()
	m.inputs[fields[m.focus]].Blur()

	if forward {
		m.focus = (m.focus + 1) % len(fields)
	} else {
		m.focus = (m.focus - 1 + len(fields)) % len(fields)
	}
	m.inputs[fields[m.focus]].Focus()
}

// submit validates presence client-side, then runs the credential flow as a
// single command.
func (m *authModel) submit() tea.Cmd {
	if m.busy {
		return nil
	}

	name := strings.TrimSpace(m.inputs[fieldName].Value())
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()

	if name == "" || password == "" || (m.registering && email == "") {
		m.errLine = "all fields are required"
		return nil
	}

	m.busy = true
	m.errLine = ""
	gen, registering := m.gen, m.registering

	return func() tea.Msg {
		if registering {
			if err := m.deps.Backend.Register(m.ctx, name, email, password); err != nil {
				return authDoneMsg{gen: gen, err: err}
			}
		}

		token, err := m.deps.Backend.Login(m.ctx, name, password)
		return authDoneMsg{gen: gen, token: token, err: err}
	}
}

func (m *authModel) view(width int) string {
	var b strings.Builder

	if m.registering {
		b.WriteString(styles.title.Render("Register now?!") + "\n\n")
	} else {
		b.WriteString(styles.title.Render("Just another movie rating website.") + "\n\n")
	}

	for _, idx := range m.fields() {
		b.WriteString(m.inputs[idx].View() + "\n")
	}

	if m.busy {
		b.WriteString("\n" + styles.help.Render("signing in...") + "\n")
	}
	if m.errLine != "" {
		b.WriteString("\n" + styles.err.Render(m.errLine) + "\n")
	}

	if m.registering {
		b.WriteString("\n" + styles.help.Render("enter submit • ctrl+l back to login"))
	} else {
		b.WriteString("\n" + styles.help.Render("enter submit • ctrl+r register"))
	}

	return b.String()
}
