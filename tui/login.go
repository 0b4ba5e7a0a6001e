package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/damrufest/judgeboard/session"
)

type loginState int

const (
	loginStateForm loginState = iota
	loginStateSubmitting
)

type loginModel struct {
	session *session.Store

	state      loginState
	email      textinput.Model
	password   textinput.Model
	focusIndex int
	errMsg     string
	spin       spinner.Model
}

type loginAttemptMsg struct{ result session.LoginResult }

func newLoginModel(sess *session.Store) loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 64
	email.Width = 32
	email.Prompt = ""
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.Width = 32
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	return loginModel{session: sess, email: email, password: password, spin: s}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginAttemptMsg:
		m.state = loginStateForm
		if msg.result.Success {
			return m, func() tea.Msg { return loggedInMsg{} }
		}
		// The form stays put; only the message changes.
		m.errMsg = msg.result.Msg
		m.password.SetValue("")
		return m, nil

	case tea.KeyMsg:
		if m.state == loginStateSubmitting {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			m.focusIndex = (m.focusIndex + 1) % 2
			if m.focusIndex == 0 {
				m.password.Blur()
				m.email.Focus()
			} else {
				m.email.Blur()
				m.password.Focus()
			}
			return m, textinput.Blink
		case tea.KeyEnter:
			if m.focusIndex == 0 {
				m.focusIndex = 1
				m.email.Blur()
				m.password.Focus()
				return m, textinput.Blink
			}
			email := strings.TrimSpace(m.email.Value())
			password := m.password.Value()
			if email == "" || password == "" {
				m.errMsg = "Email and password are required"
				return m, nil
			}
			m.state = loginStateSubmitting
			m.errMsg = ""
			return m, tea.Batch(m.spin.Tick, m.submit(email, password))
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	m.spin, cmd = m.spin.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m loginModel) submit(email, password string) tea.Cmd {
	return func() tea.Msg {
		return loginAttemptMsg{result: m.session.Login(context.Background(), email, password)}
	}
}

func (m loginModel) View() string {
	s := titleStyle.Render("Judgeboard") + "\n\n"
	s += "Email:    " + m.email.View() + "\n"
	s += "Password: " + m.password.View() + "\n"

	if m.state == loginStateSubmitting {
		s += "\n" + m.spin.View() + " Signing in...\n"
	} else if m.errMsg != "" {
		s += "\n" + errorStyle.Render(m.errMsg) + "\n"
	}

	s += "\n" + helpStyle.Render("tab to switch fields, enter to sign in, ctrl+c to quit") + "\n"
	return s
}
