package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/damrufest/judgeboard/apiclient"
	"github.com/damrufest/judgeboard/comp"
	"github.com/damrufest/judgeboard/session"
)

type listState int

const (
	listStateLoading listState = iota
	listStateReady
	listStateConfirmDelete
	listStateWorking
	listStateFailed
)

type listModel struct {
	api     *apiclient.Client
	session *session.Store

	state        listState
	competitions []comp.Competition
	cursor       int
	errMsg       string
	spin         spinner.Model
}

type competitionsLoadedMsg struct {
	competitions []comp.Competition
	err          error
}

type competitionActionMsg struct{ err error }

func newListModel(api *apiclient.Client, sess *session.Store) listModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle
	return listModel{api: api, session: sess, state: listStateLoading, spin: s}
}

func (m listModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.load())
}

func (m listModel) load() tea.Cmd {
	return func() tea.Msg {
		comps, err := m.api.ListCompetitions(context.Background())
		return competitionsLoadedMsg{competitions: comps, err: err}
	}
}

func (m listModel) current() *comp.Competition {
	if m.cursor < 0 || m.cursor >= len(m.competitions) {
		return nil
	}
	return &m.competitions[m.cursor]
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case competitionsLoadedMsg:
		if msg.err != nil {
			if apiclient.IsUnauthorized(msg.err) {
				return m, func() tea.Msg { return loggedOutMsg{} }
			}
			m.state = listStateFailed
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.state = listStateReady
		m.competitions = msg.competitions
		if m.cursor >= len(m.competitions) {
			m.cursor = len(m.competitions) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case competitionActionMsg:
		if msg.err != nil {
			m.state = listStateFailed
			m.errMsg = msg.err.Error()
			return m, nil
		}
		// Re-fetch so select/delete outcomes show up immediately.
		m.state = listStateLoading
		return m, tea.Batch(m.spin.Tick, m.load())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	if m.state == listStateConfirmDelete {
		switch msg.String() {
		case "y", "Y":
			c := m.current()
			if c == nil {
				m.state = listStateReady
				return m, nil
			}
			m.state = listStateWorking
			id := c.ID
			return m, tea.Batch(m.spin.Tick, func() tea.Msg {
				return competitionActionMsg{err: m.api.DeleteCompetition(context.Background(), id)}
			})
		default:
			m.state = listStateReady
			return m, nil
		}
	}
	if m.state != listStateReady && m.state != listStateFailed {
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "L":
		return m, func() tea.Msg {
			m.session.Logout(context.Background())
			return loggedOutMsg{}
		}
	case "r":
		m.state = listStateLoading
		return m, tea.Batch(m.spin.Tick, m.load())
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.competitions)-1 {
			m.cursor++
		}
	case "enter":
		if c := m.current(); c != nil {
			id := c.ID
			return m, func() tea.Msg { return openCompetitionMsg{id: id} }
		}
	case "s":
		// Judges self-assign; once on the panel the key does nothing.
		c := m.current()
		if c == nil || m.session.Role() != comp.RoleJudge {
			return m, nil
		}
		if user := m.session.User(); user != nil && c.HasJudge(user.ID) {
			return m, nil
		}
		m.state = listStateWorking
		id := c.ID
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			return competitionActionMsg{err: m.api.SelectCompetition(context.Background(), id)}
		})
	case "n":
		if m.session.Role().CanManage() {
			return m, func() tea.Msg { return openCreateMsg{} }
		}
	case "d":
		if m.session.Role().CanManage() && m.current() != nil {
			m.state = listStateConfirmDelete
		}
	}
	return m, nil
}

func (m listModel) View() string {
	user := m.session.User()
	header := titleStyle.Render("Competitions")
	if user != nil {
		header += "  " + badgeStyle.Render(fmt.Sprintf("%s (%s)", user.Name, user.Role))
	}
	s := header + "\n\n"

	switch m.state {
	case listStateLoading, listStateWorking:
		return s + m.spin.View() + " Loading...\n"
	case listStateFailed:
		s += errorStyle.Render("Error: "+m.errMsg) + "\n\n"
		s += helpStyle.Render("r to retry, q to quit") + "\n"
		return s
	}

	if len(m.competitions) == 0 {
		s += "No competitions yet.\n"
	}
	for i, c := range m.competitions {
		line := fmt.Sprintf("%-28s %-5s %3d participants  %d judges", c.Title, c.Type, c.Participants, len(c.Judges))
		if user != nil && user.Role == comp.RoleJudge {
			if c.HasJudge(user.ID) {
				line += "  " + selectedStyle.Render("[judging]")
			} else {
				line += "  " + helpStyle.Render("[press s to judge]")
			}
		}
		if i == m.cursor {
			s += selectedStyle.Render("> ") + line + "\n"
		} else {
			s += "  " + line + "\n"
		}
	}

	if m.state == listStateConfirmDelete {
		if c := m.current(); c != nil {
			s += "\n" + errorStyle.Render(fmt.Sprintf("Delete %q and all its scores? (y/n)", c.Title)) + "\n"
		}
	}

	help := "enter open, r refresh, L logout, q quit"
	switch {
	case m.session.Role() == comp.RoleJudge:
		help = "enter open, s judge, " + help[len("enter open, "):]
	case m.session.Role().CanManage():
		help = "enter open, n new, d delete, " + help[len("enter open, "):]
	}
	s += "\n" + helpStyle.Render(help) + "\n"
	return s
}
