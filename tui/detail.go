package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/damrufest/judgeboard/apiclient"
	"github.com/damrufest/judgeboard/comp"
	"github.com/damrufest/judgeboard/session"
)

type detailState int

const (
	detailStateLoading detailState = iota
	detailStateReady
	detailStateConfirmDelete
	detailStateWorking
	detailStateFailed
)

type detailModel struct {
	api     *apiclient.Client
	session *session.Store

	competitionID string
	state         detailState
	competition   *comp.Competition
	participants  []comp.Participant

	cursor     int
	search     textinput.Model
	searching  bool
	criteria   textinput.Model
	addingCrit bool
	dirtyOrder bool
	notice     string
	errMsg     string
	spin       spinner.Model
}

type detailLoadedMsg struct {
	competition  *comp.Competition
	participants []comp.Participant
	err          error
}

type participantActionMsg struct {
	err    error
	notice string
}

type participantDeletedMsg struct {
	id  string
	err error
}

func newDetailModel(api *apiclient.Client, sess *session.Store, competitionID string) detailModel {
	search := textinput.New()
	search.Placeholder = "team, member or email"
	search.CharLimit = 64
	search.Width = 32
	search.Prompt = "/"

	criteria := textinput.New()
	criteria.Placeholder = "Pitch:20, Demo:10"
	criteria.CharLimit = 200
	criteria.Width = 40
	criteria.Prompt = ""

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	return detailModel{
		api:           api,
		session:       sess,
		competitionID: competitionID,
		state:         detailStateLoading,
		search:        search,
		criteria:      criteria,
		spin:          s,
	}
}

func (m detailModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.load())
}

// load fetches the competition first and only then its roster, so a
// vanished competition errors once instead of twice.
func (m detailModel) load() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		competition, err := m.api.GetCompetition(ctx, m.competitionID)
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		participants, err := m.api.ListParticipants(ctx, m.competitionID)
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		return detailLoadedMsg{competition: competition, participants: participants}
	}
}

func (m detailModel) filtered() []comp.Participant {
	return comp.FilterParticipants(m.participants, m.search.Value())
}

func (m detailModel) currentParticipant() *comp.Participant {
	visible := m.filtered()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return nil
	}
	p := visible[m.cursor]
	return &p
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		if msg.err != nil {
			if apiclient.IsUnauthorized(msg.err) {
				return m, func() tea.Msg { return loggedOutMsg{} }
			}
			if apiclient.IsNotFound(msg.err) {
				return m, func() tea.Msg { return backToListMsg{} }
			}
			m.state = detailStateFailed
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.state = detailStateReady
		m.competition = msg.competition
		m.participants = msg.participants
		m.dirtyOrder = false
		if m.cursor >= len(m.participants) {
			m.cursor = len(m.participants) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case participantActionMsg:
		if msg.err != nil {
			m.state = detailStateFailed
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.notice = msg.notice
		m.state = detailStateLoading
		return m, tea.Batch(m.spin.Tick, m.load())

	case participantDeletedMsg:
		if msg.err != nil {
			m.state = detailStateFailed
			m.errMsg = msg.err.Error()
			return m, nil
		}
		// Local removal; the server roster is already authoritative and
		// the leaderboard screen re-fetches on entry.
		for i, p := range m.participants {
			if p.ID == msg.id {
				m.participants = append(m.participants[:i], m.participants[i+1:]...)
				break
			}
		}
		if m.cursor >= len(m.filtered()) {
			m.cursor = len(m.filtered()) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.notice = "Participant removed"
		m.state = detailStateReady
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	if m.addingCrit {
		switch msg.Type {
		case tea.KeyEsc:
			m.addingCrit = false
			m.criteria.SetValue("")
			m.criteria.Blur()
			m.errMsg = ""
			return m, nil
		case tea.KeyEnter:
			criteria, err := parseCriteriaSpec(m.criteria.Value())
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.addingCrit = false
			m.criteria.SetValue("")
			m.criteria.Blur()
			m.errMsg = ""
			m.state = detailStateWorking
			return m, tea.Batch(m.spin.Tick, func() tea.Msg {
				err := m.api.AddCriteria(context.Background(), m.competitionID, criteria)
				return participantActionMsg{err: err, notice: "Criteria added"}
			})
		}
		var cmd tea.Cmd
		m.criteria, cmd = m.criteria.Update(msg)
		return m, cmd
	}

	if m.searching {
		switch msg.Type {
		case tea.KeyEsc:
			m.searching = false
			m.search.SetValue("")
			m.search.Blur()
			m.cursor = 0
			return m, nil
		case tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			m.cursor = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	if m.state == detailStateConfirmDelete {
		switch msg.String() {
		case "y", "Y":
			p := m.currentParticipant()
			if p == nil {
				m.state = detailStateReady
				return m, nil
			}
			m.state = detailStateWorking
			pid := p.ID
			return m, tea.Batch(m.spin.Tick, func() tea.Msg {
				err := m.api.DeleteParticipant(context.Background(), m.competitionID, pid)
				return participantDeletedMsg{id: pid, err: err}
			})
		default:
			m.state = detailStateReady
			return m, nil
		}
	}
	if m.state != detailStateReady && m.state != detailStateFailed {
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		return m, func() tea.Msg { return backToListMsg{} }
	case "r":
		m.state = detailStateLoading
		return m, tea.Batch(m.spin.Tick, m.load())
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "a":
		if m.canManage() {
			m.addingCrit = true
			m.criteria.Focus()
			return m, textinput.Blink
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.filtered())-1 {
			m.cursor++
		}
	case "K", "J":
		return m.moveCurrent(msg.String() == "K"), nil
	case "S":
		if m.dirtyOrder && m.canManage() {
			m.state = detailStateWorking
			order := make([]string, len(m.participants))
			for i, p := range m.participants {
				order[i] = p.ID
			}
			return m, tea.Batch(m.spin.Tick, func() tea.Msg {
				err := m.api.SaveParticipantOrder(context.Background(), m.competitionID, order)
				return participantActionMsg{err: err, notice: "Order saved"}
			})
		}
	case "enter":
		if m.session.Role() == comp.RoleJudge && m.competition != nil {
			if p := m.currentParticipant(); p != nil {
				competition, participant := m.competition, *p
				return m, func() tea.Msg {
					return openScoringMsg{competition: competition, participant: participant}
				}
			}
		}
	case "l":
		if m.competition != nil {
			competition := m.competition
			return m, func() tea.Msg { return openLeaderboardMsg{competition: competition} }
		}
	case "u":
		if m.canManage() && m.competition != nil {
			competition := m.competition
			return m, func() tea.Msg { return openUploadMsg{competition: competition} }
		}
	case "d":
		if m.canManage() && m.currentParticipant() != nil {
			m.state = detailStateConfirmDelete
		}
	}
	return m, nil
}

func (m detailModel) canManage() bool {
	return m.session.Role().CanManage()
}

// moveCurrent shifts the highlighted participant one slot within the
// visible list, then splices the visible order back into the full
// roster. Changes stay local until saved with S.
func (m detailModel) moveCurrent(up bool) detailModel {
	if !m.canManage() {
		return m
	}
	visible := m.filtered()
	to := m.cursor + 1
	if up {
		to = m.cursor - 1
	}
	if to < 0 || to >= len(visible) {
		return m
	}
	moved := comp.MoveParticipant(visible, m.cursor, to)
	m.participants = comp.ApplySubsetOrder(m.participants, moved)
	m.cursor = to
	m.dirtyOrder = true
	m.notice = ""
	return m
}

func (m detailModel) View() string {
	if m.state == detailStateLoading || m.state == detailStateWorking {
		return m.spin.View() + " Loading...\n"
	}
	if m.state == detailStateFailed {
		return errorStyle.Render("Error: "+m.errMsg) + "\n\n" + helpStyle.Render("r to retry, esc to go back") + "\n"
	}
	if m.competition == nil {
		return ""
	}

	c := m.competition
	s := titleStyle.Render(c.Title) + "  " + badgeStyle.Render(string(c.Type)) + "\n"
	if c.Description != "" {
		s += helpStyle.Render(c.Description) + "\n"
	}
	names := make([]string, len(c.Criteria))
	for i, cr := range c.Criteria {
		names[i] = fmt.Sprintf("%s (max %.0f)", cr.Name, cr.MaxScore)
	}
	s += "Criteria: " + valueStyle.Render(strings.Join(names, ", ")) + "\n\n"

	if m.addingCrit {
		s += "Add criteria: " + m.criteria.View() + "\n"
		if m.errMsg != "" {
			s += errorStyle.Render(m.errMsg) + "\n"
		}
		s += "\n"
	}
	if m.searching || m.search.Value() != "" {
		s += m.search.View() + "\n\n"
	}

	visible := m.filtered()
	if len(visible) == 0 {
		if m.search.Value() != "" {
			s += "No participants match.\n"
		} else {
			s += "No participants uploaded yet.\n"
		}
	}
	for i, p := range visible {
		line := fmt.Sprintf("%-28s %s", p.DisplayName(), helpStyle.Render(strings.Join(p.Members, ", ")))
		if i == m.cursor {
			s += selectedStyle.Render("> ") + line + "\n"
		} else {
			s += "  " + line + "\n"
		}
	}

	if m.state == detailStateConfirmDelete {
		if p := m.currentParticipant(); p != nil {
			s += "\n" + errorStyle.Render(fmt.Sprintf("Remove %q and its scores? (y/n)", p.DisplayName())) + "\n"
		}
	}
	if m.dirtyOrder {
		s += "\n" + errorStyle.Render("Order changed, press S to save") + "\n"
	} else if m.notice != "" {
		s += "\n" + selectedStyle.Render(m.notice) + "\n"
	}

	help := "l leaderboard, / search, r refresh, esc back"
	if m.session.Role() == comp.RoleJudge {
		help = "enter score, " + help
	}
	if m.canManage() {
		help = "u upload roster, a add criteria, d remove, J/K reorder, S save order, " + help
	}
	s += "\n" + helpStyle.Render(help) + "\n"
	return s
}
